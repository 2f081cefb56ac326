package model

import (
	"strconv"

	"github.com/paulmach/orb"
)

// BuildingRecord is one building footprint as supplied by the data-fetch
// layer: a stable identifier, a geographic footprint ring (lon/lat degrees,
// closed or open form), a height in meters and a free-form attribute bag.
// The attribute bag is display-only and never feeds geometry.
type BuildingRecord struct {
	ID         string            `json:"id"`
	Footprint  orb.Ring          `json:"footprint"`
	Height     float64           `json:"height"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attr returns an attribute value or "" when absent.
func (r *BuildingRecord) Attr(key string) string {
	if r.Attributes == nil {
		return ""
	}
	return r.Attributes[key]
}

// NumericAttr parses an attribute as float64.
func (r *BuildingRecord) NumericAttr(key string) (float64, bool) {
	v, err := strconv.ParseFloat(r.Attr(key), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
