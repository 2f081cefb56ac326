// Package fetch pulls building footprints from a Socrata open-data
// endpoint (the Calgary 3D buildings dataset by default) and maps rows
// into BuildingRecords. Fetched slices are cached in Redis per bounding
// box so repeated viewer sessions do not hammer the upstream API.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"skyline/internal/config"
	"skyline/internal/model"
	redis_client "skyline/internal/redis"
)

// BBox is a lat/lng bounding box in Socrata within_box order.
type BBox struct {
	MinLat, MinLng, MaxLat, MaxLng float64
}

// ParseBBox parses "minLat,minLng,maxLat,maxLng".
func ParseBBox(s string) (BBox, error) {
	var b BBox
	parts := [4]*float64{&b.MinLat, &b.MinLng, &b.MaxLat, &b.MaxLng}
	fields := splitComma(s)
	if len(fields) != 4 {
		return b, fmt.Errorf("bbox %q: want 4 comma-separated numbers", s)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return b, fmt.Errorf("bbox %q: %w", s, err)
		}
		*parts[i] = v
	}
	return b, nil
}

func (b BBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
}

// Client fetches building records over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a fetch client for the given Socrata resource URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchBuildings returns the building records inside the bounding box,
// from cache when possible.
func (c *Client) FetchBuildings(ctx context.Context, bbox BBox, limit int) ([]model.BuildingRecord, error) {
	cacheKey := fmt.Sprintf("buildings:%s:%d", bbox, limit)
	if cached, ok := cacheGet(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("$limit", strconv.Itoa(limit))
	params.Set("$where", fmt.Sprintf("within_box(polygon,%g,%g,%g,%g)",
		bbox.MinLat, bbox.MinLng, bbox.MaxLat, bbox.MaxLng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("buildings fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("buildings fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("buildings fetch: %w", err)
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, err
	}

	cacheSet(cacheKey, records)
	return records, nil
}

// DecodeRecords maps raw Socrata rows into BuildingRecords. Rows without a
// usable footprint geometry are dropped with a log line; height is derived
// from rooftop minus ground elevation when both are present.
func DecodeRecords(data []byte) ([]model.BuildingRecord, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode buildings: %w", err)
	}

	records := make([]model.BuildingRecord, 0, len(rows))
	for i, row := range rows {
		ring, geomField, ok := extractRing(row)
		if !ok {
			log.Printf("fetch: row %d has no usable footprint, dropping", i)
			continue
		}

		rec := model.BuildingRecord{
			Footprint:  ring,
			Attributes: make(map[string]string, len(row)),
		}

		for k, raw := range row {
			if k == geomField {
				continue
			}
			if s, ok := scalarString(raw); ok {
				rec.Attributes[k] = s
			}
		}

		rec.ID = firstAttr(rec.Attributes, "struct_id", "bldg_id", "id")
		if rec.ID == "" {
			rec.ID = strconv.Itoa(i)
		}
		rec.Height = deriveHeight(rec.Attributes)

		records = append(records, rec)
	}
	return records, nil
}

// geometryFields are tried in order; Calgary's dataset uses "polygon".
var geometryFields = []string{"polygon", "the_geom", "geom"}

func extractRing(row map[string]json.RawMessage) (orb.Ring, string, bool) {
	for _, field := range geometryFields {
		raw, ok := row[field]
		if !ok {
			continue
		}
		geom, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			continue
		}
		switch g := geom.Geometry().(type) {
		case orb.Polygon:
			if len(g) > 0 && len(g[0]) >= 3 {
				return g[0], field, true
			}
		case orb.MultiPolygon:
			if len(g) > 0 && len(g[0]) > 0 && len(g[0][0]) >= 3 {
				return g[0][0], field, true
			}
		}
	}
	return nil, "", false
}

// deriveHeight computes rooftop minus ground elevation; zero when either
// is missing (the extruder's height floor keeps such buildings visible).
func deriveHeight(attrs map[string]string) float64 {
	roof, err1 := strconv.ParseFloat(attrs["rooftop_elev_z"], 64)
	ground, err2 := strconv.ParseFloat(attrs["grd_elev_min_z"], 64)
	if err1 != nil || err2 != nil {
		return 0
	}
	h := roof - ground
	if h < 0 {
		return 0
	}
	return h
}

func scalarString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

func firstAttr(attrs map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := attrs[k]; v != "" {
			return v
		}
	}
	return ""
}

func cacheGet(key string) ([]model.BuildingRecord, bool) {
	if redis_client.GetClient() == nil {
		return nil, false
	}
	raw, err := redis_client.Get(key)
	if err != nil {
		return nil, false
	}
	var records []model.BuildingRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("fetch: dropping corrupt cache entry %s: %v", key, err)
		_ = redis_client.Delete(key)
		return nil, false
	}
	return records, true
}

func cacheSet(key string, records []model.BuildingRecord) {
	if redis_client.GetClient() == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := redis_client.Set(key, raw, config.BuildingsCacheTTL); err != nil {
		log.Printf("fetch: cache write failed for %s: %v", key, err)
	}
}

func splitComma(s string) []string {
	fields := strings.Split(s, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
