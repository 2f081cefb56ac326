// Package query turns filter expressions into matched building sets and
// relays natural-language queries to the external translation service.
package query

import (
	"strconv"
	"strings"

	"skyline/internal/model"
)

// Filter is one attribute predicate, the shape the translation service
// returns: { "attribute": "", "operator": "", "value": "" }.
type Filter struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// Evaluate applies the filter to the records' attribute bags and returns
// the matched identifiers, in record order. Values compare numerically
// when both sides parse as numbers, as strings otherwise. Records missing
// the attribute never match.
func Evaluate(records []model.BuildingRecord, f Filter) []string {
	var matched []string
	for i := range records {
		rec := &records[i]
		got, ok := rec.Attributes[f.Attribute]
		if !ok {
			continue
		}
		if match(got, f.Operator, f.Value) {
			matched = append(matched, rec.ID)
		}
	}
	return matched
}

func match(got, op, want string) bool {
	gn, gErr := strconv.ParseFloat(got, 64)
	wn, wErr := strconv.ParseFloat(want, 64)
	numeric := gErr == nil && wErr == nil

	switch normalizeOp(op) {
	case "eq":
		if numeric {
			return gn == wn
		}
		return strings.EqualFold(got, want)
	case "neq":
		if numeric {
			return gn != wn
		}
		return !strings.EqualFold(got, want)
	case "gt":
		return numeric && gn > wn
	case "gte":
		return numeric && gn >= wn
	case "lt":
		return numeric && gn < wn
	case "lte":
		return numeric && gn <= wn
	case "contains":
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	default:
		return false
	}
}

// normalizeOp accepts both symbolic and word operators; the translation
// service is not consistent about which it emits.
func normalizeOp(op string) string {
	switch strings.ToLower(strings.TrimSpace(op)) {
	case "=", "==", "eq", "equals":
		return "eq"
	case "!=", "<>", "neq":
		return "neq"
	case ">", "gt", "greater", "greater_than":
		return "gt"
	case ">=", "gte":
		return "gte"
	case "<", "lt", "less", "less_than":
		return "lt"
	case "<=", "lte":
		return "lte"
	case "contains", "like":
		return "contains"
	default:
		return strings.ToLower(strings.TrimSpace(op))
	}
}
