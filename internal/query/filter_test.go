package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyline/internal/model"
)

func records() []model.BuildingRecord {
	return []model.BuildingRecord{
		{ID: "1", Attributes: map[string]string{"height": "30", "zoning": "CC-X", "address": "101 9 Ave SW"}},
		{ID: "2", Attributes: map[string]string{"height": "120", "zoning": "CR20-C20", "address": "225 6 Ave SW"}},
		{ID: "3", Attributes: map[string]string{"zoning": "cc-x"}},
	}
}

func TestEvaluateNumericOperators(t *testing.T) {
	cases := []struct {
		op   string
		want []string
	}{
		{">", []string{"2"}},
		{"gt", []string{"2"}},
		{">=", []string{"1", "2"}},
		{"<", nil},
		{"<=", []string{"1"}},
	}
	for _, tc := range cases {
		got := Evaluate(records(), Filter{Attribute: "height", Operator: tc.op, Value: "30"})
		assert.Equal(t, tc.want, got, "operator %q", tc.op)
	}
}

func TestEvaluateStringOperators(t *testing.T) {
	// Case-insensitive equality: both "CC-X" and "cc-x" match.
	got := Evaluate(records(), Filter{Attribute: "zoning", Operator: "=", Value: "CC-X"})
	assert.Equal(t, []string{"1", "3"}, got)

	got = Evaluate(records(), Filter{Attribute: "zoning", Operator: "!=", Value: "CC-X"})
	assert.Equal(t, []string{"2"}, got)

	got = Evaluate(records(), Filter{Attribute: "address", Operator: "contains", Value: "ave sw"})
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestEvaluateMissingAttributeNeverMatches(t *testing.T) {
	got := Evaluate(records(), Filter{Attribute: "height", Operator: "<", Value: "1000"})
	// Record 3 has no height attribute.
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestEvaluateUnknownOperator(t *testing.T) {
	got := Evaluate(records(), Filter{Attribute: "height", Operator: "between", Value: "30"})
	assert.Empty(t, got)
}

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"attribute":"height","operator":">","value":"100"}`))
	}))
	defer srv.Close()

	c := NewTranslateClient(srv.URL, "secret")
	f, err := c.Translate(context.Background(), "show me buildings taller than 100m")
	require.NoError(t, err)
	assert.Equal(t, Filter{Attribute: "height", Operator: ">", Value: "100"}, f)
}

func TestTranslateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewTranslateClient(srv.URL, "")
	_, err := c.Translate(context.Background(), "anything")
	assert.Error(t, err)
}
