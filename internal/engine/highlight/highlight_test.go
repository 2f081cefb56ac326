package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityInvariant(t *testing.T) {
	// All four combinations of membership in matched and selected.
	cases := []struct {
		matched, selected bool
		want              VisualState
	}{
		{false, false, StateBase},
		{true, false, StateMatched},
		{false, true, StateSelected},
		{true, true, StateSelected}, // selected wins over matched
	}
	for _, tc := range cases {
		r := NewResolver(nil)
		r.Rebind([]string{"1"})
		if tc.matched {
			r.SetMatched([]string{"1"})
		}
		if tc.selected {
			r.ClickHit("1", false)
		}
		assert.Equal(t, tc.want, r.StateFor("1"), "matched=%v selected=%v", tc.matched, tc.selected)
		assert.Equal(t, tc.want, r.StateAt(0))
	}
}

func TestMatchedHighlighting(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"1", "2"})
	r.SetMatched([]string{"2"})

	assert.Equal(t, StateBase, r.StateAt(0))
	assert.Equal(t, StateMatched, r.StateAt(1))
}

func TestPlainClickReplacesSelection(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"3", "5"})
	r.ClickHit("3", false)
	require.Equal(t, []string{"3"}, r.Selected())

	r.ClickHit("5", false)
	assert.Equal(t, []string{"5"}, r.Selected())
}

func TestModifiedClickToggles(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"5", "7"})

	r.ClickHit("5", true)
	r.ClickHit("7", true)
	assert.Equal(t, []string{"5", "7"}, r.Selected())

	// Toggle-off.
	r.ClickHit("5", true)
	assert.Equal(t, []string{"7"}, r.Selected())
	r.ClickHit("7", true)
	assert.Empty(t, r.Selected())
}

func TestMissPolicy(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"1", "2"})
	r.ClickHit("1", true)
	r.ClickHit("2", true)

	// A modified miss keeps the accumulated multi-selection.
	r.ClickMiss(true)
	assert.Equal(t, []string{"1", "2"}, r.Selected())

	// A plain miss clears it.
	r.ClickMiss(false)
	assert.Empty(t, r.Selected())
}

func TestMatchedUpdatePreservesSelection(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"1", "2", "3"})
	r.ClickHit("2", false)

	r.SetMatched([]string{"1", "2"})
	assert.Equal(t, []string{"2"}, r.Selected())
	assert.Equal(t, StateSelected, r.StateFor("2"))

	r.SetMatched(nil)
	assert.Equal(t, []string{"2"}, r.Selected())
}

func TestRebindClearsSelectionKeepsMatched(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"7", "8"})
	r.SetMatched([]string{"8"})
	r.ClickHit("7", false)

	// Dataset reload.
	r.Rebind([]string{"7", "8", "9"})
	assert.Empty(t, r.Selected())
	assert.Equal(t, StateBase, r.StateFor("7"))
	assert.Equal(t, StateMatched, r.StateFor("8"))
}

func TestClearSelection(t *testing.T) {
	r := NewResolver(nil)
	r.Rebind([]string{"1"})
	r.ClickHit("1", false)
	r.ClearSelection()
	assert.Empty(t, r.Selected())
	assert.Equal(t, StateBase, r.StateFor("1"))
}

func TestSelectionEmits(t *testing.T) {
	var got [][]string
	r := NewResolver(func(ids []string) {
		got = append(got, ids)
	})
	r.Rebind([]string{"1", "2"})

	r.ClickHit("2", false)
	r.ClickHit("1", true)
	r.ClickMiss(false)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"2"}, got[0])
	assert.Equal(t, []string{"1", "2"}, got[1])
	assert.Empty(t, got[2])

	// Matched updates and no-op misses do not emit.
	r.SetMatched([]string{"1"})
	r.ClickMiss(false)
	assert.Len(t, got, 3)
}

func TestRebindEmitsWhenSelectionDropped(t *testing.T) {
	var got [][]string
	r := NewResolver(func(ids []string) {
		got = append(got, ids)
	})
	r.Rebind([]string{"7"})
	r.ClickHit("7", false)
	require.Len(t, got, 1)

	r.Rebind([]string{"7"})
	require.Len(t, got, 2)
	assert.Empty(t, got[1])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "base", StateBase.String())
	assert.Equal(t, "matched", StateMatched.String())
	assert.Equal(t, "selected", StateSelected.String())
}
