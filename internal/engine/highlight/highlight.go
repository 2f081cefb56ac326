// Package highlight resolves each volume's visual state from the matched
// set (filter results, replaced wholesale) and the selected set (user
// clicks, toggled incrementally). Resolution never touches geometry.
package highlight

import (
	"sort"
)

// VisualState is the derived per-volume appearance.
type VisualState int

const (
	StateBase VisualState = iota
	StateMatched
	StateSelected
)

func (s VisualState) String() string {
	switch s {
	case StateMatched:
		return "matched"
	case StateSelected:
		return "selected"
	default:
		return "base"
	}
}

// Resolver maintains the matched and selected sets and an index-parallel
// slice of visual states for the current scene's volumes.
//
// Selection policies, pinned deliberately:
//   - A pointer miss without the multi-select modifier clears the
//     selection; a miss with the modifier held leaves the accumulated
//     set untouched.
//   - Replacing the matched set (filter re-run) preserves the selection;
//     only a dataset rebind or an explicit clear empties it.
type Resolver struct {
	ids      []string
	slots    map[string]int
	matched  map[string]struct{}
	selected map[string]struct{}
	states   []VisualState

	// onSelection receives the sorted selected identifiers after every
	// selection change.
	onSelection func([]string)
}

// NewResolver creates a resolver with no volumes bound. onSelection may be
// nil.
func NewResolver(onSelection func([]string)) *Resolver {
	return &Resolver{
		slots:       make(map[string]int),
		matched:     make(map[string]struct{}),
		selected:    make(map[string]struct{}),
		onSelection: onSelection,
	}
}

// Rebind points the resolver at a freshly assembled scene's identifiers in
// slot order. The selection is cleared (dataset reload invalidates it); the
// matched set is kept, since filters outlive a data refresh.
func (r *Resolver) Rebind(ids []string) {
	r.ids = append([]string(nil), ids...)
	r.slots = make(map[string]int, len(ids))
	for i, id := range ids {
		r.slots[id] = i
	}
	r.states = make([]VisualState, len(ids))

	hadSelection := len(r.selected) > 0
	r.selected = make(map[string]struct{})
	r.recompute()
	if hadSelection {
		r.emit()
	}
}

// SetMatched replaces the matched set wholesale and recomputes visual
// states. The selection is untouched.
func (r *Resolver) SetMatched(ids []string) {
	r.matched = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		r.matched[id] = struct{}{}
	}
	r.recompute()
}

// ClickHit applies a pointer hit: plain click selects exactly the hit
// volume, a modified click toggles its membership.
func (r *Resolver) ClickHit(id string, multi bool) {
	if multi {
		if _, ok := r.selected[id]; ok {
			delete(r.selected, id)
		} else {
			r.selected[id] = struct{}{}
		}
	} else {
		r.selected = map[string]struct{}{id: {}}
	}
	r.recompute()
	r.emit()
}

// ClickMiss applies a pointer miss per the pinned policy.
func (r *Resolver) ClickMiss(multi bool) {
	if multi || len(r.selected) == 0 {
		return
	}
	r.selected = make(map[string]struct{})
	r.recompute()
	r.emit()
}

// ClearSelection empties the selection unconditionally.
func (r *Resolver) ClearSelection() {
	if len(r.selected) == 0 {
		return
	}
	r.selected = make(map[string]struct{})
	r.recompute()
	r.emit()
}

// StateFor resolves one identifier: selected beats matched beats base.
// Pure in (id, matched, selected).
func (r *Resolver) StateFor(id string) VisualState {
	if _, ok := r.selected[id]; ok {
		return StateSelected
	}
	if _, ok := r.matched[id]; ok {
		return StateMatched
	}
	return StateBase
}

// States returns the visual states in scene slot order. The slice is owned
// by the resolver; callers must not mutate it.
func (r *Resolver) States() []VisualState {
	return r.states
}

// StateAt returns the state for a scene slot.
func (r *Resolver) StateAt(slot int) VisualState {
	if slot < 0 || slot >= len(r.states) {
		return StateBase
	}
	return r.states[slot]
}

// Selected returns the selected identifiers, sorted for a stable payload.
func (r *Resolver) Selected() []string {
	out := make([]string, 0, len(r.selected))
	for id := range r.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsSelected reports membership in the selected set.
func (r *Resolver) IsSelected(id string) bool {
	_, ok := r.selected[id]
	return ok
}

// recompute rewrites the state slice, linear in the number of volumes.
func (r *Resolver) recompute() {
	for i, id := range r.ids {
		r.states[i] = r.StateFor(id)
	}
}

func (r *Resolver) emit() {
	if r.onSelection != nil {
		r.onSelection(r.Selected())
	}
}
