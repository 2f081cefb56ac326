// Package viewport owns one interactive scene: volumes, camera, picker and
// highlight state, rebuilt from building records and driven by pointer and
// resize events. It replaces what the early iterations did with global
// scene/camera singletons: the whole context is an explicit struct owned by
// the caller, and the render loop is a cancellable task with a stop handle.
package viewport

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"skyline/internal/engine/camera"
	"skyline/internal/engine/extrude"
	"skyline/internal/engine/footprint"
	"skyline/internal/engine/geoproj"
	"skyline/internal/engine/highlight"
	"skyline/internal/engine/pick"
	"skyline/internal/engine/scene"
	"skyline/internal/model"
)

// DefaultFrameInterval paces the render loop when the config leaves it zero.
const DefaultFrameInterval = 100 * time.Millisecond

// FrameSink receives each rendered frame. A non-nil error is treated as
// render-context loss: fatal, surfaced to the owner, never retried.
type FrameSink interface {
	RenderFrame(s *scene.Scene, cam *camera.Camera, states []highlight.VisualState) error
}

// Config sizes a viewport.
type Config struct {
	Width         int
	Height        int
	FrameInterval time.Duration
}

// Viewport is the scene context for one dataset. All state mutation is
// serialized on an internal mutex; the render loop grabs the same mutex per
// frame, so no operation ever observes a half-rebuilt scene.
type Viewport struct {
	cfg     Config
	sink    FrameSink
	onFatal func(error)

	mu       sync.Mutex
	scene    *scene.Scene
	cam      *camera.Camera
	picker   *pick.Picker
	resolver *highlight.Resolver
	skipped  int

	loopMu sync.Mutex
	loop   *renderLoop
	closed atomic.Bool
}

// New creates an empty viewport. onSelection receives the sorted selected
// identifiers after every selection change; sink and both callbacks may be
// nil.
func New(cfg Config, sink FrameSink, onSelection func([]string), onFatal func(error)) *Viewport {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	v := &Viewport{
		cfg:     cfg,
		sink:    sink,
		onFatal: onFatal,
	}
	v.cam = camera.New(cfg.Width, cfg.Height)
	v.scene = scene.Assemble(nil)
	v.picker = pick.New(v.scene)
	v.resolver = highlight.NewResolver(onSelection)
	return v
}

// LoadDataset tears down the previous scene and rebuilds everything from
// the given records: projection, normalization, extrusion, assembly,
// camera framing and pick index. Degenerate records are skipped, not
// fatal. The render loop is stopped before the rebuild and restarted
// after, so two loops never overlap.
func (v *Viewport) LoadDataset(records []model.BuildingRecord) {
	v.stopLoop()

	v.mu.Lock()
	start := time.Now()

	old := v.scene
	volumes, skipped := buildVolumes(records)

	if old != nil {
		old.Clear()
	}
	v.scene = scene.Assemble(volumes)
	v.cam.Frame(v.scene.Center, v.scene.Extent)
	v.picker = pick.New(v.scene)
	v.resolver.Rebind(v.scene.IDs())
	v.skipped = skipped

	log.Printf("Viewport: rebuilt scene with %d volumes (%d records skipped) in %v",
		len(volumes), skipped, time.Since(start))
	v.mu.Unlock()

	v.startLoop()
}

// buildVolumes runs each record through the geometry pipeline. The
// projection origin is anchored at the first valid footprint's first
// vertex and shared by every volume of the pass.
func buildVolumes(records []model.BuildingRecord) ([]*extrude.Volume, int) {
	var projector *geoproj.Projector
	volumes := make([]*extrude.Volume, 0, len(records))
	skipped := 0

	for i := range records {
		rec := &records[i]

		if projector == nil {
			if len(rec.Footprint) == 0 {
				skipped++
				continue
			}
			p, err := geoproj.New(rec.Footprint[0])
			if err != nil {
				log.Printf("Viewport: record %s: %v, skipping", rec.ID, err)
				skipped++
				continue
			}
			projector = p
		}

		planar, err := projector.ProjectRing(rec.Footprint)
		if err != nil {
			log.Printf("Viewport: record %s: %v, skipping", rec.ID, err)
			skipped++
			continue
		}
		ring, err := footprint.Normalize(planar)
		if err != nil {
			log.Printf("Viewport: record %s: %v, skipping", rec.ID, err)
			skipped++
			continue
		}
		volumes = append(volumes, extrude.Build(rec, ring, rec.Height))
	}
	return volumes, skipped
}

// ApplyMatched replaces the matched set. Visual states are recomputed; no
// scene rebuild happens.
func (v *Viewport) ApplyMatched(ids []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resolver.SetMatched(ids)
}

// Click resolves a pointer event at the given screen coordinates and feeds
// the hit or miss into the highlight resolver.
func (v *Viewport) Click(sx, sy float64, multi bool) (hitID string, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	hit, found := v.picker.Pick(v.cam, sx, sy)
	if !found {
		v.resolver.ClickMiss(multi)
		return "", false
	}
	v.resolver.ClickHit(hit.Volume.ID, multi)
	return hit.Volume.ID, true
}

// Resize updates the camera viewport dimensions. Idempotent.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cam.Resize(width, height)
}

// ClearSelection empties the selection on explicit command.
func (v *Viewport) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resolver.ClearSelection()
}

// Focus reframes the camera on one building's centroid at close distance.
// Unknown identifiers are ignored.
func (v *Viewport) Focus(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	vol, ok := v.scene.ByID[id]
	if !ok {
		return false
	}
	v.cam.Focus(vol.Centroid)
	return true
}

// Selection returns the current sorted selected identifiers.
func (v *Viewport) Selection() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolver.Selected()
}

// StateFor returns the visual state of one identifier.
func (v *Viewport) StateFor(id string) highlight.VisualState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolver.StateFor(id)
}

// Stats reports the volume count and how many records the last rebuild
// skipped.
func (v *Viewport) Stats() (volumes, skipped int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.scene.Volumes), v.skipped
}

// Close stops the render loop and releases the scene. The viewport must
// not be used afterwards.
func (v *Viewport) Close() {
	// Flag first: startLoop checks it under loopMu, and stopLoop takes
	// loopMu, so any loop that slipped in before the flag is still caught
	// and stopped below.
	if v.closed.Swap(true) {
		return
	}
	v.stopLoop()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scene != nil {
		v.scene.Clear()
	}
}

var errClosed = errors.New("viewport closed")

func (v *Viewport) renderFrame() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed.Load() {
		return errClosed
	}
	if v.sink == nil {
		return nil
	}
	return v.sink.RenderFrame(v.scene, v.cam, v.resolver.States())
}
