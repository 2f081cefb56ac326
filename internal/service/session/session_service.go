package session

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"skyline/internal/config"
	"skyline/internal/engine/camera"
	"skyline/internal/engine/highlight"
	"skyline/internal/engine/scene"
	"skyline/internal/model"
	"skyline/internal/service/storage"
	"skyline/internal/service/viewport"
	"skyline/internal/util"
)

// Session is one headless viewer attached to a dataset. All interaction
// goes through the embedded viewport; the session only tracks identity,
// frame counting and the latest emitted selection.
type Session struct {
	ID        string
	CreatedAt time.Time

	records  []model.BuildingRecord
	viewport *viewport.Viewport
	frames   atomic.Int64

	mu        sync.Mutex
	selection []string
	fatal     error
}

// frameCounter is the viewport.FrameSink for headless sessions. There is
// no render target, so a frame is just a counter tick.
type frameCounter struct {
	sess *Session
}

func (f frameCounter) RenderFrame(_ *scene.Scene, _ *camera.Camera, _ []highlight.VisualState) error {
	f.sess.frames.Add(1)
	return nil
}

// Frames returns how many frames the render loop has produced.
func (s *Session) Frames() int64 {
	return s.frames.Load()
}

// Selection returns the latest selection emitted by the viewport.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selection))
	copy(out, s.selection)
	return out
}

// Fatal reports the render-context loss error, if any. A session with a
// lost context keeps answering queries but produces no further frames.
func (s *Session) Fatal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

// Viewport exposes the underlying viewport for interaction handlers.
func (s *Session) Viewport() *viewport.Viewport {
	return s.viewport
}

// Records returns the dataset the session was created over.
func (s *Session) Records() []model.BuildingRecord {
	return s.records
}

// SessionService manages the set of live viewer sessions
type SessionService struct {
	storage storage.Storage[string, *Session]
}

var (
	sessionServiceInstance *SessionService
	sessionServiceOnce     sync.Once
)

// GetSessionService returns the singleton instance of the SessionService
func GetSessionService() *SessionService {
	sessionServiceOnce.Do(func() {
		sessionServiceInstance = &SessionService{
			storage: storage.NewMemoryStorage[string, *Session](),
		}
	})
	return sessionServiceInstance
}

// Create builds a new session over the given records, starts its render
// loop and registers it for interaction.
func (s *SessionService) Create(records []model.BuildingRecord, width, height int) (*Session, error) {
	startTime := time.Now()

	sess := &Session{
		ID:        util.ShortUUID(),
		CreatedAt: time.Now(),
		records:   records,
	}

	vp := viewport.New(
		viewport.Config{
			Width:         width,
			Height:        height,
			FrameInterval: config.FrameInterval,
		},
		frameCounter{sess},
		func(ids []string) {
			sess.mu.Lock()
			sess.selection = ids
			sess.mu.Unlock()
		},
		func(err error) {
			sess.mu.Lock()
			sess.fatal = err
			sess.mu.Unlock()
			log.Printf("Session %s lost its render context: %v", sess.ID, err)
		},
	)
	vp.LoadDataset(records)
	sess.viewport = vp

	s.storage.Set(sess.ID, sess)

	volumes, skipped := vp.Stats()
	log.Printf("Created session %s with %d volumes (%d skipped) in %v",
		sess.ID, volumes, skipped, time.Since(startTime))
	return sess, nil
}

// Get returns the session and refreshes its idle timer.
func (s *SessionService) Get(id string) (*Session, error) {
	sess, ok := s.storage.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return sess, nil
}

// Delete closes the session's viewport and removes it.
func (s *SessionService) Delete(id string) bool {
	sess, ok := s.storage.Get(id)
	if !ok {
		return false
	}
	sess.viewport.Close()
	return s.storage.Delete(id)
}

// ReapIdle closes and removes sessions idle for longer than maxIdle.
// Returns how many were reaped.
func (s *SessionService) ReapIdle(maxIdle time.Duration) int {
	idle := s.storage.IdleKeys(maxIdle)
	reaped := 0
	for _, id := range idle {
		if s.Delete(id) {
			reaped++
		}
	}
	if reaped > 0 {
		log.Printf("Reaped %d idle sessions", reaped)
	}
	return reaped
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	return s.storage.Count()
}
