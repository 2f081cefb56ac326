package viewport

import (
	"context"
	"log"
	"time"
)

// renderLoop is the recurring frame task. It carries an explicit stop
// handle; stopLoop cancels and waits, so a new loop never starts until the
// previous one is fully gone.
type renderLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (v *Viewport) startLoop() {
	if v.sink == nil {
		return
	}

	v.loopMu.Lock()
	defer v.loopMu.Unlock()
	if v.closed.Load() || v.loop != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	loop := &renderLoop{cancel: cancel, done: make(chan struct{})}
	v.loop = loop

	go func() {
		defer close(loop.done)
		ticker := time.NewTicker(v.cfg.FrameInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := v.renderFrame(); err != nil {
					if err == errClosed {
						return
					}
					// Render-context loss: scene state cannot be
					// trusted, so stop instead of retrying.
					log.Printf("Viewport: render failed, stopping loop: %v", err)
					if v.onFatal != nil {
						v.onFatal(err)
					}
					return
				}
			}
		}
	}()
}

// stopLoop cancels the running loop and blocks until its goroutine exits.
// Safe to call with no loop running.
func (v *Viewport) stopLoop() {
	v.loopMu.Lock()
	loop := v.loop
	v.loop = nil
	v.loopMu.Unlock()

	if loop != nil {
		loop.cancel()
		<-loop.done
	}
}
