package cv

import (
	"sync"
	"time"

	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/pkg/logger"
	"go.uber.org/zap"
)

// Generator tracks the preview lifecycle: idle, generating for a fixed
// delay, then ready. Each request bumps a generation counter so a timer
// from an earlier request can never complete a later one.
type Generator struct {
	delay  time.Duration
	logger logger.Logger

	mu          sync.Mutex
	state       cv.State
	generation  uint64
	timer       *time.Timer
	requestedAt time.Time
	readyAt     time.Time
	closed      bool
}

func NewGenerator(delay time.Duration, log logger.Logger) *Generator {
	return &Generator{delay: delay, logger: log, state: cv.StateIdle}
}

// Request starts generation. It is ignored while a generation is already
// running; from ready it starts over.
func (g *Generator) Request() cv.PreviewStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || g.state == cv.StateGenerating {
		return g.statusLocked()
	}

	g.generation++
	gen := g.generation
	g.state = cv.StateGenerating
	g.requestedAt = time.Now().UTC()
	g.readyAt = time.Time{}
	g.timer = time.AfterFunc(g.delay, func() { g.complete(gen) })

	g.logger.Debug("Preview generation started", zap.Uint64("generation", gen), zap.Duration("delay", g.delay))
	return g.statusLocked()
}

func (g *Generator) complete(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || gen != g.generation || g.state != cv.StateGenerating {
		return
	}
	g.state = cv.StateReady
	g.readyAt = time.Now().UTC()
	g.timer = nil
	g.logger.Debug("Preview ready", zap.Uint64("generation", gen))
}

func (g *Generator) Status() cv.PreviewStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

// Reset cancels any pending generation and returns to idle.
func (g *Generator) Reset() cv.PreviewStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.state = cv.StateIdle
	g.requestedAt = time.Time{}
	g.readyAt = time.Time{}
	return g.statusLocked()
}

// Close stops the pending timer. Later requests are ignored.
func (g *Generator) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.closed = true
}

func (g *Generator) stopLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.generation++
}

func (g *Generator) statusLocked() cv.PreviewStatus {
	st := cv.PreviewStatus{State: g.state}
	if !g.requestedAt.IsZero() {
		t := g.requestedAt
		st.RequestedAt = &t
	}
	if !g.readyAt.IsZero() {
		t := g.readyAt
		st.ReadyAt = &t
	}
	return st
}
