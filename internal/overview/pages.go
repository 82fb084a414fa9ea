package overview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SignalGrid is the server-side stand-in for a browser grid. Draw requests
// are kept until a long-polling client collects them with Wait.
type SignalGrid struct {
	mu      sync.Mutex
	pending bool
	mode    DrawMode
	wake    chan struct{}
}

// NewSignalGrid returns a grid with no pending redraw.
func NewSignalGrid() *SignalGrid {
	return &SignalGrid{wake: make(chan struct{})}
}

// Draw records a redraw request and wakes every waiter.
func (g *SignalGrid) Draw(mode DrawMode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = true
	g.mode = mode
	close(g.wake)
	g.wake = make(chan struct{})
}

// Wait blocks until a redraw is pending or ctx is done. A collected redraw
// is cleared, so each Draw is delivered once.
func (g *SignalGrid) Wait(ctx context.Context) (DrawMode, bool) {
	for {
		g.mu.Lock()
		if g.pending {
			g.pending = false
			mode := g.mode
			g.mu.Unlock()
			return mode, true
		}
		wake := g.wake
		g.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return "", false
		}
	}
}

// Page is one open overview page: its controller and the grid it drives.
type Page struct {
	ID         string
	Controller *Controller
	Grid       *SignalGrid
	Created    time.Time

	cancel   context.CancelFunc
	lastSeen time.Time
}

// ControllerFactory builds the controller of a new page. The page id is
// passed so page URLs can carry it.
type ControllerFactory func(pageID string) *Controller

// PageRegistry keeps open pages in memory. A page not touched for the TTL
// is dropped and its override fetch cancelled.
type PageRegistry struct {
	base    context.Context
	ttl     time.Duration
	factory ControllerFactory
	logger  zerolog.Logger
	now     func() time.Time

	mu    sync.Mutex
	pages map[string]*Page
}

// NewPageRegistry creates a registry. Page contexts derive from base, so
// cancelling base stops every fetch.
func NewPageRegistry(base context.Context, ttl time.Duration, factory ControllerFactory, logger zerolog.Logger) *PageRegistry {
	return &PageRegistry{
		base:    base,
		ttl:     ttl,
		factory: factory,
		logger:  logger,
		now:     time.Now,
		pages:   make(map[string]*Page),
	}
}

// Open builds a page, constructs its grid and starts the override fetch.
func (r *PageRegistry) Open() *Page {
	ctx, cancel := context.WithCancel(r.base)
	now := r.now()
	id := uuid.NewString()
	p := &Page{
		ID:         id,
		Controller: r.factory(id),
		Grid:       NewSignalGrid(),
		Created:    now,
		cancel:     cancel,
		lastSeen:   now,
	}

	r.mu.Lock()
	r.pages[p.ID] = p
	r.mu.Unlock()

	p.Controller.Start(ctx, p.Grid)
	r.logger.Debug().Str("page", p.ID).Msg("overview: page opened")
	return p
}

// Get returns a live page and refreshes its TTL.
func (r *PageRegistry) Get(id string) (*Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(p, now) {
		r.dropLocked(p)
		return nil, false
	}
	p.lastSeen = now
	return p, true
}

// Sweep drops expired pages and returns how many were dropped.
func (r *PageRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	dropped := 0
	for _, p := range r.pages {
		if r.expired(p, now) {
			r.dropLocked(p)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done, then closes all pages.
func (r *PageRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug().Int("pages", n).Msg("overview: expired pages dropped")
			}
		}
	}
}

// Close drops every page.
func (r *PageRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pages {
		r.dropLocked(p)
	}
}

// Len returns the number of open pages.
func (r *PageRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

func (r *PageRegistry) expired(p *Page, now time.Time) bool {
	return r.ttl > 0 && now.Sub(p.lastSeen) > r.ttl
}

func (r *PageRegistry) dropLocked(p *Page) {
	p.cancel()
	delete(r.pages, p.ID)
}
