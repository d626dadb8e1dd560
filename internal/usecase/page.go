// Package usecase contains the business logic of the application: loading the
// stats document once and deriving every dashboard unit from it.
package usecase

import (
	"context"
	"sync"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/gateway"
	"github.com/rs/zerolog"
)

// FallbackReason is shown when a failure carries no message of its own.
const FallbackReason = "无法加载数据"

// State is the page state. Exactly one of Loading, Failed or Loaded.
type State interface {
	// Name is "loading", "failed" or "loaded".
	Name() string
	isState()
}

// Loading is the state until the fetch settles.
type Loading struct{}

// Failed carries the human-readable reason the document is unavailable.
type Failed struct {
	Reason string
}

// Loaded carries the validated document.
type Loaded struct {
	Data *domain.StatsData
}

func (Loading) Name() string { return "loading" }
func (Failed) Name() string  { return "failed" }
func (Loaded) Name() string  { return "loaded" }

func (Loading) isState() {}
func (Failed) isState()  {}
func (Loaded) isState()  {}

// Page is the page controller. It issues a single fetch for the stats
// document and exposes the resulting state. Once settled, the state never changes.
type Page struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger

	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	state State
}

// NewPage creates a Page in the Loading state.
func NewPage(fetcher gateway.Fetcher, logger zerolog.Logger) *Page {
	return &Page{
		fetcher: fetcher,
		logger:  logger,
		done:    make(chan struct{}),
		state:   Loading{},
	}
}

// State returns the current state without blocking.
func (p *Page) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Load performs the fetch on the first call and returns the settled state.
// Later and concurrent calls wait for that same fetch; there is no retry.
func (p *Page) Load(ctx context.Context) State {
	p.once.Do(func() {
		p.logger.Debug().Msg("Usecase: fetching stats document...")
		next := p.fetch(ctx)

		p.mu.Lock()
		p.state = next
		p.mu.Unlock()
		close(p.done)
	})
	<-p.done
	return p.State()
}

// Wait blocks until the fetch settles or ctx is done, whichever comes first.
func (p *Page) Wait(ctx context.Context) (State, error) {
	select {
	case <-p.done:
		return p.State(), nil
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
}

func (p *Page) fetch(ctx context.Context) State {
	data, err := p.fetcher.FetchStats(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Usecase: stats document unavailable")
		reason := err.Error()
		if reason == "" {
			reason = FallbackReason
		}
		return Failed{Reason: reason}
	}
	if data == nil {
		p.logger.Error().Msg("Usecase: fetcher returned no document")
		return Failed{Reason: FallbackReason}
	}
	for _, w := range data.Warnings() {
		p.logger.Warn().Str("warning", w).Msg("Usecase: inconsistent stats document")
	}
	p.logger.Debug().
		Int("repos", len(data.Repos)).
		Int("timeline", len(data.Timeline)).
		Int("arena", len(data.Arena)).
		Msg("Usecase: stats document loaded")
	return Loaded{Data: data}
}
