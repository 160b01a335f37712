package workflow

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Suggestion trigger defaults, shared by every location field.
const (
	DefaultMinQueryLen = 2
	DefaultDebounce    = 250 * time.Millisecond
)

// SuggesterConfig tunes when a keystroke turns into an autocomplete call.
type SuggesterConfig struct {
	MinQueryLen int
	Debounce    time.Duration
}

// LocationSuggester issues debounced place-name lookups for free-text
// fields. Each field keeps a monotonically increasing request tag; a
// response whose tag is no longer the latest issued for its field is
// dropped, so a slow old response can never overwrite a newer suggestion
// list. Autocomplete is a secondary feature: transport failures are logged
// and otherwise swallowed.
type LocationSuggester struct {
	backend Backend
	clock   Clock
	logger  *zap.Logger
	cfg     SuggesterConfig

	mu      sync.Mutex
	pending map[string]Timer
	latest  map[string]uint64
}

func NewLocationSuggester(backend Backend, clock Clock, logger *zap.Logger, cfg SuggesterConfig) *LocationSuggester {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinQueryLen <= 0 {
		cfg.MinQueryLen = DefaultMinQueryLen
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &LocationSuggester{
		backend: backend,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
		pending: make(map[string]Timer),
		latest:  make(map[string]uint64),
	}
}

// Suggest schedules a completion lookup for one input field. deliver is
// called with the suggestions once the debounce window closes and the
// response comes back, unless a newer call for the same field supersedes
// this one first. A query below the minimum length clears the field's
// suggestions immediately and invalidates anything in flight.
func (s *LocationSuggester) Suggest(ctx context.Context, field, query string, deliver func([]string)) {
	s.mu.Lock()
	if t := s.pending[field]; t != nil {
		t.Stop()
		delete(s.pending, field)
	}

	if utf8.RuneCountInString(query) < s.cfg.MinQueryLen {
		s.latest[field]++
		s.mu.Unlock()
		deliver(nil)
		return
	}

	s.pending[field] = s.clock.AfterFunc(s.cfg.Debounce, func() {
		s.fetch(ctx, field, query, deliver)
	})
	s.mu.Unlock()
}

func (s *LocationSuggester) fetch(ctx context.Context, field, query string, deliver func([]string)) {
	s.mu.Lock()
	delete(s.pending, field)
	s.latest[field]++
	tag := s.latest[field]
	s.mu.Unlock()

	suggestions, err := s.backend.AutocompleteCities(ctx, query)
	if err != nil {
		s.logger.Debug("autocomplete lookup failed",
			zap.String("field", field),
			zap.String("query", query),
			zap.Error(err))
		return
	}

	s.mu.Lock()
	stale := tag != s.latest[field]
	s.mu.Unlock()
	if stale {
		s.logger.Debug("dropping stale autocomplete response",
			zap.String("field", field),
			zap.Uint64("tag", tag))
		return
	}

	deliver(suggestions)
}
