package workflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"farewatch/pkg/models"
)

// fakeClock drives Clock-based timers deterministically.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	when    time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and fires every due timer in schedule
// order, outside the lock so callbacks can arm new timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.when.After(c.now) {
				continue
			}
			if next == nil || t.when.Before(next.when) {
				next = t
			}
		}
		if next != nil {
			next.fired = true
		}
		c.mu.Unlock()

		if next == nil {
			return
		}
		next.fn()
	}
}

// fakeBackend counts calls and delegates to optional function fields.
type fakeBackend struct {
	mu sync.Mutex

	compareCalls  int
	flightCalls   int
	suggestCalls  int
	trackCalls    int
	listCalls     int
	deleteCalls   int

	compareFn func(models.TripRequest) ([]models.PriceEstimate, error)
	flightFn  func(models.FlightRequest) ([]models.FlightEstimate, error)
	suggestFn func(string) ([]string, error)
	trackFn   func(models.TrackRouteRequest) (models.TrackedRoute, error)
	listFn    func(string) ([]models.TrackedRoute, error)
	deleteFn  func(int) error
}

func (f *fakeBackend) ComparePrices(ctx context.Context, req models.TripRequest) ([]models.PriceEstimate, error) {
	f.mu.Lock()
	f.compareCalls++
	fn := f.compareFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(req)
}

func (f *fakeBackend) CompareFlights(ctx context.Context, req models.FlightRequest) ([]models.FlightEstimate, error) {
	f.mu.Lock()
	f.flightCalls++
	fn := f.flightFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(req)
}

func (f *fakeBackend) AutocompleteCities(ctx context.Context, query string) ([]string, error) {
	f.mu.Lock()
	f.suggestCalls++
	fn := f.suggestFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(query)
}

func (f *fakeBackend) TrackRoute(ctx context.Context, req models.TrackRouteRequest) (models.TrackedRoute, error) {
	f.mu.Lock()
	f.trackCalls++
	fn := f.trackFn
	f.mu.Unlock()
	if fn == nil {
		return models.TrackedRoute{}, nil
	}
	return fn(req)
}

func (f *fakeBackend) TrackedRoutes(ctx context.Context, phone string) ([]models.TrackedRoute, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(phone)
}

func (f *fakeBackend) DeleteTrackedRoute(ctx context.Context, id int) error {
	f.mu.Lock()
	f.deleteCalls++
	fn := f.deleteFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(id)
}

func (f *fakeBackend) calls() (compare, flight, suggest, track, list, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.compareCalls, f.flightCalls, f.suggestCalls, f.trackCalls, f.listCalls, f.deleteCalls
}

func sortedFields(verr *ValidationError) []string {
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
