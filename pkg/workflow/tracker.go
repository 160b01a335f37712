package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"farewatch/pkg/models"
	"farewatch/pkg/utils"
)

// Notice texts for route tracking outcomes.
const (
	TrackStartedMessage = "Route tracking started. You'll be notified when the price drops."
	ListFailedMessage   = "Could not load tracked routes. Check that the phone number is in E.164 format (+1XXXXXXXXXX)."
	RemoveFailedMessage = "Could not remove the tracked route. Please try again."
)

// RouteTracker registers, lists and cancels price-drop alerts. It owns the
// route list for the currently entered phone number; failed calls leave
// that list untouched.
type RouteTracker struct {
	backend Backend
	alerts  *AlertChannel
	logger  *zap.Logger

	listSeq atomic.Uint64

	mu     sync.Mutex
	routes []models.TrackedRoute
}

func NewRouteTracker(backend Backend, alerts *AlertChannel, logger *zap.Logger) *RouteTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteTracker{backend: backend, alerts: alerts, logger: logger}
}

// Create registers a tracked route for an estimate. The target price is the
// estimate's displayed price, parsed back to a number; it is not entered
// separately. An ill-formed phone number fails before any network call.
func (t *RouteTracker) Create(ctx context.Context, est models.PriceEstimate, phone string, passengers int) (models.TrackedRoute, error) {
	if !utils.ValidE164(phone) {
		return models.TrackedRoute{}, ErrInvalidPhoneNumber
	}
	target, err := utils.ParseCurrency(est.PriceEstimate)
	if err != nil {
		return models.TrackedRoute{}, fmt.Errorf("estimate has no usable price: %w", err)
	}

	route, err := t.backend.TrackRoute(ctx, models.TrackRouteRequest{
		Pickup:         est.Pickup,
		Dropoff:        est.Dropoff,
		PassengerCount: passengers,
		PhoneNumber:    phone,
		TargetPrice:    target,
	})
	if err != nil {
		t.logger.Warn("track route failed", zap.Error(err))
		t.alerts.Error(RequestFailedMessage)
		return models.TrackedRoute{}, &RequestFailedError{Op: "track-route", Err: err}
	}

	t.alerts.Success(TrackStartedMessage)
	t.List(ctx, phone)
	return route, nil
}

// List fetches the tracked routes for a phone number. An empty number is a
// no-op. A bare number is normalized with a '+' prefix first; a number that
// is still not E.164 after that fails before any network call. Responses are
// tagged so only the latest issued call may replace the held list.
func (t *RouteTracker) List(ctx context.Context, phone string) ([]models.TrackedRoute, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, nil
	}

	normalized := utils.NormalizePhone(phone)
	if normalized != phone {
		// No country-code inference happens, so a bare non-NANP number may
		// come out invalid here.
		t.logger.Debug("normalized phone number", zap.String("to", normalized))
	}
	if !utils.ValidE164(normalized) {
		return nil, ErrInvalidPhoneNumber
	}

	tag := t.listSeq.Add(1)
	routes, err := t.backend.TrackedRoutes(ctx, normalized)

	// A newer call was issued while this one was in flight; its outcome,
	// success or failure, is the one the user cares about now.
	if tag != t.listSeq.Load() {
		t.logger.Debug("dropping stale route list response", zap.Uint64("tag", tag))
		return t.Routes(), nil
	}

	if err != nil {
		t.logger.Warn("list tracked routes failed", zap.Error(err))
		t.alerts.Error(ListFailedMessage)
		return nil, &RequestFailedError{Op: "tracked-routes", Err: err}
	}

	t.mu.Lock()
	t.routes = routes
	t.mu.Unlock()
	return snapshot(routes), nil
}

// Remove deletes a tracked route and refreshes the list on success.
// Deletion is immediate; there is no confirmation step.
func (t *RouteTracker) Remove(ctx context.Context, id int, phone string) error {
	if err := t.backend.DeleteTrackedRoute(ctx, id); err != nil {
		t.logger.Warn("delete tracked route failed", zap.Int("id", id), zap.Error(err))
		t.alerts.Error(RemoveFailedMessage)
		return &RequestFailedError{Op: "delete-tracked-route", Err: err}
	}
	t.List(ctx, phone)
	return nil
}

// Refresh implements the auto-refresh policy: fetch whenever the routes
// panel is visible and a phone number has been entered.
func (t *RouteTracker) Refresh(ctx context.Context, phone string, panelVisible bool) {
	if !panelVisible || strings.TrimSpace(phone) == "" {
		return
	}
	t.List(ctx, phone)
}

// Routes returns a snapshot of the held route list.
func (t *RouteTracker) Routes() []models.TrackedRoute {
	t.mu.Lock()
	defer t.mu.Unlock()
	return snapshot(t.routes)
}
