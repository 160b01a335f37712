package stub

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultCheckInterval is how often active routes are re-priced.
const DefaultCheckInterval = 15 * time.Minute

// Watcher periodically re-prices active tracked routes and fires the
// price-drop alert once the cheapest valid fare reaches the target. The
// alert here is a log line; wiring an SMS provider is out of scope for a
// development stub.
type Watcher struct {
	store    *Store
	logger   *zap.Logger
	interval time.Duration
}

func NewWatcher(store *Store, logger *zap.Logger, interval time.Duration) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Watcher{store: store, logger: logger, interval: interval}
}

// Run checks prices on the configured interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			w.CheckOnce(now)
		}
	}
}

// CheckOnce samples current fares for every active route, records them,
// and deactivates routes whose target price has been met.
func (w *Watcher) CheckOnce(now time.Time) {
	for _, route := range w.store.ActiveRoutes() {
		service, fare := cheapestValidFare(route.Pickup, route.Dropoff, route.PassengerCount, now)
		if service == "" {
			continue
		}
		w.store.RecordPrice(route.ID, service, fare, now)

		if fare <= route.TargetPrice {
			w.logger.Info("price alert",
				zap.Int("route_id", route.ID),
				zap.String("phone", route.PhoneNumber),
				zap.String("service", service),
				zap.Float64("price", fare),
				zap.Float64("target", route.TargetPrice))
			w.store.Deactivate(route.ID)
		}
	}
}
