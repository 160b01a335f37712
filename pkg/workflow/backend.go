package workflow

import (
	"context"

	"farewatch/pkg/models"
)

// Backend is the pricing service surface the workflow depends on.
// *api.Client satisfies it; tests substitute fakes.
type Backend interface {
	ComparePrices(ctx context.Context, req models.TripRequest) ([]models.PriceEstimate, error)
	CompareFlights(ctx context.Context, req models.FlightRequest) ([]models.FlightEstimate, error)
	AutocompleteCities(ctx context.Context, query string) ([]string, error)
	TrackRoute(ctx context.Context, req models.TrackRouteRequest) (models.TrackedRoute, error)
	TrackedRoutes(ctx context.Context, phone string) ([]models.TrackedRoute, error)
	DeleteTrackedRoute(ctx context.Context, id int) error
}
