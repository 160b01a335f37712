package workflow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"farewatch/pkg/models"
)

const (
	// RequestFailedMessage is the fixed notice text for any backend failure
	// during a comparison.
	RequestFailedMessage = "Could not fetch estimates. Please try again."

	// DefaultGraceWindow is how long the app deep link gets before the web
	// fallback fires.
	DefaultGraceWindow = 1000 * time.Millisecond

	MinPassengers = 1
	MaxPassengers = 7

	dateLayout = "2006-01-02"
)

var validCabins = map[string]bool{
	models.CabinEconomy:        true,
	models.CabinPremiumEconomy: true,
	models.CabinBusiness:       true,
	models.CabinFirst:          true,
}

// QuoteComparator validates trip requests, fetches estimates and owns the
// last successful result sets. A failed request never touches the held
// estimates; a successful one replaces them in a single swap.
type QuoteComparator struct {
	backend     Backend
	alerts      *AlertChannel
	clock       Clock
	logger      *zap.Logger
	graceWindow time.Duration

	mu        sync.Mutex
	inFlight  int
	estimates []models.PriceEstimate
	flights   []models.FlightEstimate
}

func NewQuoteComparator(backend Backend, alerts *AlertChannel, clock Clock, logger *zap.Logger) *QuoteComparator {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteComparator{
		backend:     backend,
		alerts:      alerts,
		clock:       clock,
		logger:      logger,
		graceWindow: DefaultGraceWindow,
	}
}

// ValidateTrip checks every field and reports all problems at once.
func ValidateTrip(req models.TripRequest) *ValidationError {
	fields := make(map[string]string)
	if req.Pickup == "" {
		fields[FieldPickup] = "pickup location is required"
	}
	if req.Dropoff == "" {
		fields[FieldDropoff] = "dropoff location is required"
	}
	if req.PassengerCount < MinPassengers || req.PassengerCount > MaxPassengers {
		fields[FieldPassengers] = "passenger count must be between 1 and 7"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidateFlight checks every field of a flight request at once.
func ValidateFlight(req models.FlightRequest) *ValidationError {
	fields := make(map[string]string)
	if req.Origin == "" {
		fields[FieldOrigin] = "origin is required"
	}
	if req.Destination == "" {
		fields[FieldDestination] = "destination is required"
	}
	if req.Passengers < MinPassengers {
		fields[FieldPassengers] = "at least one passenger is required"
	}

	var depart time.Time
	if req.DepartureDate == "" {
		fields[FieldDepartureDate] = "departure date is required"
	} else {
		var err error
		depart, err = time.Parse(dateLayout, req.DepartureDate)
		if err != nil {
			fields[FieldDepartureDate] = "departure date must be YYYY-MM-DD"
		}
	}
	if req.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, req.ReturnDate)
		if err != nil {
			fields[FieldReturnDate] = "return date must be YYYY-MM-DD"
		} else if !depart.IsZero() && ret.Before(depart) {
			fields[FieldReturnDate] = "return date is before departure"
		}
	}
	if !validCabins[req.CabinClass] {
		fields[FieldCabinClass] = "cabin class must be economy, premium_economy, business or first"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Compare fetches cab estimates for a validated trip request. An empty
// result is a valid, non-error outcome and clears the display.
func (c *QuoteComparator) Compare(ctx context.Context, req models.TripRequest) ([]models.PriceEstimate, error) {
	if verr := ValidateTrip(req); verr != nil {
		return nil, verr
	}

	c.beginRequest()
	defer c.endRequest()

	estimates, err := c.backend.ComparePrices(ctx, req)
	if err != nil {
		c.logger.Warn("price comparison failed", zap.Error(err))
		c.alerts.Error(RequestFailedMessage)
		return nil, &RequestFailedError{Op: "compare-prices", Err: err}
	}

	c.mu.Lock()
	c.estimates = estimates
	c.mu.Unlock()
	return snapshot(estimates), nil
}

// CompareFlights is the flight-flow counterpart of Compare.
func (c *QuoteComparator) CompareFlights(ctx context.Context, req models.FlightRequest) ([]models.FlightEstimate, error) {
	if verr := ValidateFlight(req); verr != nil {
		return nil, verr
	}

	c.beginRequest()
	defer c.endRequest()

	flights, err := c.backend.CompareFlights(ctx, req)
	if err != nil {
		c.logger.Warn("flight comparison failed", zap.Error(err))
		c.alerts.Error(RequestFailedMessage)
		return nil, &RequestFailedError{Op: "compare-flights", Err: err}
	}

	c.mu.Lock()
	c.flights = flights
	c.mu.Unlock()
	return snapshot(flights), nil
}

// Estimates returns a snapshot of the last successful cab result set.
func (c *QuoteComparator) Estimates() []models.PriceEstimate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.estimates)
}

// Flights returns a snapshot of the last successful flight result set.
func (c *QuoteComparator) Flights() []models.FlightEstimate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.flights)
}

// Busy reports whether any comparison request is still in flight. A counter
// rather than a flag: the first of two overlapping requests finishing must
// not clear the indicator while the second is outstanding.
func (c *QuoteComparator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

func (c *QuoteComparator) beginRequest() {
	c.mu.Lock()
	c.inFlight++
	c.mu.Unlock()
}

func (c *QuoteComparator) endRequest() {
	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
}

func snapshot[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
