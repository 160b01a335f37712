package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farewatch/pkg/models"
)

func validTrip() models.TripRequest {
	return models.TripRequest{Pickup: "Manhattan", Dropoff: "Brooklyn", PassengerCount: 2}
}

func TestCompareValidationReportsAllFieldsWithoutNetwork(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	alerts := NewAlertChannel(clock, nil)
	c := NewQuoteComparator(backend, alerts, clock, nil)

	_, err := c.Compare(context.Background(), models.TripRequest{PassengerCount: 2})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldDropoff, FieldPickup}, sortedFields(verr))

	compares, _, _, _, _, _ := backend.calls()
	assert.Zero(t, compares, "validation failure must not reach the backend")
	assert.Nil(t, alerts.Current(), "validation errors are inline, not notices")
}

func TestCompareValidationPickupOnly(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	c := NewQuoteComparator(backend, NewAlertChannel(clock, nil), clock, nil)

	_, err := c.Compare(context.Background(), models.TripRequest{Dropoff: "Brooklyn", PassengerCount: 1})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldPickup}, sortedFields(verr))

	compares, _, _, _, _, _ := backend.calls()
	assert.Zero(t, compares)
}

func TestComparePassengerBounds(t *testing.T) {
	clock := newFakeClock()
	c := NewQuoteComparator(&fakeBackend{}, NewAlertChannel(clock, nil), clock, nil)

	for _, count := range []int{0, 8, -1} {
		req := validTrip()
		req.PassengerCount = count
		_, err := c.Compare(context.Background(), req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "count %d", count)
		assert.Contains(t, verr.Fields, FieldPassengers)
	}
}

func TestCompareSuccessReplacesEstimates(t *testing.T) {
	clock := newFakeClock()
	first := []models.PriceEstimate{{Provider: "Uber", PriceEstimate: "$10.00"}}
	second := []models.PriceEstimate{
		{Provider: "Lyft", PriceEstimate: "$9.00", Recommended: true},
		{Provider: "Uber", PriceEstimate: "$11.00"},
	}
	results := [][]models.PriceEstimate{first, second}
	backend := &fakeBackend{}
	backend.compareFn = func(models.TripRequest) ([]models.PriceEstimate, error) {
		r := results[0]
		results = results[1:]
		return r, nil
	}
	c := NewQuoteComparator(backend, NewAlertChannel(clock, nil), clock, nil)

	got, err := c.Compare(context.Background(), validTrip())
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = c.Compare(context.Background(), validTrip())
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Equal(t, second, c.Estimates())
}

func TestCompareFailureKeepsPreviousEstimatesAndNotifies(t *testing.T) {
	clock := newFakeClock()
	held := []models.PriceEstimate{{Provider: "Uber", PriceEstimate: "$10.00"}}
	fail := false
	backend := &fakeBackend{}
	backend.compareFn = func(models.TripRequest) ([]models.PriceEstimate, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return held, nil
	}
	alerts := NewAlertChannel(clock, nil)
	c := NewQuoteComparator(backend, alerts, clock, nil)

	_, err := c.Compare(context.Background(), validTrip())
	require.NoError(t, err)

	fail = true
	_, err = c.Compare(context.Background(), validTrip())

	var rerr *RequestFailedError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, held, c.Estimates(), "failed request must not touch held estimates")

	n := alerts.Current()
	require.NotNil(t, n)
	assert.Equal(t, models.SeverityError, n.Severity)
	assert.Equal(t, RequestFailedMessage, n.Message)

	assert.False(t, c.Busy(), "busy flag must clear on failure")
}

func TestBusyHeldAcrossOverlappingCompares(t *testing.T) {
	clock := newFakeClock()
	c := (*QuoteComparator)(nil)

	nested := false
	backend := &fakeBackend{}
	backend.compareFn = func(models.TripRequest) ([]models.PriceEstimate, error) {
		if !nested {
			// A second request starts and finishes while the first is still
			// in flight; the first must still read as busy afterwards.
			nested = true
			_, err := c.Compare(context.Background(), validTrip())
			require.NoError(t, err)
			assert.True(t, c.Busy(), "finishing an overlapping request must not clear busy")
		}
		return []models.PriceEstimate{{Provider: "Uber", PriceEstimate: "$10.00"}}, nil
	}
	c = NewQuoteComparator(backend, NewAlertChannel(clock, nil), clock, nil)

	_, err := c.Compare(context.Background(), validTrip())
	require.NoError(t, err)
	assert.False(t, c.Busy(), "busy must clear once every request has finished")
}

func TestCompareEmptyResultIsNotAnError(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	backend.compareFn = func(models.TripRequest) ([]models.PriceEstimate, error) {
		return []models.PriceEstimate{}, nil
	}
	alerts := NewAlertChannel(clock, nil)
	c := NewQuoteComparator(backend, alerts, clock, nil)

	got, err := c.Compare(context.Background(), validTrip())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Nil(t, alerts.Current(), "empty result set is not a failure")
}

func TestCompareFlightsValidation(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	c := NewQuoteComparator(backend, NewAlertChannel(clock, nil), clock, nil)

	_, err := c.CompareFlights(context.Background(), models.FlightRequest{
		Origin:        "",
		Destination:   "Boston",
		DepartureDate: "not-a-date",
		ReturnDate:    "2024-07-01",
		Passengers:    1,
		CabinClass:    "luxury",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		[]string{FieldCabinClass, FieldDepartureDate, FieldOrigin},
		sortedFields(verr))

	_, flights, _, _, _, _ := backend.calls()
	assert.Zero(t, flights)
}

func TestCompareFlightsReturnBeforeDeparture(t *testing.T) {
	clock := newFakeClock()
	c := NewQuoteComparator(&fakeBackend{}, NewAlertChannel(clock, nil), clock, nil)

	_, err := c.CompareFlights(context.Background(), models.FlightRequest{
		Origin:        "New York",
		Destination:   "Boston",
		DepartureDate: "2024-07-10",
		ReturnDate:    "2024-07-01",
		Passengers:    2,
		CabinClass:    models.CabinBusiness,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldReturnDate}, sortedFields(verr))
}

func TestOpenEstimateSchedulesWebFallback(t *testing.T) {
	clock := newFakeClock()
	c := NewQuoteComparator(&fakeBackend{}, NewAlertChannel(clock, nil), clock, nil)

	est := models.PriceEstimate{
		AppURL: "uber://?action=setPickup",
		WebURL: "https://m.uber.com/looking",
	}

	var opened []string
	c.OpenEstimate(est, func(url string) { opened = append(opened, url) })

	require.Equal(t, []string{est.AppURL}, opened, "app link opens immediately")

	clock.Advance(999 * time.Millisecond)
	assert.Len(t, opened, 1, "web fallback fired inside the grace window")

	clock.Advance(1 * time.Millisecond)
	require.Len(t, opened, 2)
	assert.Equal(t, est.WebURL, opened[1])
}

func TestOpenEstimateCancelStopsFallback(t *testing.T) {
	clock := newFakeClock()
	c := NewQuoteComparator(&fakeBackend{}, NewAlertChannel(clock, nil), clock, nil)

	est := models.PriceEstimate{AppURL: "lyft://ridetype", WebURL: "https://ride.lyft.com"}

	var opened []string
	plan := c.OpenEstimate(est, func(url string) { opened = append(opened, url) })
	plan.Cancel()

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{est.AppURL}, opened)
	assert.False(t, plan.Fired())
}
