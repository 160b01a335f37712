package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farewatch/pkg/models"
)

var testEstimate = models.PriceEstimate{
	Provider:      "Uber",
	PriceEstimate: "$23.50",
	Pickup:        "Manhattan",
	Dropoff:       "Brooklyn",
}

func TestCreateRejectsMalformedPhoneWithoutNetwork(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	tr := NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	bad := []string{
		"",
		"5551234567",        // no leading +
		"+05551234567",      // country code can't start with 0
		"+1555",             // too short
		"+15551234567890123", // too long
		"+1555123456a",      // non-digit
	}
	for _, phone := range bad {
		_, err := tr.Create(context.Background(), testEstimate, phone, 2)
		assert.ErrorIs(t, err, ErrInvalidPhoneNumber, "phone %q", phone)
	}

	_, _, _, tracks, lists, _ := backend.calls()
	assert.Zero(t, tracks)
	assert.Zero(t, lists)
}

func TestCreateParsesTargetPriceFromEstimate(t *testing.T) {
	clock := newFakeClock()
	var captured models.TrackRouteRequest
	backend := &fakeBackend{}
	backend.trackFn = func(req models.TrackRouteRequest) (models.TrackedRoute, error) {
		captured = req
		return models.TrackedRoute{ID: 7, TargetPrice: req.TargetPrice, IsActive: true}, nil
	}
	alerts := NewAlertChannel(clock, nil)
	tr := NewRouteTracker(backend, alerts, nil)

	route, err := tr.Create(context.Background(), testEstimate, "+15551234567", 2)
	require.NoError(t, err)

	assert.Equal(t, 23.50, captured.TargetPrice)
	assert.Equal(t, "Manhattan", captured.Pickup)
	assert.Equal(t, "Brooklyn", captured.Dropoff)
	assert.Equal(t, 2, captured.PassengerCount)
	assert.Equal(t, 7, route.ID)

	// Success notice plus an automatic list refresh.
	n := alerts.Current()
	require.NotNil(t, n)
	assert.Equal(t, models.SeveritySuccess, n.Severity)

	_, _, _, _, lists, _ := backend.calls()
	assert.Equal(t, 1, lists)
}

func TestCreateBackendFailureNotifies(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	backend.trackFn = func(models.TrackRouteRequest) (models.TrackedRoute, error) {
		return models.TrackedRoute{}, errors.New("boom")
	}
	alerts := NewAlertChannel(clock, nil)
	tr := NewRouteTracker(backend, alerts, nil)

	_, err := tr.Create(context.Background(), testEstimate, "+15551234567", 2)

	var rerr *RequestFailedError
	require.ErrorAs(t, err, &rerr)
	n := alerts.Current()
	require.NotNil(t, n)
	assert.Equal(t, models.SeverityError, n.Severity)
}

func TestListRejectsMalformedPhoneWithoutNetwork(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	tr := NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	for _, phone := range []string{"+0555", "not-a-number", "+1555123456x"} {
		_, err := tr.List(context.Background(), phone)
		assert.ErrorIs(t, err, ErrInvalidPhoneNumber, "phone %q", phone)
	}

	_, _, _, _, lists, _ := backend.calls()
	assert.Zero(t, lists)
}

func TestListEmptyPhoneIsNoOp(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	tr := NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	routes, err := tr.List(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, routes)

	_, _, _, _, lists, _ := backend.calls()
	assert.Zero(t, lists)
}

func TestListNormalizesBarePhone(t *testing.T) {
	clock := newFakeClock()
	var queried string
	backend := &fakeBackend{}
	backend.listFn = func(phone string) ([]models.TrackedRoute, error) {
		queried = phone
		return []models.TrackedRoute{{ID: 1, IsActive: true}}, nil
	}
	tr := NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	routes, err := tr.List(context.Background(), "15551234567")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", queried)
	assert.Len(t, routes, 1)
}

func TestListFailureKeepsHeldRoutes(t *testing.T) {
	clock := newFakeClock()
	held := []models.TrackedRoute{{ID: 3, Pickup: "Manhattan", IsActive: true}}
	fail := false
	backend := &fakeBackend{}
	backend.listFn = func(string) ([]models.TrackedRoute, error) {
		if fail {
			return nil, errors.New("502")
		}
		return held, nil
	}
	alerts := NewAlertChannel(clock, nil)
	tr := NewRouteTracker(backend, alerts, nil)

	_, err := tr.List(context.Background(), "+15551234567")
	require.NoError(t, err)

	fail = true
	_, err = tr.List(context.Background(), "+15551234567")
	var rerr *RequestFailedError
	require.ErrorAs(t, err, &rerr)

	assert.Equal(t, held, tr.Routes(), "failed list must not clear held routes")
	n := alerts.Current()
	require.NotNil(t, n)
	assert.Equal(t, ListFailedMessage, n.Message)
}

func TestListDropsStaleResponse(t *testing.T) {
	clock := newFakeClock()
	tr := (*RouteTracker)(nil)

	newer := []models.TrackedRoute{{ID: 2, Pickup: "Queens", IsActive: true}}
	older := []models.TrackedRoute{{ID: 1, Pickup: "Manhattan", IsActive: true}}

	nested := false
	backend := &fakeBackend{}
	backend.listFn = func(string) ([]models.TrackedRoute, error) {
		if !nested {
			// While the first call is in flight, a newer one starts and
			// completes.
			nested = true
			got, err := tr.List(context.Background(), "+15551234567")
			require.NoError(t, err)
			assert.Equal(t, newer, got)
			return older, nil
		}
		return newer, nil
	}
	tr = NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	got, err := tr.List(context.Background(), "+15551234567")
	require.NoError(t, err)

	assert.Equal(t, newer, got, "superseded response must yield the held list")
	assert.Equal(t, newer, tr.Routes(), "out-of-order response must not replace the held routes")
}

func TestListStaleFailureStaysSilent(t *testing.T) {
	clock := newFakeClock()
	tr := (*RouteTracker)(nil)

	held := []models.TrackedRoute{{ID: 4, IsActive: true}}

	nested := false
	backend := &fakeBackend{}
	backend.listFn = func(string) ([]models.TrackedRoute, error) {
		if !nested {
			nested = true
			_, err := tr.List(context.Background(), "+15551234567")
			require.NoError(t, err)
			return nil, errors.New("connection reset")
		}
		return held, nil
	}
	alerts := NewAlertChannel(clock, nil)
	tr = NewRouteTracker(backend, alerts, nil)

	got, err := tr.List(context.Background(), "+15551234567")
	require.NoError(t, err, "a superseded failure is not the caller's problem")

	assert.Equal(t, held, got)
	assert.Nil(t, alerts.Current(), "stale failure must not raise a notice")
}

func TestRemoveRefreshesList(t *testing.T) {
	clock := newFakeClock()
	routes := []models.TrackedRoute{
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: true},
	}
	backend := &fakeBackend{}
	backend.deleteFn = func(id int) error {
		for i, r := range routes {
			if r.ID == id {
				routes = append(routes[:i], routes[i+1:]...)
				return nil
			}
		}
		return errors.New("not found")
	}
	backend.listFn = func(string) ([]models.TrackedRoute, error) {
		out := make([]models.TrackedRoute, len(routes))
		copy(out, routes)
		return out, nil
	}
	tr := NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	require.NoError(t, tr.Remove(context.Background(), 1, "+15551234567"))

	held := tr.Routes()
	require.Len(t, held, 1)
	assert.Equal(t, 2, held[0].ID)

	// Removing it again fails and raises a notice, list untouched.
	err := tr.Remove(context.Background(), 1, "+15551234567")
	var rerr *RequestFailedError
	require.ErrorAs(t, err, &rerr)
	assert.Len(t, tr.Routes(), 1)
}

func TestRefreshPolicy(t *testing.T) {
	clock := newFakeClock()
	backend := &fakeBackend{}
	tr := NewRouteTracker(backend, NewAlertChannel(clock, nil), nil)

	tr.Refresh(context.Background(), "", true)
	tr.Refresh(context.Background(), "+15551234567", false)
	_, _, _, _, lists, _ := backend.calls()
	assert.Zero(t, lists, "refresh needs both a phone number and a visible panel")

	tr.Refresh(context.Background(), "+15551234567", true)
	_, _, _, _, lists, _ = backend.calls()
	assert.Equal(t, 1, lists)
}
