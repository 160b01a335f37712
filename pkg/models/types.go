package models

import "time"

// Cabin classes accepted by the flight comparison endpoint.
const (
	CabinEconomy        = "economy"
	CabinPremiumEconomy = "premium_economy"
	CabinBusiness       = "business"
	CabinFirst          = "first"
)

// TripRequest is a cab comparison request as entered by the user.
// Immutable once submitted.
type TripRequest struct {
	Pickup         string `json:"pickup_address"`
	Dropoff        string `json:"dropoff_address"`
	PassengerCount int    `json:"passenger_count"`
}

// PriceEstimate is one provider's quote for a trip. The backend owns the
// ordering of a result set and the Recommended flag; the client never
// re-sorts or recomputes either.
type PriceEstimate struct {
	Provider      string  `json:"service"`
	PriceEstimate string  `json:"price_estimate"`
	Duration      int     `json:"duration"`
	Distance      float64 `json:"distance"`
	Pickup        string  `json:"pickup"`
	Dropoff       string  `json:"dropoff"`
	AppURL        string  `json:"app_url"`
	WebURL        string  `json:"web_url"`
	Recommended   bool    `json:"recommended"`
	Capacity      string  `json:"capacity"`
}

type FlightRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
	CabinClass    string `json:"cabin_class"`
}

type FlightEstimate struct {
	Provider      string `json:"provider"`
	PriceEstimate string `json:"price_estimate"`
	Duration      int    `json:"duration"`
	Stops         int    `json:"stops"`
	CabinClass    string `json:"cabin_class"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	BookingURL    string `json:"booking_url"`
	Recommended   bool   `json:"recommended"`
}

// TrackRouteRequest registers a price-drop alert with the backend.
type TrackRouteRequest struct {
	Pickup         string  `json:"pickup_address"`
	Dropoff        string  `json:"dropoff_address"`
	PassengerCount int     `json:"passenger_count"`
	PhoneNumber    string  `json:"phone_number"`
	TargetPrice    float64 `json:"target_price"`
}

// TrackedRoute is a standing price-drop alert. IsActive flips to false on
// the backend once the notification fires; deletion is terminal.
type TrackedRoute struct {
	ID             int       `json:"id"`
	Pickup         string    `json:"pickup"`
	Dropoff        string    `json:"dropoff"`
	PassengerCount int       `json:"passenger_count"`
	PhoneNumber    string    `json:"phone_number"`
	TargetPrice    float64   `json:"target_price"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient user-facing status message. At most one is visible
// at a time; last write wins.
type Notice struct {
	Message  string
	Severity Severity
}
