package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Field names used in ValidationError maps.
const (
	FieldPickup        = "pickup"
	FieldDropoff       = "dropoff"
	FieldPassengers    = "passengers"
	FieldOrigin        = "origin"
	FieldDestination   = "destination"
	FieldDepartureDate = "departure_date"
	FieldReturnDate    = "return_date"
	FieldCabinClass    = "cabin_class"
)

// ErrInvalidPhoneNumber blocks track-route calls whose phone number is not
// E.164 shaped. Raised before any network traffic.
var ErrInvalidPhoneNumber = errors.New("phone number must be in E.164 format (+1XXXXXXXXXX)")

// ValidationError carries one message per offending field so every problem
// with a submission can be reported at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// RequestFailedError wraps any transport, status or decode failure from the
// backend. The previous result state is always left intact when one is
// returned.
type RequestFailedError struct {
	Op  string
	Err error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }
