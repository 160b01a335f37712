package stub

import (
	"fmt"
	"net/url"

	"farewatch/pkg/models"
)

type airlineInfo struct {
	name            string
	baseFare        float64
	durationSeconds int
	stops           int
}

var airlines = []airlineInfo{
	{name: "SkyBridge", baseFare: 120, durationSeconds: 7800, stops: 0},
	{name: "TransGlobal", baseFare: 95, durationSeconds: 10200, stops: 1},
	{name: "AeroValue", baseFare: 78, durationSeconds: 14400, stops: 2},
	{name: "Meridian Air", baseFare: 140, durationSeconds: 7500, stops: 0},
}

var cabinMultipliers = map[string]float64{
	models.CabinEconomy:        1.0,
	models.CabinPremiumEconomy: 1.6,
	models.CabinBusiness:       2.8,
	models.CabinFirst:          4.5,
}

// buildFlightEstimates quotes each mock airline for a flight request. Fares
// scale with a route factor, the cabin class and the passenger count;
// round trips double the fare. The cheapest quote is recommended.
func buildFlightEstimates(req models.FlightRequest) []models.FlightEstimate {
	var h uint32
	for _, r := range req.Origin + ">" + req.Destination {
		h = h*31 + uint32(r)
	}
	routeFactor := 1.0 + float64(h%150)/100

	multiplier := cabinMultipliers[req.CabinClass]
	if multiplier == 0 {
		multiplier = 1.0
	}

	estimates := make([]models.FlightEstimate, 0, len(airlines))
	cheapestIdx, cheapestFare := -1, 0.0
	for _, a := range airlines {
		fare := a.baseFare * routeFactor * multiplier * float64(req.Passengers)
		if req.ReturnDate != "" {
			fare *= 2
		}

		booking := fmt.Sprintf("https://flights.example.com/book?airline=%s&from=%s&to=%s&date=%s",
			url.QueryEscape(a.name), url.QueryEscape(req.Origin),
			url.QueryEscape(req.Destination), url.QueryEscape(req.DepartureDate))

		estimates = append(estimates, models.FlightEstimate{
			Provider:      a.name,
			PriceEstimate: fmt.Sprintf("$%.2f", fare),
			Duration:      a.durationSeconds,
			Stops:         a.stops,
			CabinClass:    req.CabinClass,
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			ReturnDate:    req.ReturnDate,
			BookingURL:    booking,
		})
		if cheapestIdx == -1 || fare < cheapestFare {
			cheapestIdx, cheapestFare = len(estimates)-1, fare
		}
	}
	if cheapestIdx >= 0 {
		estimates[cheapestIdx].Recommended = true
	}
	return estimates
}
