package stub

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"farewatch/pkg/models"
)

// Cities served by the autocomplete endpoint.
var cities = []string{
	"Manhattan", "Brooklyn", "Queens", "Bronx", "Staten Island",
	"Guntur", "Vijayawada", "Hyderabad", "Chennai", "Bangalore",
	"Mumbai", "Delhi", "Kolkata", "AP", "Telangana",
	"New York", "Boston", "Philadelphia",
}

type routePair struct{ from, to string }

type routeInfo struct {
	distanceMiles   float64
	durationSeconds int
}

// Known pairs; anything else falls back to a deterministic estimate.
var knownRoutes = map[routePair]routeInfo{
	{"New York", "Boston"}:        {215.0, 14400},
	{"New York", "Philadelphia"}:  {97.0, 7200},
	{"Boston", "Philadelphia"}:    {308.0, 18000},
	{"Manhattan", "Brooklyn"}:     {8.0, 1800},
	{"Manhattan", "Queens"}:       {10.0, 2400},
	{"Brooklyn", "Queens"}:        {9.0, 1800},
	{"Guntur", "AP"}:              {15.0, 1800},
	{"Vijayawada", "AP"}:          {15.0, 1800},
}

// routeDistance resolves distance and duration for a pickup/dropoff pair,
// in either direction. Unknown pairs get a stable synthetic estimate so
// repeated calls agree.
func routeDistance(pickup, dropoff string) routeInfo {
	if info, ok := knownRoutes[routePair{pickup, dropoff}]; ok {
		return info
	}
	if info, ok := knownRoutes[routePair{dropoff, pickup}]; ok {
		return info
	}

	var h uint32
	for _, r := range pickup + "|" + dropoff {
		h = h*31 + uint32(r)
	}
	miles := 3.0 + float64(h%40)
	return routeInfo{distanceMiles: miles, durationSeconds: int(miles * 180)}
}

type fareRates struct {
	baseFare      float64
	costPerMile   float64
	costPerMinute float64
	bookingFee    float64
}

var serviceRates = map[string]fareRates{
	"Bike":   {baseFare: 1.00, costPerMile: 0.75, costPerMinute: 0.10, bookingFee: 1.00},
	"Uber":   {baseFare: 2.00, costPerMile: 1.50, costPerMinute: 0.25, bookingFee: 2.00},
	"Lyft":   {baseFare: 2.00, costPerMile: 1.50, costPerMinute: 0.25, bookingFee: 2.00},
	"UberXL": {baseFare: 3.00, costPerMile: 2.00, costPerMinute: 0.35, bookingFee: 2.50},
}

// maxSeats is the top of each service's capacity range.
var maxSeats = map[string]int{
	"Bike":   2,
	"Uber":   4,
	"Lyft":   4,
	"UberXL": 7,
}

var capacityLabels = map[string]string{
	"Bike":   "1-2 passengers",
	"Uber":   "1-4 passengers",
	"Lyft":   "1-4 passengers",
	"UberXL": "1-7 passengers",
}

// calculateFare prices a ride from distance, duration and service rates,
// with a 1.5x surge during weekday peak hours.
func calculateFare(distanceMiles float64, durationSeconds int, service string, now time.Time) float64 {
	rates, ok := serviceRates[service]
	if !ok {
		rates = serviceRates["Uber"]
	}

	total := rates.baseFare +
		distanceMiles*rates.costPerMile +
		float64(durationSeconds)/60*rates.costPerMinute +
		rates.bookingFee

	surge := 1.0
	if now.Weekday() >= time.Monday && now.Weekday() <= time.Friday {
		h := now.Hour()
		if (h >= 7 && h <= 9) || (h >= 16 && h <= 19) {
			surge = 1.5
		}
	}
	return total * surge
}

// serviceURLs builds the app deep link and web fallback for a service.
func serviceURLs(service, pickup, dropoff string) (appURL, webURL string) {
	p := url.QueryEscape(pickup)
	d := url.QueryEscape(dropoff)
	switch service {
	case "Uber", "UberXL":
		return fmt.Sprintf("uber://?action=setPickup&pickup=%s&dropoff=%s", p, d),
			"https://m.uber.com/looking"
	case "Lyft":
		return fmt.Sprintf("lyft://ridetype?id=lyft&pickup[address]=%s&destination[address]=%s", p, d),
			"https://ride.lyft.com"
	case "Bike":
		return fmt.Sprintf("rapido://book?pickup=%s&dropoff=%s", p, d),
			"https://www.rapido.bike"
	}
	return "", ""
}

// buildEstimates produces the full quote list for a trip. The Bike option
// only appears for 1-2 passengers; bikes also take half again as long. The
// single recommended entry is the cheapest service whose capacity fits the
// passenger count.
func buildEstimates(req models.TripRequest, now time.Time) []models.PriceEstimate {
	info := routeDistance(req.Pickup, req.Dropoff)

	services := []string{"Uber", "Lyft", "UberXL"}
	if req.PassengerCount <= 2 {
		services = append([]string{"Bike"}, services...)
	}

	fares := make(map[string]float64, len(services))
	estimates := make([]models.PriceEstimate, 0, len(services))
	for _, svc := range services {
		duration := info.durationSeconds
		if svc == "Bike" {
			duration = duration * 3 / 2
		}
		fare := calculateFare(info.distanceMiles, duration, svc, now)
		fares[svc] = fare

		appURL, webURL := serviceURLs(svc, req.Pickup, req.Dropoff)
		estimates = append(estimates, models.PriceEstimate{
			Provider:      svc,
			PriceEstimate: fmt.Sprintf("$%.2f", fare),
			Duration:      duration,
			Distance:      info.distanceMiles,
			Pickup:        req.Pickup,
			Dropoff:       req.Dropoff,
			AppURL:        appURL,
			WebURL:        webURL,
			Capacity:      capacityLabels[svc],
		})
	}

	cheapest := ""
	for _, svc := range services {
		if maxSeats[svc] < req.PassengerCount {
			continue
		}
		if cheapest == "" || fares[svc] < fares[cheapest] {
			cheapest = svc
		}
	}
	for i := range estimates {
		if estimates[i].Provider == cheapest {
			estimates[i].Recommended = true
		}
	}
	return estimates
}

// cheapestValidFare returns the lowest current fare among services that can
// seat the passenger count. Used by the price watcher.
func cheapestValidFare(pickup, dropoff string, passengers int, now time.Time) (service string, fare float64) {
	info := routeDistance(pickup, dropoff)
	for svc, seats := range maxSeats {
		if seats < passengers {
			continue
		}
		duration := info.durationSeconds
		if svc == "Bike" {
			duration = duration * 3 / 2
		}
		f := calculateFare(info.distanceMiles, duration, svc, now)
		if service == "" || f < fare {
			service, fare = svc, f
		}
	}
	return service, fare
}

// matchCities returns up to limit city names containing the query,
// case-insensitively.
func matchCities(query string, limit int) []string {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var out []string
	for _, city := range cities {
		if strings.Contains(strings.ToLower(city), q) {
			out = append(out, city)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
