package stub

import (
	"sort"
	"sync"
	"time"

	"farewatch/pkg/models"
)

// PricePoint is one sampled fare for a tracked route.
type PricePoint struct {
	Service   string    `json:"service"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Store holds tracked routes and their sampled price history in memory.
type Store struct {
	mu      sync.Mutex
	nextID  int
	routes  map[int]models.TrackedRoute
	history map[int][]PricePoint
}

func NewStore() *Store {
	return &Store{
		nextID:  1,
		routes:  make(map[int]models.TrackedRoute),
		history: make(map[int][]PricePoint),
	}
}

func (s *Store) CreateRoute(req models.TrackRouteRequest, now time.Time) models.TrackedRoute {
	s.mu.Lock()
	defer s.mu.Unlock()

	route := models.TrackedRoute{
		ID:             s.nextID,
		Pickup:         req.Pickup,
		Dropoff:        req.Dropoff,
		PassengerCount: req.PassengerCount,
		PhoneNumber:    req.PhoneNumber,
		TargetPrice:    req.TargetPrice,
		IsActive:       true,
		CreatedAt:      now.UTC(),
	}
	s.nextID++
	s.routes[route.ID] = route
	return route
}

func (s *Store) RoutesByPhone(phone string) []models.TrackedRoute {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TrackedRoute
	for _, r := range s.routes {
		if r.PhoneNumber == phone {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ActiveRoutes() []models.TrackedRoute {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TrackedRoute
	for _, r := range s.routes {
		if r.IsActive {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteRoute removes a route; reports whether it existed.
func (s *Store) DeleteRoute(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routes[id]; !ok {
		return false
	}
	delete(s.routes, id)
	delete(s.history, id)
	return true
}

// Deactivate flips a route inactive once its price alert has fired.
func (s *Store) Deactivate(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.routes[id]; ok {
		r.IsActive = false
		s.routes[id] = r
	}
}

func (s *Store) RecordPrice(routeID int, service string, price float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routes[routeID]; !ok {
		return
	}
	s.history[routeID] = append(s.history[routeID], PricePoint{
		Service:   service,
		Price:     price,
		Timestamp: now.UTC(),
	})
}

func (s *Store) History(routeID int) []PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PricePoint, len(s.history[routeID]))
	copy(out, s.history[routeID])
	return out
}
