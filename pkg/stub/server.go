// Package stub is an in-memory implementation of the fare comparison
// backend, good enough to develop and demo the client offline. Quotes are
// deterministic per route; tracked routes live for the process lifetime.
package stub

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farewatch/pkg/models"
)

// Server bundles the HTTP surface, the route store and the price watcher.
type Server struct {
	Engine  *gin.Engine
	Store   *Store
	Watcher *Watcher

	logger *zap.Logger
	now    func() time.Time
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewStore()
	s := &Server{
		Store:   store,
		Watcher: NewWatcher(store, logger, DefaultCheckInterval),
		logger:  logger,
		now:     time.Now,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.POST("/compare-prices", s.comparePrices)
	r.POST("/compare-flights", s.compareFlights)
	r.GET("/cities/autocomplete", s.autocompleteCities)
	r.POST("/track-route", s.trackRoute)
	r.GET("/tracked-routes/:phone", s.trackedRoutes)
	r.DELETE("/tracked-routes/:id", s.deleteTrackedRoute)

	s.Engine = r
	return s
}

func (s *Server) comparePrices(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	estimates := buildEstimates(req, s.now())
	c.JSON(http.StatusOK, estimates)
}

func (s *Server) compareFlights(c *gin.Context) {
	var req models.FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.CabinClass == "" {
		req.CabinClass = models.CabinEconomy
	}
	if req.Passengers < 1 {
		req.Passengers = 1
	}
	c.JSON(http.StatusOK, buildFlightEstimates(req))
}

func (s *Server) autocompleteCities(c *gin.Context) {
	matches := matchCities(c.Query("query"), 5)
	if matches == nil {
		matches = []string{}
	}
	c.JSON(http.StatusOK, matches)
}

// e164Shaped mirrors the loose server-side check: leading '+', digits after.
func e164Shaped(phone string) bool {
	if !strings.HasPrefix(phone, "+") || len(phone) < 2 {
		return false
	}
	for _, r := range phone[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Server) trackRoute(c *gin.Context) {
	var req models.TrackRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !e164Shaped(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Phone number must be in E.164 format (+1XXXXXXXXXX)"})
		return
	}

	route := s.Store.CreateRoute(req, s.now())
	s.logger.Info("route tracking started",
		zap.Int("route_id", route.ID),
		zap.String("pickup", route.Pickup),
		zap.String("dropoff", route.Dropoff))

	// First price check happens immediately, not on the next tick.
	s.Watcher.CheckOnce(s.now())

	c.JSON(http.StatusOK, route)
}

func (s *Server) trackedRoutes(c *gin.Context) {
	phone := c.Param("phone")
	if !e164Shaped(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Phone number must be in E.164 format (+1XXXXXXXXXX)"})
		return
	}
	routes := s.Store.RoutesByPhone(phone)
	if routes == nil {
		routes = []models.TrackedRoute{}
	}
	c.JSON(http.StatusOK, routes)
}

func (s *Server) deleteTrackedRoute(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "route id must be an integer"})
		return
	}
	if !s.Store.DeleteRoute(id) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Route not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route tracking stopped and deleted"})
}
