// Package api is the HTTP client for the fare comparison backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"farewatch/pkg/models"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// ComparePrices requests cab estimates for a trip. The returned slice keeps
// the backend's ranking order.
func (c *Client) ComparePrices(ctx context.Context, req models.TripRequest) ([]models.PriceEstimate, error) {
	var estimates []models.PriceEstimate
	if err := c.postJSON(ctx, "/compare-prices", req, &estimates); err != nil {
		return nil, err
	}
	return estimates, nil
}

func (c *Client) CompareFlights(ctx context.Context, req models.FlightRequest) ([]models.FlightEstimate, error) {
	var estimates []models.FlightEstimate
	if err := c.postJSON(ctx, "/compare-flights", req, &estimates); err != nil {
		return nil, err
	}
	return estimates, nil
}

// AutocompleteCities returns place-name completions for a partial query.
func (c *Client) AutocompleteCities(ctx context.Context, query string) ([]string, error) {
	path := "/cities/autocomplete?query=" + url.QueryEscape(query)
	var suggestions []string
	if err := c.getJSON(ctx, path, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (c *Client) TrackRoute(ctx context.Context, req models.TrackRouteRequest) (models.TrackedRoute, error) {
	var route models.TrackedRoute
	if err := c.postJSON(ctx, "/track-route", req, &route); err != nil {
		return models.TrackedRoute{}, err
	}
	return route, nil
}

// TrackedRoutes lists the routes registered for an E.164 phone number.
func (c *Client) TrackedRoutes(ctx context.Context, phone string) ([]models.TrackedRoute, error) {
	path := "/tracked-routes/" + url.PathEscape(phone)
	var routes []models.TrackedRoute
	if err := c.getJSON(ctx, path, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (c *Client) DeleteTrackedRoute(ctx context.Context, id int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+fmt.Sprintf("/tracked-routes/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	c.logger.Debug("backend request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("backend error response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("api error %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
