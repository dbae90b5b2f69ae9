package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/eparsel/eparsel/internal/domain/model"
)

// ErrTrackingNotFound indicates the carrier doesn't know the code yet.
var ErrTrackingNotFound = errors.New("tracking code not registered")

// TooManyRequestsError represents rate limiting signal from the carrier API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the carrier tracking aggregator.
type Client interface {
	Fetch(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// update mirrors one JSON tracking entry from the carrier API.
type update struct {
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}

// NewHTTPClient creates HTTP carrier client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse carrier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("carrier url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the carrier aggregator for all known tracking entries of
// the code, oldest first.
func (c *HTTPClient) Fetch(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/tracking/", trackingCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data []update
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		events := make([]model.ShipmentEvent, 0, len(data))
		for _, u := range data {
			events = append(events, model.ShipmentEvent{
				Date:        u.Date,
				Location:    u.Location,
				Status:      u.Status,
				Description: u.Description,
			})
		}
		return events, nil
	case http.StatusNoContent:
		return nil, ErrTrackingNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("carrier request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("carrier error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
