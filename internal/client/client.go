// Package client drives the journal HTTP API and holds the interaction state
// of a journal front end: the optimistic meal list, suggestions, day
// navigation and the meal form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"food-journal/internal/model"

	"github.com/rs/zerolog"
)

// APIError is an error response that does not map to a known domain error.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client is an HTTP client for the journal API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "client").Logger()
	return c
}

// ListDay fetches the meals logged on date (YYYY-MM-DD, empty for today).
func (c *Client) ListDay(ctx context.Context, date string) (*model.DayView, error) {
	path := "/api/meals"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var day model.DayView
	if err := c.do(ctx, http.MethodGet, path, nil, &day); err != nil {
		return nil, err
	}
	return &day, nil
}

// CreateMeal logs a new meal.
func (c *Client) CreateMeal(ctx context.Context, req *model.MealRequest) (*model.Meal, error) {
	var meal model.Meal
	if err := c.do(ctx, http.MethodPost, "/api/meals", req, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// UpdateMeal edits the meal with the given id.
func (c *Client) UpdateMeal(ctx context.Context, id string, req *model.MealRequest) (*model.Meal, error) {
	var meal model.Meal
	if err := c.do(ctx, http.MethodPut, "/api/meals/"+url.PathEscape(id), req, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// DeleteMeal removes the meal with the given id.
func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/meals/"+url.PathEscape(id), nil, nil)
}

// Descriptions fetches the caller's distinct past descriptions.
func (c *Client) Descriptions(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/meals/descriptions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Suggestions asks the server for autocomplete entries matching q.
func (c *Client) Suggestions(ctx context.Context, q string) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/meals/suggestions?q="+url.QueryEscape(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Preferences fetches the caller's preferences.
func (c *Client) Preferences(ctx context.Context) (*model.PreferenceResponse, error) {
	var pref model.PreferenceResponse
	if err := c.do(ctx, http.MethodGet, "/api/preferences", nil, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// SavePreferences creates or replaces the caller's preferences.
func (c *Client) SavePreferences(ctx context.Context, req *model.PreferenceRequest) (*model.PreferenceResponse, error) {
	var pref model.PreferenceResponse
	if err := c.do(ctx, http.MethodPut, "/api/preferences", req, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		c.logger.Debug().Err(apiErr).Str("method", method).Str("path", path).Msg("api call failed")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

var validationErrors = []*model.DomainError{
	model.ErrDescriptionRequired,
	model.ErrInvalidMealType,
	model.ErrInvalidDate,
	model.ErrInvalidTime,
}

// decodeError turns an error response back into the matching domain error
// so callers can use errors.Is against the model sentinels.
func decodeError(resp *http.Response) error {
	var body model.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	switch body.Error {
	case model.ErrCodeUnauthorised:
		return model.ErrUnauthorized
	case model.ErrCodeNotFoundOrUnauthorized:
		return model.ErrNotFoundOrUnauthorized
	case model.ErrCodeValidation:
		for _, v := range validationErrors {
			if v.Message == body.Message {
				return v
			}
		}
		return model.NewDomainError(body.Error, body.Message)
	}

	return &APIError{Status: resp.StatusCode, Code: body.Error, Message: body.Message}
}
