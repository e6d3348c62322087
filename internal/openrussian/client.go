// Package openrussian looks up Russian words through the OpenRussian
// suggestions API and turns its loosely structured answers into lookup records.
package openrussian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/sony/gobreaker"
	"resty.dev/v3"
)

const (
	DefaultBaseURL   = "https://api.openrussian.org"
	DefaultUserAgent = "RussianCourse/1.0 (+local)"
	DefaultTimeout   = 12 * time.Second

	suggestionsPath = "/suggestions"
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts uint
	// BreakerFailures is the number of consecutive failures that opens the circuit breaker.
	BreakerFailures uint32
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code: %d, body: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed when repeated.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Client fetches suggestion payloads for single words.
type Client struct {
	baseURL       string
	httpClient    *resty.Client
	breaker       *gobreaker.CircuitBreaker
	retryAttempts uint
	log           *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.BreakerFailures == 0 {
		config.BreakerFailures = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(config.BaseURL)
	httpClient.SetHeader("User-Agent", config.UserAgent)
	httpClient.SetHeader("Accept", "application/json")
	httpClient.SetTimeout(config.Timeout)

	log := logger.With("component", "openrussian")
	breakerFailures := config.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openrussian",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: func(err error) bool {
			// a word the API rejects says nothing about the health of the API
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return !statusErr.Temporary()
			}
			return err == nil
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:       strings.TrimRight(config.BaseURL, "/"),
		httpClient:    httpClient,
		breaker:       breaker,
		retryAttempts: config.RetryAttempts,
		log:           log,
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// SuggestionsURL returns the address a lookup of query is sent to.
func (c *Client) SuggestionsURL(query string) string {
	return c.baseURL + suggestionsPath + "?q=" + url.QueryEscape(query)
}

// Fetch returns the decoded suggestions payload for query.
func (c *Client) Fetch(ctx context.Context, query string) (any, error) {
	body, err := c.FetchRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// FetchRaw returns the undecoded response body for query. Network failures,
// 429 and 5xx answers are retried with exponential backoff.
func (c *Client) FetchRaw(ctx context.Context, query string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			result, err := c.breaker.Execute(func() (interface{}, error) {
				return c.get(ctx, query)
			})
			if err != nil {
				if ctx.Err() != nil || !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = result.([]byte)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts+1),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.WarnContext(ctx, "retrying suggestions request", "query", query, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %q > %w", query, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, query string) ([]byte, error) {
	c.log.DebugContext(ctx, "suggestions request", "query", query)

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(suggestionsPath)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &StatusError{StatusCode: res.StatusCode(), Body: res.String()}
	}

	body := res.Bytes()
	c.log.DebugContext(ctx, "suggestions response", "query", query, "status", res.StatusCode(), "bytes", len(body))
	return body, nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// Decode parses a response body into plain maps, lists and scalars.
func Decode(body []byte) (any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return payload, nil
}
