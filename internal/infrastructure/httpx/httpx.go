package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// StatusError is returned for any non-200 upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

const maxErrorBody = 512

// Client performs a single JSON round trip per call. It never retries: spacing
// between attempts belongs to the caller.
type Client struct {
	HTTP    *http.Client
	Auth    string
	Limiter *rate.Limiter
	Breaker *gobreaker.CircuitBreaker
}

// NewClient builds a client with a per-upstream rate limit and circuit breaker.
// rps <= 0 disables limiting.
func NewClient(name string, timeout time.Duration, rps float64, burst int) *Client {
	c := &Client{
		HTTP:    &http.Client{Timeout: timeout},
		Breaker: NewBreaker(name),
	}
	if rps > 0 {
		if burst <= 0 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return c
}

// NewBreaker trips after three consecutive failures. Client errors (4xx) do not count.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && se.Code < 500
		},
	})
}

func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	if c.Auth != "" {
		req.Header.Set("Authorization", c.Auth)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	if c.Breaker == nil {
		return c.do(ctx, req, out)
	}
	_, err := c.Breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, req, out)
	})
	return err
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
