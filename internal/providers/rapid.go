package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// RapidClient performs authenticated GET requests against RapidAPI-fronted
// endpoints with a bounded retry budget: fixed attempt count, fixed delay.
// Transport errors and 5xx responses are retried; other failures are not.
type RapidClient struct {
	apiKey  string
	client  *http.Client
	retries int
	delay   time.Duration
	log     zerolog.Logger
}

func NewRapidClient(apiKey string, timeout time.Duration, retries int, delay time.Duration, log zerolog.Logger) *RapidClient {
	return &RapidClient{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		delay:   delay,
		log:     log.With().Str("component", "rapidapi").Logger(),
	}
}

// Get fetches baseURL+path and returns the raw response body. After the
// retry budget is exhausted the last error is returned wrapped in
// ErrRequestFailed.
func (c *RapidClient) Get(ctx context.Context, baseURL, path string, query url.Values) ([]byte, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL %q: %v", ErrRequestFailed, baseURL, err)
	}
	u.Path = path
	u.RawQuery = query.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrRequestFailed, ctx.Err())
			case <-time.After(c.delay):
			}
		}

		body, retryable, err := c.do(ctx, u.String(), u.Host)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.log.Warn().Err(err).Int("attempt", attempt+1).Str("host", u.Host).Msg("request failed, retrying")
	}
	return nil, fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
}

func (c *RapidClient) do(ctx context.Context, rawURL, host string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("status %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return b, false, nil
}
