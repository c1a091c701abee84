// Package analysis talks to the external page analysis service.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"speedx/internal/log"
	"speedx/internal/model"
)

const (
	analyzePath     = "/api/analyze"
	maxResponseBody = 1 << 20

	DefaultTimeout = 30 * time.Second
)

var ErrFetchFailure = errors.New("failed to analyze website")

// FetchError describes why an analysis request failed. StatusCode is zero
// when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analyze %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("analyze %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailure}
	}
	return []error{ErrFetchFailure, e.Err}
}

// response mirrors the service body. Pointers tell missing fields from zeros.
type response struct {
	LoadTime     *float64 `json:"loadTime"`
	TotalSize    *float64 `json:"totalSize"`
	RequestCount *int     `json:"requestCount"`
}

func (r response) sample() (model.MetricSample, error) {
	switch {
	case r.LoadTime == nil:
		return model.MetricSample{}, fmt.Errorf("%w: missing loadTime", model.ErrInvalidSample)
	case r.TotalSize == nil:
		return model.MetricSample{}, fmt.Errorf("%w: missing totalSize", model.ErrInvalidSample)
	case r.RequestCount == nil:
		return model.MetricSample{}, fmt.Errorf("%w: missing requestCount", model.ErrInvalidSample)
	}
	return model.MetricSample{
		LoadTime:     *r.LoadTime,
		TotalSize:    *r.TotalSize,
		RequestCount: *r.RequestCount,
	}, nil
}

// Client requests analyses from the service at BaseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the analysis service rooted at baseURL.
// A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Analyze asks the service to measure target and returns the validated
// sample. Every failure is a *FetchError wrapping ErrFetchFailure.
func (c *Client) Analyze(ctx context.Context, target string) (model.MetricSample, error) {
	endpoint := c.baseURL + analyzePath + "?url=" + url.QueryEscape(target)

	fail := func(status int, err error) (model.MetricSample, error) {
		return model.MetricSample{}, &FetchError{URL: target, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Logger.Error("analysis request failed",
			zap.String("url", target),
			zap.Error(err),
		)
		return fail(0, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Logger.Warn("unexpected status code",
			zap.String("url", target),
			zap.Int("status_code", resp.StatusCode),
		)
		return fail(resp.StatusCode, nil)
	}

	var body response
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody))
	if err := dec.Decode(&body); err != nil {
		log.Logger.Warn("failed to decode analysis response",
			zap.String("url", target),
			zap.Error(err),
		)
		return fail(0, fmt.Errorf("decode response: %w", err))
	}

	sample, err := body.sample()
	if err == nil {
		err = sample.Validate()
	}
	if err != nil {
		log.Logger.Warn("rejecting malformed analysis response",
			zap.String("url", target),
			zap.Error(err),
		)
		return fail(0, err)
	}

	log.Logger.Info("analysis received",
		zap.String("url", target),
		zap.Float64("load_time", sample.LoadTime),
		zap.Float64("total_size", sample.TotalSize),
		zap.Int("request_count", sample.RequestCount),
	)
	return sample, nil
}
