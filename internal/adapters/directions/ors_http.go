package directions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
)

const maxAttempts = 4

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (o *ORSDirectionsProvider) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (o *ORSDirectionsProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx responses)
// using exponential backoff while respecting context cancellation.
func (o *ORSDirectionsProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.retryBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	b := backoff.WithContext(backoff.WithMaxRetries(policy, maxAttempts-1), ctx)

	return backoff.RetryWithData(func() (*http.Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := makeReq()
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("make request: %w", err))
		}

		resp, err := o.do(req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}, b)
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
