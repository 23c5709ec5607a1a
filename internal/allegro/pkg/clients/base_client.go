package clients

import (
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/business/models/dto/response"
	"allegro_sync/pkg/logger"
	"allegro_sync/pkg/middleware"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	mediaType       = "application/vnd.allegro.public.v1+json"
	baseBackoff     = time.Second
	maxBackoff      = 30 * time.Second
	defaultTimeout  = 60 * time.Second
	defaultAttempts = 5
)

type BaseClient struct {
	ApiURL     string
	log        logger.Logger
	client     *http.Client
	auth       AuthEngine
	maxRetries int
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewBaseClient(apiURL string, auth AuthEngine, log logger.Logger, timeout time.Duration, maxRetries int) *BaseClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = defaultAttempts
	}
	return &BaseClient{
		ApiURL:     apiURL,
		log:        log,
		client:     &http.Client{Timeout: timeout, Transport: middleware.Chain(nil, middleware.PrometheusTransport)},
		auth:       auth,
		maxRetries: maxRetries,
		sleep:      sleepContext,
	}
}

// doRequest повторяет запрос на 429 с учётом Retry-After; прочие ошибки API возвращает как *APIError.
func (c *BaseClient) doRequest(ctx context.Context, method, endpoint string, body request.Model, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = body.ToBytes()
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		status, respBody, header, err := c.send(ctx, method, endpoint, payload)
		if err != nil {
			return err
		}

		if status == http.StatusTooManyRequests {
			if attempt >= c.maxRetries {
				return fmt.Errorf("%s %s: %w after %d attempts", method, endpoint, ErrRateLimited, attempt+1)
			}
			wait := retryAfter(header.Get("Retry-After"), attempt)
			c.log.Log("Got 429 for %s %s, retrying in %s", method, endpoint, wait)
			if err := c.sleep(ctx, wait); err != nil {
				return fmt.Errorf("request was cancelled: %w", err)
			}
			continue
		}

		if status < 200 || status >= 300 {
			apiErr := &APIError{StatusCode: status, Body: respBody}
			var errResp response.ErrorResponse
			if json.Unmarshal(respBody, &errResp) == nil {
				apiErr.Response = errResp
			}
			return apiErr
		}

		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return nil
	}
}

func (c *BaseClient) send(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, http.Header, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.ApiURL+endpoint, reader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", mediaType)
	if payload != nil {
		req.Header.Set("Content-Type", mediaType)
	}
	if c.auth != nil {
		if err := c.auth.Authorize(req); err != nil {
			return 0, nil, nil, err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return 0, nil, nil, fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return 0, nil, nil, fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, resp.Header, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, resp.Header, nil
}

// retryAfter: секунды из заголовка, иначе экспоненциальная пауза.
func retryAfter(header string, attempt int) time.Duration {
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	wait := baseBackoff << attempt
	if wait > maxBackoff || wait <= 0 {
		wait = maxBackoff
	}
	return wait
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
