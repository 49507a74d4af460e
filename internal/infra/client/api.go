// Package client implements the HTTP adapter to the Mudança Fácil
// marketplace REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/observability"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("client")

// API talks to the marketplace backend. Every call goes through the circuit
// breaker; failed calls are never retried automatically, the user decides
// whether to resubmit.
type API struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
}

// NewAPI creates a marketplace API adapter.
func NewAPI(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, metrics *observability.Metrics) *API {
	return &API{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		metrics:    metrics,
	}
}

// do performs one request through the circuit breaker and decodes a JSON
// response into out when out is non-nil. token, when set, is sent as a
// Bearer credential.
func (c *API) do(ctx context.Context, operation, method, path, token string, body, out any) error {
	start := time.Now()

	_, err := c.cb.Execute(func() (any, error) {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encode request: %w", err)
			}
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, remoteError(resp)
		}

		if out != nil && resp.StatusCode != http.StatusNoContent {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
		}
		return nil, nil
	})

	c.metrics.RecordRemoteDuration(operation, time.Since(start))
	if err != nil {
		c.metrics.IncrRemoteError(operation)
	}

	return mapError(err)
}

// mapError translates breaker and transport failures into domain errors.
// Typed errors produced inside the call pass through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: "marketplace"}
	}

	var (
		remote   *domain.ErrRemote
		notFound *domain.ErrNotFound
		unauth   *domain.ErrUnauthorized
		conflict *domain.ErrConflict
	)
	if errors.As(err, &remote) || errors.As(err, &notFound) ||
		errors.As(err, &unauth) || errors.As(err, &conflict) {
		return err
	}
	return &domain.ErrExternalService{Service: "marketplace", Err: err}
}

// remoteError builds the domain error for a non-2xx response. The message is
// pulled from the JSON body's detail, message or error field so the server's
// wording reaches the form.
func remoteError(resp *http.Response) error {
	detail := extractDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if detail == "" {
			detail = "Credenciais inválidas"
		}
		return &domain.ErrUnauthorized{Message: detail}
	case http.StatusNotFound:
		return &domain.ErrNotFound{Resource: "recurso", ID: resp.Request.URL.Path}
	case http.StatusConflict:
		if detail == "" {
			detail = "Registro já cadastrado"
		}
		return &domain.ErrConflict{Message: detail}
	default:
		return &domain.ErrRemote{Status: resp.StatusCode, Detail: detail}
	}
}

func extractDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		switch {
		case envelope.Detail != "":
			return envelope.Detail
		case envelope.Message != "":
			return envelope.Message
		case envelope.Err != "":
			return envelope.Err
		}
	}
	return string(bytes.TrimSpace(data))
}
