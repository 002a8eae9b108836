package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/harmony/internal/service"
)

// Failure modes surfaced by every client.
var (
	// ErrNotConfigured means no API key is available for the provider.
	ErrNotConfigured = errors.New("completion service not configured")
	// ErrTransport covers unreachable hosts, timeouts and cancellation.
	ErrTransport = errors.New("completion transport failure")
	// ErrStatus means the provider answered with a non-2xx status.
	ErrStatus = errors.New("completion provider returned an error status")
	// ErrMalformedResponse means the body could not be decoded or had no text.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Defaults applied when Config leaves a field empty.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800
	DefaultRateLimit   = 30
)

// Config selects and tunes a completion provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature *float64
	MaxTokens   int
	RateLimit   int
}

// Client is a completion service holding pooled connections.
type Client interface {
	service.CompletionService
	Close()
}

// StatusError carries the provider's status code and body.
type StatusError struct {
	Provider string
	Body     string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Code, e.Body)
}

// Unwrap lets errors.Is match ErrStatus.
func (e *StatusError) Unwrap() error { return ErrStatus }

func (cfg Config) withDefaults(defaultModel string) Config {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Temperature == nil {
		cfg.Temperature = service.Temperature(DefaultTemperature)
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	return cfg
}

// resolve fills per-request settings from the client defaults.
func (cfg Config) resolve(req service.CompletionRequest) service.CompletionRequest {
	if req.Model == "" {
		req.Model = cfg.Model
	}
	if req.Temperature == nil {
		req.Temperature = cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = cfg.MaxTokens
	}
	return req
}

func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ErrTransport, ctxErr)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// Disabled is a CompletionService for when no provider is configured. Every
// call fails with ErrNotConfigured.
type Disabled struct{}

// Complete implements service.CompletionService.
func (Disabled) Complete(context.Context, service.CompletionRequest) (string, error) {
	return "", ErrNotConfigured
}

// Close implements Client.
func (Disabled) Close() {}
