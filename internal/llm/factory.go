package llm

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultGroqModel is used when no model is configured for Groq.
const DefaultGroqModel = "llama3-70b-8192"

// NewClient creates a completion client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "groq":
		client, err = asClient(newOpenAIClient("Groq", GroqBaseURL, DefaultGroqModel, cfg))
	case "openai":
		client, err = asClient(newOpenAIClient("OpenAI", OpenAIBaseURL, "gpt-4o-mini", cfg))
	case "anthropic":
		client, err = asClient(newAnthropicClient(cfg))
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// asClient keeps a nil concrete pointer from becoming a non-nil interface.
func asClient[C Client](c C, err error) (Client, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewClientOrDisabled behaves like NewClient but returns Disabled when no API
// key is configured, so the application runs on static content alone.
func NewClientOrDisabled(cfg Config, logger *slog.Logger) (Client, error) {
	client, err := NewClient(cfg)
	if errors.Is(err, ErrNotConfigured) {
		logger.Warn("No API key configured, AI features will use built-in content",
			"provider", cfg.Provider)
		return Disabled{}, nil
	}
	return client, err
}
