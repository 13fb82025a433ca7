// Package provider implements the gateway to external LLM completion APIs.
// Anthropic, OpenAI and Groq differ only in endpoint, auth header, request
// body shape and the JSON path of the completion text.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"eeg-insight/internal/config"
	"eeg-insight/internal/errors"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	anthropicVersion = "2023-06-01"
	userAgent        = "eeg-insight"
	maxErrorBody     = 512
)

// Provider completes a prompt against an external LLM.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// dialect captures everything that differs between providers.
type dialect struct {
	name         string
	defaultURL   string
	defaultModel string
	body         func(model, prompt string) ([]byte, error)
	auth         func(h http.Header, apiKey string)
	textPath     string
}

var dialects = map[config.ProviderKind]dialect{
	config.ProviderAnthropic: {
		name:         "anthropic",
		defaultURL:   "https://api.anthropic.com/v1/messages",
		defaultModel: "claude-sonnet-4-20250514",
		body:         anthropicBody,
		auth: func(h http.Header, apiKey string) {
			h.Set("x-api-key", apiKey)
			h.Set("anthropic-version", anthropicVersion)
		},
		textPath: "content.0.text",
	},
	config.ProviderOpenAI: {
		name:         "openai",
		defaultURL:   "https://api.openai.com/v1/chat/completions",
		defaultModel: "gpt-4",
		body:         chatCompletionsBody,
		auth:         bearerAuth,
		textPath:     "choices.0.message.content",
	},
	config.ProviderGroq: {
		name:         "groq",
		defaultURL:   "https://api.groq.com/openai/v1/chat/completions",
		defaultModel: "llama-3.3-70b-versatile",
		body:         chatCompletionsBody,
		auth:         bearerAuth,
		textPath:     "choices.0.message.content",
	},
}

func userMessages(prompt string) []map[string]string {
	return []map[string]string{{"role": "user", "content": prompt}}
}

func anthropicBody(model, prompt string) ([]byte, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "model", model)
	if err != nil {
		return nil, err
	}
	if body, err = sjson.SetBytes(body, "max_tokens", 1000); err != nil {
		return nil, err
	}
	return sjson.SetBytes(body, "messages", userMessages(prompt))
}

func chatCompletionsBody(model, prompt string) ([]byte, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "model", model)
	if err != nil {
		return nil, err
	}
	if body, err = sjson.SetBytes(body, "messages", userMessages(prompt)); err != nil {
		return nil, err
	}
	if body, err = sjson.SetBytes(body, "max_tokens", 500); err != nil {
		return nil, err
	}
	return sjson.SetBytes(body, "temperature", 0.7)
}

func bearerAuth(h http.Header, apiKey string) {
	h.Set("Authorization", "Bearer "+apiKey)
}

// Client is a stateless Provider bound to one dialect.
type Client struct {
	dialect    dialect
	url        string
	model      string
	apiKey     string
	httpClient *http.Client
}

// New builds the Provider selected by cfg, limited to cfg.MaxConcurrent
// in-flight calls. It fails with ai_not_configured when AI is disabled or
// the provider has no key.
func New(cfg config.AIConfig) (Provider, error) {
	if !cfg.IsConfigured() {
		return nil, errors.New(errors.ErrAINotConfigured)
	}

	client, err := NewClient(cfg, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}

	return WithConcurrencyLimit(client, cfg.MaxConcurrent, cfg.Timeout), nil
}

// NewClient builds a Client for cfg.Provider using httpClient.
func NewClient(cfg config.AIConfig, httpClient *http.Client) (*Client, error) {
	d, ok := dialects[cfg.Provider]
	if !ok {
		return nil, errors.WithMessage(errors.ErrInvalidConfig, "no gateway for provider %q", cfg.Provider)
	}

	c := &Client{
		dialect:    d,
		url:        d.defaultURL,
		model:      d.defaultModel,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
	if cfg.EndpointURL != "" {
		c.url = cfg.EndpointURL
	}
	if cfg.Model != "" {
		c.model = cfg.Model
	}

	return c, nil
}

// ModelFor returns the model a Client built from cfg would request, or ""
// for an unknown provider.
func ModelFor(cfg config.AIConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return dialects[cfg.Provider].defaultModel
}

// Name implements Provider.
func (c *Client) Name() string { return c.dialect.name }

// Model returns the model requested from the provider.
func (c *Client) Model() string { return c.model }

// Complete sends prompt as a single user message and returns the reply text.
// Every failure is an *Error; nothing is retried.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.dialect.body(c.model, prompt)
	if err != nil {
		return "", c.fail(0, "", fmt.Errorf("build request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", c.fail(0, "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	c.dialect.auth(req.Header, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.fail(0, "", err)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.Errorf("%s provider: close response body error: %v", c.dialect.name, errClose)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(resp.StatusCode, "", err)
	}

	log.WithFields(log.Fields{
		"provider":   c.dialect.name,
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("provider response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.fail(resp.StatusCode, summarizeErrorBody(data), nil)
	}
	if !gjson.ValidBytes(data) {
		return "", c.fail(resp.StatusCode, "", ErrMalformedResponse)
	}

	text := strings.TrimSpace(gjson.GetBytes(data, c.dialect.textPath).String())
	if text == "" {
		return "", c.fail(resp.StatusCode, "", ErrEmptyCompletion)
	}

	return text, nil
}

func (c *Client) fail(status int, body string, err error) *Error {
	return &Error{Provider: c.dialect.name, StatusCode: status, Body: body, Err: err}
}

// summarizeErrorBody prefers the provider's error.message over the raw body.
func summarizeErrorBody(data []byte) string {
	if msg := gjson.GetBytes(data, "error.message").String(); msg != "" {
		return msg
	}
	s := strings.TrimSpace(string(data))
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
