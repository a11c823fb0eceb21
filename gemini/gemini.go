// Package gemini implements the recordscout model interfaces with the
// Google Gen AI SDK.
package gemini

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/recordscout"
	"google.golang.org/genai"
)

// TestPrompt is sent by connection checks.
const TestPrompt = `Test connection - respond with "OK"`

// options holds client settings shared by ModelProvider and ModelLister.
type options struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Gemini client.
type Option func(*options)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, recordscout.Errorf(recordscout.ECONFIG, "API key required")
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, recordscout.Wrap(recordscout.ECONFIG, err, "failed to create Gemini client")
	}
	return client, nil
}

var _ recordscout.ModelProvider = (*ModelProvider)(nil)

// ModelProvider creates Gemini model handles.
type ModelProvider struct {
	opts options
}

// NewModelProvider creates a new ModelProvider.
func NewModelProvider(opts ...Option) *ModelProvider {
	return &ModelProvider{opts: newOptions(opts)}
}

// Model returns a handle for cfg.Model. The model name is not checked
// against the API; unknown models fail on the first Generate call.
func (p *ModelProvider) Model(ctx context.Context, cfg *recordscout.Config) (recordscout.Inferrer, error) {
	if cfg == nil || strings.TrimSpace(cfg.Model) == "" {
		return nil, recordscout.Errorf(recordscout.ECONFIG, "model required")
	}
	client, err := p.opts.client(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &Model{
		client: client,
		name:   strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/"),
		config: BuildConfig(),
	}, nil
}

var _ recordscout.Inferrer = (*Model)(nil)

// Model generates text with one Gemini model.
type Model struct {
	client *genai.Client
	name   string
	config *genai.GenerateContentConfig
}

// Name returns the model name without the "models/" prefix.
func (m *Model) Name() string {
	return m.name
}

// Generate sends prompt as a single user turn and returns the response text.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx, m.name, genai.Text(prompt), m.config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", recordscout.Errorf(recordscout.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Extraction favours determinism, so temperature is kept low.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
