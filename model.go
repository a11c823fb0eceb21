package recordscout

import "context"

// Inferrer sends a prompt to a language model and returns its text response.
type Inferrer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelProvider creates model handles for the configured credentials.
type ModelProvider interface {
	// Model returns an Inferrer for cfg.Model authenticated with cfg.APIKey.
	Model(ctx context.Context, cfg *Config) (Inferrer, error)
}

// Model describes a model the provider offers.
type Model struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// ModelLister lists the models usable for content generation.
type ModelLister interface {
	ListModels(ctx context.Context, apiKey string) ([]*Model, error)
}
