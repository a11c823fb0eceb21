package recordscout

import "context"

// Persistent configuration keys, shared with the options surface.
const (
	ConfigKeyAPIKey = "geminiApiKey"
	ConfigKeyModel  = "selectedGeminiModel"
)

// Config holds the credentials and model selection read at the start of
// every pipeline run.
type Config struct {
	APIKey string `json:"apiKey"`
	Model  string `json:"selectedModel"`
}

// ConfigUpdate represents configuration fields that can be updated.
type ConfigUpdate struct {
	APIKey *string `json:"apiKey"`
	Model  *string `json:"selectedModel"`
}

// ConfigService reads and writes persistent configuration.
type ConfigService interface {
	// FindConfig returns the stored configuration. Missing keys are
	// returned as empty strings, not as errors.
	FindConfig(ctx context.Context) (*Config, error)

	// UpdateConfig writes the non-nil fields of upd.
	UpdateConfig(ctx context.Context, upd ConfigUpdate) error
}
