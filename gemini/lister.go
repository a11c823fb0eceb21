package gemini

import (
	"context"
	"slices"
	"strings"

	"github.com/fwojciec/recordscout"
)

// generateAction is the API action a model must support to be usable.
const generateAction = "generateContent"

var _ recordscout.ModelLister = (*ModelLister)(nil)

// ModelLister lists Gemini models that can generate text.
type ModelLister struct {
	opts options
}

// NewModelLister creates a new ModelLister.
func NewModelLister(opts ...Option) *ModelLister {
	return &ModelLister{opts: newOptions(opts)}
}

// ListModels returns the models usable with apiKey, in API order.
func (l *ModelLister) ListModels(ctx context.Context, apiKey string) ([]*recordscout.Model, error) {
	client, err := l.opts.client(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	var models []*recordscout.Model
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, recordscout.Wrap(recordscout.ENETWORK, err, "failed to list models")
		}
		if !Compatible(m.Name, m.SupportedActions) {
			continue
		}
		models = append(models, &recordscout.Model{
			Name:        strings.TrimPrefix(m.Name, "models/"),
			DisplayName: m.DisplayName,
			Description: m.Description,
		})
	}
	return models, nil
}

// Compatible reports whether a model can serve text extraction prompts.
// Models that declare no actions are assumed to support generation.
func Compatible(name string, actions []string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "imagen") || strings.Contains(lower, "audio-only") ||
		strings.Contains(lower, "embedding") {
		return false
	}
	return len(actions) == 0 || slices.Contains(actions, generateAction)
}
