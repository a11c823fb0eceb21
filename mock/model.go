package mock

import (
	"context"

	"github.com/fwojciec/recordscout"
)

var (
	_ recordscout.Inferrer      = (*Inferrer)(nil)
	_ recordscout.ModelProvider = (*ModelProvider)(nil)
	_ recordscout.ModelLister   = (*ModelLister)(nil)
)

// Inferrer is a mock implementation of recordscout.Inferrer.
type Inferrer struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (i *Inferrer) Generate(ctx context.Context, prompt string) (string, error) {
	return i.GenerateFn(ctx, prompt)
}

// ModelProvider is a mock implementation of recordscout.ModelProvider.
type ModelProvider struct {
	ModelFn func(ctx context.Context, cfg *recordscout.Config) (recordscout.Inferrer, error)
}

func (p *ModelProvider) Model(ctx context.Context, cfg *recordscout.Config) (recordscout.Inferrer, error) {
	return p.ModelFn(ctx, cfg)
}

// ModelLister is a mock implementation of recordscout.ModelLister.
type ModelLister struct {
	ListModelsFn func(ctx context.Context, apiKey string) ([]*recordscout.Model, error)
}

func (l *ModelLister) ListModels(ctx context.Context, apiKey string) ([]*recordscout.Model, error) {
	return l.ListModelsFn(ctx, apiKey)
}
