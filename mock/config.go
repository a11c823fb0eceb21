package mock

import (
	"context"

	"github.com/fwojciec/recordscout"
)

var _ recordscout.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of recordscout.ConfigService.
type ConfigService struct {
	FindConfigFn   func(ctx context.Context) (*recordscout.Config, error)
	UpdateConfigFn func(ctx context.Context, upd recordscout.ConfigUpdate) error
}

func (s *ConfigService) FindConfig(ctx context.Context) (*recordscout.Config, error) {
	return s.FindConfigFn(ctx)
}

func (s *ConfigService) UpdateConfig(ctx context.Context, upd recordscout.ConfigUpdate) error {
	return s.UpdateConfigFn(ctx, upd)
}
