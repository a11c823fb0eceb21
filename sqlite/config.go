package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/recordscout"
)

var _ recordscout.ConfigService = (*ConfigService)(nil)

// ConfigService implements recordscout.ConfigService on the settings table.
type ConfigService struct {
	db *DB
}

// NewConfigService creates a new ConfigService.
func NewConfigService(db *DB) *ConfigService {
	return &ConfigService{db: db}
}

// FindConfig returns the stored configuration. Unset keys read as "".
func (s *ConfigService) FindConfig(ctx context.Context) (*recordscout.Config, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value
		FROM settings
		WHERE key IN (?, ?)
	`, recordscout.ConfigKeyAPIKey, recordscout.ConfigKeyModel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cfg recordscout.Config
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case recordscout.ConfigKeyAPIKey:
			cfg.APIKey = value
		case recordscout.ConfigKeyModel:
			cfg.Model = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UpdateConfig writes the non-nil fields of upd in one transaction.
// Values are trimmed before they are stored.
func (s *ConfigService) UpdateConfig(ctx context.Context, upd recordscout.ConfigUpdate) error {
	values := make(map[string]string)
	if upd.APIKey != nil {
		values[recordscout.ConfigKeyAPIKey] = strings.TrimSpace(*upd.APIKey)
	}
	if upd.Model != nil {
		values[recordscout.ConfigKeyModel] = strings.TrimSpace(*upd.Model)
	}
	if len(values) == 0 {
		return recordscout.Errorf(recordscout.EINVALID, "nothing to update")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
