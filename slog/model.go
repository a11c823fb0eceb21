package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recordscout"
)

var (
	_ recordscout.ModelProvider = (*LoggingModelProvider)(nil)
	_ recordscout.ModelLister   = (*LoggingModelLister)(nil)
	_ recordscout.Cleaner       = (*LoggingCleaner)(nil)
)

// LoggingModelProvider wraps a ModelProvider so that every model it
// returns logs its generate calls.
type LoggingModelProvider struct {
	next   recordscout.ModelProvider
	logger *slog.Logger
}

// NewLoggingModelProvider creates a new LoggingModelProvider.
func NewLoggingModelProvider(next recordscout.ModelProvider, logger *slog.Logger) *LoggingModelProvider {
	return &LoggingModelProvider{next: next, logger: logger}
}

// Model delegates to the wrapped provider. The API key is never logged.
func (p *LoggingModelProvider) Model(ctx context.Context, cfg *recordscout.Config) (recordscout.Inferrer, error) {
	var name string
	if cfg != nil {
		name = cfg.Model
	}
	m, err := p.next.Model(ctx, cfg)
	if err != nil {
		p.logger.DebugContext(ctx, "model", "model", name, "err", err)
		return nil, err
	}
	return &loggingInferrer{next: m, model: name, logger: p.logger}, nil
}

type loggingInferrer struct {
	next   recordscout.Inferrer
	model  string
	logger *slog.Logger
}

func (i *loggingInferrer) Generate(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		i.logger.DebugContext(ctx, "generate",
			"model", i.model,
			"prompt_bytes", len(prompt),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Generate(ctx, prompt)
}

// LoggingModelLister wraps a ModelLister with debug logging.
type LoggingModelLister struct {
	next   recordscout.ModelLister
	logger *slog.Logger
}

// NewLoggingModelLister creates a new LoggingModelLister.
func NewLoggingModelLister(next recordscout.ModelLister, logger *slog.Logger) *LoggingModelLister {
	return &LoggingModelLister{next: next, logger: logger}
}

// ListModels logs the number of models returned.
func (l *LoggingModelLister) ListModels(ctx context.Context, apiKey string) (models []*recordscout.Model, err error) {
	defer func(begin time.Time) {
		l.logger.DebugContext(ctx, "list models",
			"count", len(models),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ListModels(ctx, apiKey)
}

// LoggingCleaner wraps a Cleaner with debug logging.
type LoggingCleaner struct {
	next   recordscout.Cleaner
	name   string
	logger *slog.Logger
}

// NewLoggingCleaner creates a new LoggingCleaner. name identifies the
// wrapped implementation in log lines.
func NewLoggingCleaner(next recordscout.Cleaner, name string, logger *slog.Logger) *LoggingCleaner {
	return &LoggingCleaner{next: next, name: name, logger: logger}
}

// Clean logs input and output sizes.
func (c *LoggingCleaner) Clean(html string) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("clean",
			"cleaner", c.name,
			"html_bytes", len(html),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Clean(html)
}
