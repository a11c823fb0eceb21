package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/mock"
	rsslog "github.com/fwojciec/recordscout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingModelProvider(t *testing.T) {
	t.Parallel()

	t.Run("logs generate calls without the API key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		provider := &mock.ModelProvider{
			ModelFn: func(ctx context.Context, cfg *recordscout.Config) (recordscout.Inferrer, error) {
				return &mock.Inferrer{
					GenerateFn: func(ctx context.Context, prompt string) (string, error) {
						return `{"artist":"Can"}`, nil
					},
				}, nil
			},
		}

		p := rsslog.NewLoggingModelProvider(provider, debugLogger(&buf))
		m, err := p.Model(context.Background(), &recordscout.Config{APIKey: "AIza-secret", Model: "gemini-2.5-flash"})
		require.NoError(t, err)

		text, err := m.Generate(context.Background(), "prompt")

		require.NoError(t, err)
		assert.Equal(t, `{"artist":"Can"}`, text)
		output := buf.String()
		assert.Contains(t, output, "msg=generate")
		assert.Contains(t, output, "model=gemini-2.5-flash")
		assert.Contains(t, output, "prompt_bytes=6")
		assert.NotContains(t, output, "AIza-secret")
	})

	t.Run("logs and returns model errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		provider := &mock.ModelProvider{
			ModelFn: func(context.Context, *recordscout.Config) (recordscout.Inferrer, error) {
				return nil, errors.New("unknown model")
			},
		}

		_, err := rsslog.NewLoggingModelProvider(provider, debugLogger(&buf)).Model(context.Background(), &recordscout.Config{Model: "x"})

		require.EqualError(t, err, "unknown model")
		assert.Contains(t, buf.String(), `err="unknown model"`)
	})
}

func TestLoggingModelLister(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lister := &mock.ModelLister{
		ListModelsFn: func(context.Context, string) ([]*recordscout.Model, error) {
			return []*recordscout.Model{{Name: "a"}, {Name: "b"}}, nil
		},
	}

	models, err := rsslog.NewLoggingModelLister(lister, debugLogger(&buf)).ListModels(context.Background(), "k")

	require.NoError(t, err)
	assert.Len(t, models, 2)
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoggingCleaner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cleaner := &mock.Cleaner{
		CleanFn: func(html string) (string, error) {
			return "text", nil
		},
	}

	text, err := rsslog.NewLoggingCleaner(cleaner, "readability", debugLogger(&buf)).Clean("<p>text</p>")

	require.NoError(t, err)
	assert.Equal(t, "text", text)
	assert.Contains(t, buf.String(), "cleaner=readability")
	assert.Contains(t, buf.String(), "html_bytes=11")
	assert.Contains(t, buf.String(), "bytes=4")
}
