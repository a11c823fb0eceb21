package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the subset of the Gemini REST API the package uses.
type fakeAPI struct {
	mu      sync.Mutex
	paths   []string
	apiKeys []string
	reply   string
	status  int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.apiKeys = append(f.apiKeys, r.Header.Get("x-goog-api-key"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad model","status":"INVALID_ARGUMENT"}}`))
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, ":generateContent"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": f.reply}},
				},
				"finishReason": "STOP",
			}},
		})
	case strings.HasSuffix(r.URL.Path, "/models"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []any{
				map[string]any{
					"name":                       "models/gemini-2.5-flash",
					"displayName":                "Gemini 2.5 Flash",
					"description":                "Fast model",
					"supportedGenerationMethods": []string{"generateContent", "countTokens"},
				},
				map[string]any{
					"name":                       "models/text-embedding-004",
					"displayName":                "Embedding",
					"supportedGenerationMethods": []string{"embedContent"},
				},
				map[string]any{
					"name":                       "models/imagen-3.0-generate-002",
					"displayName":                "Imagen",
					"supportedGenerationMethods": []string{"predict"},
				},
			},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestModelProvider_Model(t *testing.T) {
	t.Parallel()

	t.Run("requires a model", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewModelProvider().Model(context.Background(), &recordscout.Config{APIKey: "k"})

		assert.Equal(t, recordscout.ECONFIG, recordscout.ErrorCode(err))
	})

	t.Run("requires an API key", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewModelProvider().Model(context.Background(), &recordscout.Config{Model: "gemini-2.5-flash"})

		assert.Equal(t, recordscout.ECONFIG, recordscout.ErrorCode(err))
	})

	t.Run("strips the models prefix", func(t *testing.T) {
		t.Parallel()

		m, err := gemini.NewModelProvider().Model(context.Background(), &recordscout.Config{
			APIKey: "k",
			Model:  "models/gemini-2.5-flash",
		})

		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", m.(*gemini.Model).Name())
	})
}

func TestModel_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns the response text", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{reply: `{"artist": "Nina Simone", "title": "Pastel Blues"}`}
		server := httptest.NewServer(api)
		defer server.Close()

		provider := gemini.NewModelProvider(gemini.WithBaseURL(server.URL + "/"))
		m, err := provider.Model(context.Background(), &recordscout.Config{APIKey: "secret", Model: "gemini-2.5-flash"})
		require.NoError(t, err)

		text, err := m.Generate(context.Background(), "identify this page")

		require.NoError(t, err)
		assert.Equal(t, `{"artist": "Nina Simone", "title": "Pastel Blues"}`, text)
		require.Len(t, api.paths, 1)
		assert.Contains(t, api.paths[0], "gemini-2.5-flash:generateContent")
		assert.Equal(t, "secret", api.apiKeys[0])
	})

	t.Run("returns API errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(&fakeAPI{status: http.StatusBadRequest})
		defer server.Close()

		provider := gemini.NewModelProvider(gemini.WithBaseURL(server.URL + "/"))
		m, err := provider.Model(context.Background(), &recordscout.Config{APIKey: "secret", Model: "no-such-model"})
		require.NoError(t, err)

		_, err = m.Generate(context.Background(), "prompt")

		require.Error(t, err)
	})
}

func TestModelLister_ListModels(t *testing.T) {
	t.Parallel()

	t.Run("keeps models that generate text", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(&fakeAPI{})
		defer server.Close()

		lister := gemini.NewModelLister(gemini.WithBaseURL(server.URL + "/"))

		models, err := lister.ListModels(context.Background(), "secret")

		require.NoError(t, err)
		require.Len(t, models, 1)
		assert.Equal(t, "gemini-2.5-flash", models[0].Name)
		assert.Equal(t, "Gemini 2.5 Flash", models[0].DisplayName)
		assert.Equal(t, "Fast model", models[0].Description)
	})

	t.Run("requires an API key", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewModelLister().ListModels(context.Background(), "")

		assert.Equal(t, recordscout.ECONFIG, recordscout.ErrorCode(err))
	})
}

func TestCompatible(t *testing.T) {
	t.Parallel()

	assert.True(t, gemini.Compatible("models/gemini-2.0-flash", []string{"generateContent"}))
	assert.True(t, gemini.Compatible("models/gemini-exp", nil))
	assert.False(t, gemini.Compatible("models/gemini-pro-vision", []string{"predict"}))
	assert.False(t, gemini.Compatible("models/imagen-3.0", []string{"generateContent"}))
	assert.False(t, gemini.Compatible("models/gemini-audio-only", nil))
}

func TestBuildConfig_SetsLowTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}
