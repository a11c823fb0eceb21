package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/messaging"
	"github.com/fwojciec/recordscout/mock"
	"github.com/fwojciec/recordscout/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pageURL    = "https://shop.example/records/boc-mhtrtc"
	pageText   = "Artist: Boards of Canada — Album: Music Has the Right to Children"
	catalogURL = "https://catalogsite.example/release/12345-Boards-of-Canada"
	identified = `{"artist":"Boards of Canada","title":"Music Has the Right to Children"}`
	releaseRaw = `{"artist":"Boards of Canada","title":"Music Has the Right to Children","year":1998,"identifiers":"WARPLP55","url":"https://catalogsite.example/release/12345-Boards-of-Canada","isVinylOnly":true,"availableFormats":["Vinyl","LP","12\""]}`
)

// fixture wires an Orchestrator to mocks that succeed by default and
// records what each stage received.
type fixture struct {
	orch *pipeline.Orchestrator

	config   *mock.ConfigService
	models   *mock.ModelProvider
	inferrer *mock.Inferrer
	searcher *mock.Searcher
	fetcher  *mock.Fetcher
	parser   *mock.ParsingService

	mu       sync.Mutex
	progress []string
	prompts  []string
	queries  []string
	fetched  []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{}
	f.config = &mock.ConfigService{
		FindConfigFn: func(context.Context) (*recordscout.Config, error) {
			return &recordscout.Config{APIKey: "AIza-test", Model: "gemini-2.5-flash"}, nil
		},
	}
	f.inferrer = &mock.Inferrer{
		GenerateFn: func(ctx context.Context, prompt string) (string, error) {
			f.record(&f.prompts, prompt)
			if len(f.prompts) == 1 {
				return identified, nil
			}
			return releaseRaw, nil
		},
	}
	f.models = &mock.ModelProvider{
		ModelFn: func(context.Context, *recordscout.Config) (recordscout.Inferrer, error) {
			return f.inferrer, nil
		},
	}
	f.searcher = &mock.Searcher{
		SearchFn: func(ctx context.Context, query string) (string, error) {
			f.record(&f.queries, query)
			return `<div><a href="` + catalogURL + `">Boards of Canada</a> <a href="https://catalogsite.example/master/99">Master</a></div>`, nil
		},
	}
	f.fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			f.record(&f.fetched, url)
			return "<html><body>Format: Vinyl, LP, 12-inch</body></html>", nil
		},
	}
	f.parser = &mock.ParsingService{
		ExtractReadableFn: func(ctx context.Context, req *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
			text := "Boards of Canada - Music Has the Right to Children. Format: Vinyl, LP, 12-inch."
			return &recordscout.ReadabilityResponse{Content: &text}, nil
		},
	}
	f.orch = &pipeline.Orchestrator{
		Config:   f.config,
		Models:   f.models,
		Searcher: f.searcher,
		Fetcher:  f.fetcher,
		Parser:   f.parser,
		Progress: &mock.ProgressBroadcaster{
			BroadcastFn: func(e recordscout.ProgressEvent) {
				f.record(&f.progress, e.Message)
			},
		},
		Messages: &mock.Localizer{},
		Catalog:  recordscout.NewCatalog("catalogsite.example"),
	}
	return f
}

func (f *fixture) record(dst *[]string, s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*dst = append(*dst, s)
}

func (f *fixture) process() *recordscout.ProcessResponse {
	return f.orch.Process(context.Background(), &recordscout.ProcessRequest{
		Action:  recordscout.ActionProcessContent,
		Content: pageText,
		URL:     pageURL,
	})
}

func TestOrchestrator_Process_EndToEnd(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.process()

	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, releaseRaw, resp.Result)
	assert.Empty(t, resp.Message)

	assert.Equal(t, []string{"site:catalogsite.example Boards of Canada Music Has the Right to Children"}, f.queries)
	assert.Equal(t, []string{catalogURL}, f.fetched)

	require.Len(t, f.prompts, 2)
	assert.Contains(t, f.prompts[0], "(URL: "+pageURL+")")
	assert.True(t, strings.HasSuffix(f.prompts[0], "Web page content:\n"+pageText))
	assert.Contains(t, f.prompts[1], "Catalogsite page (URL: "+catalogURL+")")
	assert.Contains(t, f.prompts[1], "Text: Boards of Canada - Music Has the Right to Children. Format: Vinyl, LP, 12-inch.")

	assert.Equal(t, []string{
		"checkingApiKey",
		"extractingMusicInfo",
		"googleSearching: site:catalogsite.example Boards of Canada Music Has the Right to Children",
		"lookingForDiscogs",
		"fetchingDiscogs",
		"analyzingDiscogs",
		"extractingDetails",
		"processingCompleteMessage",
	}, f.progress)

	record, err := recordscout.ParseReleaseRecord(resp.Result)
	require.NoError(t, err)
	require.NotNil(t, record.IsVinylOnly)
	assert.True(t, *record.IsVinylOnly)
	assert.Equal(t, []string{"Vinyl", "LP", `12"`}, record.AvailableFormats)
}

func TestOrchestrator_Process_Configuration(t *testing.T) {
	t.Parallel()

	t.Run("fails without an API key before any model call", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.config.FindConfigFn = func(context.Context) (*recordscout.Config, error) {
			return &recordscout.Config{Model: "gemini-2.5-flash"}, nil
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "apiKeyNotSet", resp.Message)
		assert.Empty(t, f.prompts)
		assert.Equal(t, []string{"checkingApiKey"}, f.progress)
	})

	t.Run("fails without a selected model", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.config.FindConfigFn = func(context.Context) (*recordscout.Config, error) {
			return &recordscout.Config{APIKey: "k"}, nil
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "modelNotSelected", resp.Message)
	})

	t.Run("reports an unavailable model by name", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.models.ModelFn = func(context.Context, *recordscout.Config) (recordscout.Inferrer, error) {
			return nil, errors.New("no such model")
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "modelNotAvailable: gemini-2.5-flash", resp.Message)
	})

	t.Run("reports storage failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.config.FindConfigFn = func(context.Context) (*recordscout.Config, error) {
			return nil, errors.New("database is locked")
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "backgroundScriptError: database is locked", resp.Message)
	})
}

func TestOrchestrator_Process_Identification(t *testing.T) {
	t.Parallel()

	t.Run("accepts a fenced JSON response", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		first := true
		f.inferrer.GenerateFn = func(ctx context.Context, prompt string) (string, error) {
			if first {
				first = false
				return "```json\n" + identified + "\n```", nil
			}
			return releaseRaw, nil
		}

		resp := f.process()

		assert.True(t, resp.Success, resp.Message)
	})

	t.Run("fails on invalid JSON", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.inferrer.GenerateFn = func(context.Context, string) (string, error) {
			return "The artist is Boards of Canada.", nil
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.True(t, strings.HasPrefix(resp.Message, "parseFailed: "), resp.Message)
		assert.Empty(t, f.queries)
	})

	t.Run("fails when neither artist nor title is found and never searches", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.inferrer.GenerateFn = func(context.Context, string) (string, error) {
			return `{"artist": null, "title": null}`, nil
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "couldNotExtractInfo", resp.Message)
		assert.Empty(t, f.queries)
	})

	t.Run("searches with the artist alone when the title is missing", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		calls := 0
		f.inferrer.GenerateFn = func(context.Context, string) (string, error) {
			calls++
			if calls == 1 {
				return `{"artist": "Autechre", "title": null}`, nil
			}
			return releaseRaw, nil
		}

		resp := f.process()

		require.True(t, resp.Success)
		assert.Equal(t, []string{"site:catalogsite.example Autechre"}, f.queries)
	})

	t.Run("reports inference failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.inferrer.GenerateFn = func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "inferenceFailed: quota exceeded", resp.Message)
	})
}

func TestOrchestrator_Process_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("reports search failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.searcher.SearchFn = func(context.Context, string) (string, error) {
			return "", errors.New("HTTP 429")
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "googleSearchFailed: HTTP 429", resp.Message)
	})

	t.Run("fails without a catalog URL and never fetches", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.searcher.SearchFn = func(context.Context, string) (string, error) {
			return `<a href="https://other.example/release/1">elsewhere</a>`, nil
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "noDiscogsUrl", resp.Message)
		assert.Empty(t, f.fetched)
	})

	t.Run("reports catalog fetch failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.fetcher.FetchFn = func(context.Context, string) (string, error) {
			return "", errors.New("HTTP 403 for " + catalogURL)
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "fetchDiscogsFailed: HTTP 403 for "+catalogURL, resp.Message)
	})

	t.Run("passes the catalog HTML to the parsing context", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		var got *recordscout.ReadabilityRequest
		f.parser.ExtractReadableFn = func(ctx context.Context, req *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
			got = req
			text := "cleaned"
			return &recordscout.ReadabilityResponse{Content: &text}, nil
		}

		resp := f.process()

		require.True(t, resp.Success)
		require.NotNil(t, got)
		assert.Equal(t, recordscout.TypeReadabilityExtract, got.Type)
		assert.Contains(t, got.HTML, "Format: Vinyl, LP, 12-inch")
	})

	t.Run("reports an unavailable parsing context", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.parser.ExtractReadableFn = func(context.Context, *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
			return nil, messaging.ErrContextClosed
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "offscreenAccessError", resp.Message)
	})

	t.Run("fails when cleaning yields nothing", func(t *testing.T) {
		t.Parallel()

		for _, content := range []*string{nil, new(string)} {
			f := newFixture(t)
			f.parser.ExtractReadableFn = func(context.Context, *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
				return &recordscout.ReadabilityResponse{Content: content}, nil
			}

			resp := f.process()

			assert.False(t, resp.Success)
			assert.Equal(t, "discogsContentError", resp.Message)
			assert.Len(t, f.prompts, 1)
		}
	})

	t.Run("reports secondary inference failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		calls := 0
		f.inferrer.GenerateFn = func(context.Context, string) (string, error) {
			calls++
			if calls == 1 {
				return identified, nil
			}
			return "", errors.New("deadline exceeded")
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Equal(t, "inferenceFailed: deadline exceeded", resp.Message)
		assert.NotContains(t, f.progress, "processingCompleteMessage")
	})

	t.Run("fails on a blank secondary response", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		calls := 0
		f.inferrer.GenerateFn = func(context.Context, string) (string, error) {
			calls++
			if calls == 1 {
				return identified, nil
			}
			return " \n", nil
		}

		resp := f.process()

		assert.False(t, resp.Success)
		assert.Empty(t, resp.Result)
		assert.Equal(t, "inferenceFailed: empty response", resp.Message)
		assert.NotContains(t, f.progress, "processingCompleteMessage")
	})
}

func TestOrchestrator_Process_Robustness(t *testing.T) {
	t.Parallel()

	t.Run("turns a panic into one failure response", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.searcher.SearchFn = func(context.Context, string) (string, error) {
			panic("nil map write")
		}

		resp := f.process()

		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, "backgroundScriptError: nil map write", resp.Message)
	})

	t.Run("answers a nil request", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		resp := f.orch.Process(context.Background(), nil)

		assert.False(t, resp.Success)
		assert.Equal(t, "unknownError", resp.Message)
	})

	t.Run("works without a progress sink", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.orch.Progress = nil

		resp := f.process()

		assert.True(t, resp.Success)
	})

	t.Run("serializes concurrent runs", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		var active, peak atomic.Int32
		f.inferrer.GenerateFn = func(ctx context.Context, prompt string) (string, error) {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			if strings.Contains(prompt, "Web page content") {
				return identified, nil
			}
			return releaseRaw, nil
		}

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp := f.process()
				assert.True(t, resp.Success)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), peak.Load())
	})
}

func TestOrchestrator_Register(t *testing.T) {
	t.Parallel()

	t.Run("answers processContent messages", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rt := messaging.NewRuntime()
		f.orch.Register(rt)

		var resp recordscout.ProcessResponse
		err := rt.SendMessage(context.Background(), recordscout.ProcessRequest{
			Action:  recordscout.ActionProcessContent,
			Content: pageText,
			URL:     pageURL,
		}, &resp)

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, releaseRaw, resp.Result)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rt := messaging.NewRuntime()
		f.orch.Register(rt)

		_, err := rt.Dispatch(context.Background(), []byte(`{"action":"processContent","content":42}`))

		assert.Equal(t, recordscout.EINVALID, recordscout.ErrorCode(err))
	})
}
