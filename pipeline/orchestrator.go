// Package pipeline runs the release lookup: it identifies the record on a
// scraped page with a language model, finds the record in a catalog via web
// search and extracts release metadata from the catalog page.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/messaging"
	"github.com/google/uuid"
)

var _ recordscout.Processor = (*Orchestrator)(nil)

// Orchestrator runs the lookup pipeline. At most one run is in flight;
// concurrent callers wait their turn.
type Orchestrator struct {
	Config   recordscout.ConfigService
	Models   recordscout.ModelProvider
	Searcher recordscout.Searcher
	Fetcher  recordscout.Fetcher
	Parser   recordscout.ParsingService
	Progress recordscout.ProgressBroadcaster
	Messages recordscout.Localizer
	Catalog  *recordscout.Catalog
	Logger   *slog.Logger

	mu sync.Mutex
}

// Process runs the pipeline for the scraped page in req. It always returns
// exactly one response: failures, including panics, become
// {success: false, message}.
func (o *Orchestrator) Process(ctx context.Context, req *recordscout.ProcessRequest) (resp *recordscout.ProcessResponse) {
	o.mu.Lock()
	defer o.mu.Unlock()

	logger := o.logger().With("run", uuid.NewString())
	begin := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panic", "panic", r, "stack", string(debug.Stack()))
			resp = &recordscout.ProcessResponse{
				Success: false,
				Message: o.Messages.Message(recordscout.MsgBackgroundError, fmt.Sprint(r)),
			}
		}
		logger.Info("pipeline finished",
			"success", resp.Success,
			"duration", time.Since(begin),
		)
	}()

	if req == nil {
		return o.failure(logger, recordscout.Errorf(recordscout.EINVALID, "%s", o.Messages.Message(recordscout.MsgUnknownError)))
	}
	logger.Info("pipeline started", "url", req.URL, "content_chars", len([]rune(req.Content)))

	result, err := o.run(ctx, logger, req.Content, req.URL)
	if err != nil {
		return o.failure(logger, err)
	}
	return &recordscout.ProcessResponse{Success: true, Result: result}
}

func (o *Orchestrator) failure(logger *slog.Logger, err error) *recordscout.ProcessResponse {
	code := recordscout.ErrorCode(err)
	msg := recordscout.ErrorMessage(err)
	if code == recordscout.EINTERNAL {
		msg = o.Messages.Message(recordscout.MsgBackgroundError, err.Error())
	}
	logger.Warn("pipeline failed", "code", code, "err", err)
	return &recordscout.ProcessResponse{Success: false, Message: msg}
}

// run executes the stages in order. Each stage announces itself on the
// progress channel and the first failing stage ends the run.
func (o *Orchestrator) run(ctx context.Context, logger *slog.Logger, content, url string) (string, error) {
	o.progress(recordscout.MsgCheckingAPIKey)
	model, err := o.model(ctx)
	if err != nil {
		return "", err
	}

	o.progress(recordscout.MsgExtractingMusicInfo)
	work, err := o.identify(ctx, model, content, url)
	if err != nil {
		return "", err
	}
	logger.Info("identified", "artist", work.ArtistName(), "title", work.TitleName())

	query := o.Catalog.SearchQuery(work)
	o.progress(recordscout.MsgGoogleSearching, query)
	results, err := o.Searcher.Search(ctx, query)
	if err != nil {
		return "", o.stageError(recordscout.ENETWORK, err, recordscout.MsgGoogleSearchFailed, err.Error())
	}

	o.progress(recordscout.MsgLookingForDiscogs)
	catalogURL := o.Catalog.FindURL(results)
	if catalogURL == "" {
		return "", o.stageError(recordscout.ENORESULT, nil, recordscout.MsgNoDiscogsURL)
	}
	logger.Info("catalog page found", "catalog_url", catalogURL)

	o.progress(recordscout.MsgFetchingDiscogs)
	page, err := o.Fetcher.Fetch(ctx, catalogURL)
	if err != nil {
		return "", o.stageError(recordscout.ENETWORK, err, recordscout.MsgFetchDiscogsFailed, err.Error())
	}

	o.progress(recordscout.MsgAnalyzingDiscogs)
	scraped, err := o.Parser.ExtractReadable(ctx, &recordscout.ReadabilityRequest{
		Type: recordscout.TypeReadabilityExtract,
		HTML: page,
	})
	if err != nil {
		return "", o.stageError(recordscout.ETRANSPORT, err, recordscout.MsgOffscreenAccessError)
	}
	if scraped == nil || scraped.Content == nil || strings.TrimSpace(*scraped.Content) == "" {
		return "", o.stageError(recordscout.EEXTRACTION, nil, recordscout.MsgDiscogsContentError)
	}

	o.progress(recordscout.MsgExtractingDetails)
	result, err := model.Generate(ctx, BuildReleasePrompt(o.Catalog, *scraped.Content, catalogURL))
	if err != nil {
		return "", o.stageError(recordscout.ENETWORK, err, recordscout.MsgInferenceFailed, err.Error())
	}
	if strings.TrimSpace(result) == "" {
		return "", o.stageError(recordscout.ENORESULT, nil, recordscout.MsgInferenceFailed, "empty response")
	}

	o.progress(recordscout.MsgProcessingComplete)
	return result, nil
}

// model reads the configuration and opens the configured model.
func (o *Orchestrator) model(ctx context.Context) (recordscout.Inferrer, error) {
	cfg, err := o.Config.FindConfig(ctx)
	if err != nil {
		return nil, o.stageError(recordscout.ECONFIG, err, recordscout.MsgBackgroundError, err.Error())
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, o.stageError(recordscout.ECONFIG, nil, recordscout.MsgAPIKeyNotSet)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, o.stageError(recordscout.ECONFIG, nil, recordscout.MsgModelNotSelected)
	}
	model, err := o.Models.Model(ctx, cfg)
	if err != nil {
		return nil, o.stageError(recordscout.ECONFIG, err, recordscout.MsgModelNotAvailable, cfg.Model)
	}
	return model, nil
}

// identify asks the model which record the page is about.
func (o *Orchestrator) identify(ctx context.Context, model recordscout.Inferrer, content, url string) (*recordscout.IdentifiedWork, error) {
	text, err := model.Generate(ctx, BuildIdentifyPrompt(content, url))
	if err != nil {
		return nil, o.stageError(recordscout.ENETWORK, err, recordscout.MsgInferenceFailed, err.Error())
	}

	work, err := recordscout.ParseIdentifiedWork(text)
	if err != nil {
		return nil, o.stageError(recordscout.EPARSE, err, recordscout.MsgParseFailed, parseCause(err))
	}
	if err := work.Validate(); err != nil {
		return nil, o.stageError(recordscout.EINSUFFICIENT, err, recordscout.MsgCouldNotExtractInfo)
	}
	return work, nil
}

// stageError returns an error with a localized, user-facing message.
func (o *Orchestrator) stageError(code string, cause error, key recordscout.MessageKey, args ...any) error {
	msg := o.Messages.Message(key, args...)
	if cause == nil {
		return recordscout.Errorf(code, "%s", msg)
	}
	return recordscout.Wrap(code, cause, msg)
}

func (o *Orchestrator) progress(key recordscout.MessageKey, args ...any) {
	if o.Progress == nil {
		return
	}
	o.Progress.Broadcast(recordscout.NewProgressEvent(o.Messages.Message(key, args...)))
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// parseCause returns the decoder error behind a parse failure.
func parseCause(err error) string {
	var appErr *recordscout.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}

// Register binds the processContent action on rt to o.
func (o *Orchestrator) Register(rt *messaging.Runtime) {
	rt.Handle(recordscout.ActionProcessContent, func(ctx context.Context, payload []byte) (any, error) {
		var req recordscout.ProcessRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, recordscout.Errorf(recordscout.EINVALID, "invalid processContent message: %v", err)
		}
		return o.Process(ctx, &req), nil
	})
}
