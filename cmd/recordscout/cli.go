package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/messaging"
)

// PageExtractor asks the content script of an open tab for the page text.
type PageExtractor interface {
	Extract(ctx context.Context, tab *recordscout.Tab) (*recordscout.ExtractionResponse, error)
}

// ModelRefresher bypasses the model cache.
type ModelRefresher interface {
	Refresh(ctx context.Context, apiKey string) ([]*recordscout.Model, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Messages  recordscout.Localizer
	Config    recordscout.ConfigService
	Provider  recordscout.ModelProvider
	Models    recordscout.ModelLister
	Refresher ModelRefresher
	Tabs      recordscout.TabOpener
	Pages     PageExtractor
	Runtime   *messaging.Runtime
	Progress  *messaging.Broadcaster
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"RECORDSCOUT_DB" help:"Path to the settings database"`
	Lang    string `name:"lang" env:"RECORDSCOUT_LANG" default:"en" help:"Language of user-facing messages"`
	Verbose bool   `short:"v" help:"Log pipeline stages to stderr"`

	Lookup LookupCmd `cmd:"" help:"Identify the release on a page and look it up in the catalog"`
	Config ConfigCmd `cmd:"" help:"Manage the API key and model selection"`
	Models ModelsCmd `cmd:"" help:"List models usable for lookups"`
	Serve  ServeCmd  `cmd:"" help:"Serve the message API and progress stream over HTTP"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	URL     string `arg:"" help:"Page describing a music release"`
	Catalog string `default:"discogs.com" help:"Catalog domain to search"`
	Cleaner string `default:"readability" enum:"readability,trafilatura,text" help:"Catalog page cleaner (readability, trafilatura, text)"`
	Render  bool   `help:"Fetch the catalog page with the browser instead of plain HTTP"`
	JSON    bool   `name:"json" help:"Print the release record as JSON"`
}

// ConfigCmd groups the configuration subcommands.
type ConfigCmd struct {
	Set   ConfigSetCmd   `cmd:"" help:"Store the API key or model"`
	Show  ConfigShowCmd  `cmd:"" help:"Show the stored configuration"`
	Check ConfigCheckCmd `cmd:"" help:"Send a test prompt with the stored configuration"`
}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	APIKey string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model  string `help:"Model name, e.g. gemini-2.5-flash"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}

// ConfigCheckCmd is the "config check" subcommand.
type ConfigCheckCmd struct{}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct {
	Refresh bool `help:"Ignore the cached model list"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":8787" help:"Listen address"`
	Catalog string `default:"discogs.com" help:"Catalog domain to search"`
	Cleaner string `default:"readability" enum:"readability,trafilatura,text" help:"Catalog page cleaner (readability, trafilatura, text)"`
}
