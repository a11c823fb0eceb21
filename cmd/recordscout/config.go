package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/gemini"
)

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	var upd recordscout.ConfigUpdate
	if c.APIKey != "" {
		upd.APIKey = &c.APIKey
	}
	if c.Model != "" {
		upd.Model = &c.Model
	}

	if err := deps.Config.UpdateConfig(deps.Ctx, upd); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recordscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Configuration saved.")
	return nil
}

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Config.FindConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recordscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "API key: %s\n", maskKey(cfg.APIKey))
	model := cfg.Model
	if model == "" {
		model = "(not set)"
	}
	fmt.Fprintf(deps.Stdout, "Model:   %s\n", model)
	return nil
}

// Run executes the config check command.
func (c *ConfigCheckCmd) Run(deps *Dependencies) error {
	cfg, err := requireConfig(deps, true)
	if err != nil {
		return err
	}

	model, err := deps.Provider.Model(deps.Ctx, cfg)
	if err != nil {
		msg := deps.Messages.Message(recordscout.MsgModelNotAvailable, cfg.Model)
		fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
		return recordscout.Wrap(recordscout.ECONFIG, err, msg)
	}

	text, err := model.Generate(deps.Ctx, gemini.TestPrompt)
	if err != nil {
		msg := deps.Messages.Message(recordscout.MsgInferenceFailed, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
		return recordscout.Wrap(recordscout.ENETWORK, err, msg)
	}

	fmt.Fprintf(deps.Stdout, "%s responded: %s\n", cfg.Model, strings.TrimSpace(text))
	return nil
}

// requireConfig loads the stored configuration and fails with the
// localized message when the API key, or the model if needModel, is
// missing.
func requireConfig(deps *Dependencies, needModel bool) (*recordscout.Config, error) {
	cfg, err := deps.Config.FindConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recordscout.ErrorMessage(err))
		return nil, err
	}

	var key recordscout.MessageKey
	switch {
	case cfg.APIKey == "":
		key = recordscout.MsgAPIKeyNotSet
	case needModel && cfg.Model == "":
		key = recordscout.MsgModelNotSelected
	default:
		return cfg, nil
	}
	msg := deps.Messages.Message(key)
	fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
	return nil, recordscout.Errorf(recordscout.ECONFIG, "%s", msg)
}

// maskKey shows only the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
