package main

import (
	"fmt"

	"github.com/fwojciec/recordscout"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	cfg, err := requireConfig(deps, false)
	if err != nil {
		return err
	}

	var models []*recordscout.Model
	if c.Refresh {
		models, err = deps.Refresher.Refresh(deps.Ctx, cfg.APIKey)
	} else {
		models, err = deps.Models.ListModels(deps.Ctx, cfg.APIKey)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recordscout.ErrorMessage(err))
		return err
	}

	if len(models) == 0 {
		fmt.Fprintln(deps.Stdout, "No compatible models found.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(deps.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"", "Model", "Name"})
	for _, m := range models {
		selected := ""
		if m.Name == cfg.Model {
			selected = "*"
		}
		tw.AppendRow(table.Row{selected, m.Name, m.DisplayName})
	}
	tw.Render()
	return nil
}
