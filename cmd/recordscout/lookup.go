package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/recordscout"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	if recordscout.IsRestrictedURL(c.URL) {
		msg := deps.Messages.Message(recordscout.MsgRestrictedPage)
		fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
		return recordscout.Errorf(recordscout.ERESTRICTED, "%s", msg)
	}

	events, unsubscribe := deps.Progress.Subscribe()
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for event := range events {
			fmt.Fprintf(deps.Stderr, "%s\n", event.Message)
		}
	}()
	result, err := c.lookup(deps)
	unsubscribe()
	<-printed
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recordscout.ErrorMessage(err))
		return err
	}

	record, err := recordscout.ParseReleaseRecord(result)
	if err != nil {
		// Still worth showing: the model answered, just not as JSON.
		fmt.Fprintf(deps.Stderr, "warning: %s\n", recordscout.ErrorMessage(err))
		fmt.Fprintln(deps.Stdout, result)
		return nil
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	writeRecord(deps.Stdout, record)
	return nil
}

// lookup extracts the page text from a browser tab and runs the pipeline
// through the runtime, returning the raw release record text.
func (c *LookupCmd) lookup(deps *Dependencies) (string, error) {
	deps.Progress.Broadcast(recordscout.NewProgressEvent(deps.Messages.Message(recordscout.MsgExtractingPage)))

	tab, err := deps.Tabs.OpenTab(deps.Ctx, c.URL)
	if err != nil {
		return "", recordscout.Wrap(recordscout.ENETWORK, err, fmt.Sprintf("could not open %s", c.URL))
	}
	defer func() { _ = deps.Tabs.CloseTab(deps.Ctx, tab.ID) }()

	page, err := deps.Pages.Extract(deps.Ctx, tab)
	if err != nil {
		return "", err
	}

	var resp recordscout.ProcessResponse
	err = deps.Runtime.SendMessage(deps.Ctx, &recordscout.ProcessRequest{
		Action:  recordscout.ActionProcessContent,
		Content: page.Content,
		URL:     page.URL,
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", recordscout.Errorf(recordscout.EUNKNOWN, "%s", resp.Message)
	}
	return resp.Result, nil
}

func writeRecord(w io.Writer, r *recordscout.ReleaseRecord) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendRows([]table.Row{
		{"Artist", r.Artist},
		{"Title", r.Title},
		{"Year", r.Year.String()},
		{"Identifiers", r.Identifiers.String()},
		{"Formats", strings.Join(r.AvailableFormats, ", ")},
		{"Vinyl only", vinylOnly(r.IsVinylOnly)},
		{"URL", r.URL},
	})
	tw.Render()
}

func vinylOnly(v *bool) string {
	switch {
	case v == nil:
		return "unknown"
	case *v:
		return "yes"
	default:
		return "no"
	}
}
