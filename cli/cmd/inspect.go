package cmd

import (
	"context"

	"github.com/ardnew/opline/cli/cmd/inspect"
	"github.com/ardnew/opline/log"
)

// Inspect starts the interactive parse inspector.
type Inspect struct {
	HistoryFile string `default:"${history}" help:"File recording entered lines." type:"path"`
	NoHistory   bool   `help:"Keep history in memory only."`
}

// Run executes the inspect command.
func (c *Inspect) Run(ctx context.Context) error {
	opts, err := resolutionFrom(ctx).options(ctx)
	if err != nil {
		return err
	}

	path := c.HistoryFile
	if c.NoHistory {
		path = ""
	}

	return inspect.Run(ctx, opts, inspect.NewHistory(path), log.Default())
}
