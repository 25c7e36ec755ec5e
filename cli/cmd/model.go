package cmd

import (
	"context"
	"fmt"
)

// Model prints the request model of each operation request.
type Model struct {
	Format string `default:"json" enum:"json,yaml,dmr" help:"Output format (${enum}); dmr is the model text notation." short:"o"`
	Indent int    `default:"0"    help:"Indent width; 0 writes one model per line."                                       short:"i"`
	Input  `embed:""`
}

// Run executes the model command.
func (c *Model) Run(ctx context.Context) error {
	p, err := newParser(ctx, "operation", true)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	enc := Encoding{Format: c.Format, Indent: c.Indent}

	return each(ctx, c.Input, p, func(_ Line, r *result) error {
		if c.Format == "dmr" {
			_, err := fmt.Fprintln(w, r.model.String())

			return err
		}

		return enc.encode(ctx, w, r.model)
	})
}
