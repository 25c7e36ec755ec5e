package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/opline/log"
)

// Parse prints the assembled request of each line.
type Parse struct {
	Grammar  string `default:"line" enum:"line,operation,address,arguments" help:"Grammar to read lines with (${enum})." short:"g"`
	Encoding `embed:""`
	Input    `embed:""`
}

// Run executes the parse command.
func (c *Parse) Run(ctx context.Context) error {
	p, err := newParser(ctx, c.Grammar, false)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	return each(ctx, c.Input, p, func(_ Line, r *result) error {
		return c.encode(ctx, w, r.summary)
	})
}

// each parses every input line and calls fn with the lines that succeed.
// Failures are reported to stderr and counted; the count is returned as
// [ErrFailedLines] after all lines are read.
func each(ctx context.Context, in Input, p *parser, fn func(Line, *result) error) error {
	diag := newDiagnostic(stderr(ctx))
	failed := 0

	for line, err := range in.read(ctx) {
		if err != nil {
			return err
		}

		r := p.parse(ctx, line.Text)
		if r.err != nil {
			failed++

			log.DebugContext(ctx, "line failed",
				slog.Int("line", line.Number),
				slog.Any("error", r.err),
			)
			diag.report(line.Number, r.err)

			continue
		}

		if err := fn(line, r); err != nil {
			return err
		}
	}

	if failed > 0 {
		return ErrFailedLines.With(slog.Int("count", failed))
	}

	return nil
}
