package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/opline/grammar"
	"github.com/ardnew/opline/parsing"
	"github.com/ardnew/opline/request"
)

// Trace prints the state transitions and content of a parse.
type Trace struct {
	Grammar string `default:"line" enum:"line,operation,address,arguments,value" help:"Grammar to read lines with (${enum})." short:"g"`
	Input   `embed:""`
}

var initialStates = map[string]parsing.StateID{
	"line":      grammar.CommandLine,
	"operation": grammar.OperationRequest,
	"address":   grammar.AddressLine,
	"arguments": grammar.ArgumentList,
	"value":     grammar.Value,
}

// Run executes the trace command.
func (c *Trace) Run(ctx context.Context) error {
	res := resolutionFrom(ctx)

	popts, err := res.parsingOptions()
	if err != nil {
		return err
	}

	ropts, err := res.options(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	diag := newDiagnostic(stderr(ctx))
	failed := 0

	for line, err := range c.read(ctx) {
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%d: %s\n", line.Number, strconv.Quote(line.Text))

		h := request.New(ropts...)

		t := &tracer{w: w, next: h}
		if c.Grammar == "value" {
			t.next = parsing.NopCallback{}
		}

		perr := grammar.Default().Parse(ctx, line.Text, initialStates[c.Grammar], t, popts...)
		t.flush()

		if perr != nil {
			failed++

			diag.report(line.Number, perr)

			continue
		}

		if c.Grammar != "value" {
			fmt.Fprintf(w, "ends-on %s complete=%t\n", h.Separator(), h.IsRequestComplete())
		}
	}

	if failed > 0 {
		return ErrFailedLines.With(slog.Int("count", failed))
	}

	return nil
}

// tracer writes one line per state transition, with the content emitted in
// between collected on its own line, and forwards each event to next.
type tracer struct {
	w       io.Writer
	next    parsing.Callback
	pending strings.Builder
	depth   int
}

func (t *tracer) flush() {
	if t.pending.Len() == 0 {
		return
	}

	fmt.Fprintf(t.w, "%s%s\n", indent(t.depth), strconv.Quote(t.pending.String()))
	t.pending.Reset()
}

func (t *tracer) EnteredState(c *parsing.Context) error {
	t.flush()

	t.depth = c.Depth()
	fmt.Fprintf(t.w, "%s> %s @%d\n", indent(t.depth-1), c.State().Name(), c.Location())

	return t.next.EnteredState(c)
}

func (t *tracer) LeavingState(c *parsing.Context) error {
	t.flush()

	fmt.Fprintf(t.w, "%s< %s @%d\n", indent(c.Depth()-1), c.State().Name(), c.Location())
	t.depth = c.Depth() - 1

	return t.next.LeavingState(c)
}

func (t *tracer) Character(c *parsing.Context) error {
	t.depth = c.Depth()
	t.pending.WriteRune(c.Character())

	return t.next.Character(c)
}

func indent(depth int) string { return strings.Repeat("  ", max(0, depth)) }
