package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/opline/request"
)

// Query evaluates an expression against each parsed line.
//
// The expression sees the fields of the parsed line: line, command,
// address, nodes, operation, properties, params, headers, output, ends_on
// and complete.
type Query struct {
	Expr    string `arg:"" help:"Expression to evaluate, e.g. 'operation == \"add\" && params.name != \"\"'."`
	Filter  bool   `help:"Print the lines for which the expression is true." short:"F"`
	Grammar string `default:"line" enum:"line,operation,address,arguments" help:"Grammar to read lines with (${enum})." short:"g"`
	Input   `embed:""`
}

// queryEnv returns the expression environment of a parsed line.
func queryEnv(s request.Summary) map[string]any {
	return map[string]any{
		"line":       s.Line,
		"command":    s.Command,
		"address":    s.Address,
		"nodes":      s.Nodes,
		"operation":  s.Operation,
		"properties": s.Properties,
		"params":     s.Params,
		"headers":    s.Headers,
		"output":     s.Output,
		"ends_on":    s.EndsOn.String(),
		"complete":   s.Complete,
	}
}

// Run executes the query command.
func (c *Query) Run(ctx context.Context) error {
	opts := []expr.Option{expr.Env(queryEnv(request.Summary{}))}
	if c.Filter {
		opts = append(opts, expr.AsBool())
	}

	program, err := expr.Compile(c.Expr, opts...)
	if err != nil {
		return ErrQueryCompile.Wrap(err).
			With(slog.String("expr", c.Expr))
	}

	p, err := newParser(ctx, c.Grammar, false)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	return each(ctx, c.Input, p, func(line Line, r *result) error {
		out, err := expr.Run(program, queryEnv(r.summary))
		if err != nil {
			return ErrQueryRun.Wrap(err).
				With(slog.Int("line", line.Number))
		}

		if c.Filter {
			if ok, _ := out.(bool); ok {
				_, err = fmt.Fprintln(w, line.Text)
			}

			return err
		}

		if s, ok := out.(string); ok {
			_, err = fmt.Fprintln(w, s)

			return err
		}

		data, err := json.Marshal(out)
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	})
}
