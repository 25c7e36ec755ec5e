package cmd

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/opline/log"
	"github.com/ardnew/opline/parsing"
	"github.com/ardnew/opline/request"
	"github.com/ardnew/opline/resolve"
)

// Resolution holds the flags that control how lines are read: the address
// relative paths start from and the sources of $name and ${name}
// substitution.
type Resolution struct {
	Strict   bool              `help:"Fail on unresolved $${name} references."                    negatable:""`
	Prefix   string            `help:"Address that relative addresses extend (e.g. /subsystem=logging)." placeholder:"PATH"`
	Var      []string          `help:"Define a $$name variable."                                   placeholder:"NAME=VALUE" short:"V"`
	VarsFile string            `help:"YAML file of variables for $$name substitution."             placeholder:"FILE"       type:"path"`
	Property map[string]string `help:"Define a $${name} property."                                  placeholder:"NAME=VALUE" short:"D"`
}

// Group returns the help group of the resolution flags.
func (Resolution) Group() kong.Group {
	return kong.Group{Key: "resolve", Title: "Substitution and addressing"}
}

// variables collects the variables file and --var definitions. Variables
// given on the command line override those from the file.
func (r Resolution) variables() (resolve.Variables, error) {
	vars := resolve.Variables{}

	if r.VarsFile != "" {
		if err := vars.ReadFile(r.VarsFile); err != nil {
			return nil, ErrReadVariables.Wrap(err).
				With(slog.String("file", r.VarsFile))
		}
	}

	for _, def := range r.Var {
		if err := vars.Set(def); err != nil {
			return nil, err
		}
	}

	return vars, nil
}

// parsingOptions returns the engine options for substitution.
func (r Resolution) parsingOptions() ([]parsing.Option, error) {
	vars, err := r.variables()
	if err != nil {
		return nil, err
	}

	return []parsing.Option{
		parsing.WithStrict(r.Strict),
		parsing.WithVariables(vars),
		parsing.WithProperties(resolve.NewProperties(r.Property)),
	}, nil
}

// options returns the handler options for the resolution flags, logging
// through the default logger.
func (r Resolution) options(ctx context.Context) ([]request.Option, error) {
	vars, err := r.variables()
	if err != nil {
		return nil, err
	}

	opts := []request.Option{
		request.WithStrict(r.Strict),
		request.WithVariables(vars),
		request.WithProperties(resolve.NewProperties(r.Property)),
		request.WithLogger(log.Default()),
	}

	if r.Prefix != "" {
		prefix, err := request.ParsePath(ctx, r.Prefix)
		if err != nil {
			return nil, ErrInvalidPrefix.Wrap(err).
				With(slog.String("prefix", r.Prefix))
		}

		opts = append(opts, request.WithPrefix(prefix))
	}

	return opts, nil
}
