package cmd

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/opline/log"
	"github.com/ardnew/opline/request"
	"github.com/ardnew/opline/value"
)

// result is the outcome of reading one line.
type result struct {
	line    string
	summary request.Summary
	model   *value.Node
	err     error
}

// parser reads lines with one handler, remembering the result of every
// distinct line so repeated lines are read once per run.
type parser struct {
	handler *request.Handler
	read    func(*request.Handler, context.Context, string) error
	model   bool

	mu      sync.Mutex
	results map[uint64]*result
}

// grammars maps grammar names to handler entry points.
var grammars = map[string]func(*request.Handler, context.Context, string) error{
	"line":      (*request.Handler).ParseLine,
	"operation": (*request.Handler).ParseOperation,
	"address":   (*request.Handler).ParseAddress,
	"arguments": (*request.Handler).ParseArguments,
}

// newParser returns a parser for the named grammar. If model is set, each
// result also carries the request model.
func newParser(ctx context.Context, grammar string, model bool) (*parser, error) {
	opts, err := resolutionFrom(ctx).options(ctx)
	if err != nil {
		return nil, err
	}

	read, ok := grammars[grammar]
	if !ok {
		read = grammars["line"]
	}

	return &parser{
		handler: request.New(opts...),
		read:    read,
		model:   model,
		results: make(map[uint64]*result),
	}, nil
}

// parse returns the result of reading line.
func (p *parser) parse(ctx context.Context, line string) *result {
	key := xxh3.HashString(line)

	p.mu.Lock()
	defer p.mu.Unlock()

	if r, ok := p.results[key]; ok && r.line == line {
		log.TraceContext(ctx, "cache hit",
			slog.String("hash", strconv.FormatUint(key, 36)),
		)

		return r
	}

	r := &result{line: line}

	r.err = p.read(p.handler, ctx, line)
	if r.err == nil {
		r.summary = p.handler.Summary(line)

		if p.model {
			r.model, r.err = p.handler.ToModel(ctx)
		}
	}

	p.results[key] = r

	return r
}
