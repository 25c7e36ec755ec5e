// Package inspect implements an interactive terminal inspector that parses
// each keystroke's input line and shows the resulting request.
package inspect

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/opline/log"
	"github.com/ardnew/opline/request"
)

// Run starts the inspector. Lines are parsed by handlers configured with
// opts, and entered lines are recorded in history.
func Run(
	ctx context.Context,
	opts []request.Option,
	history *History,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if history == nil {
		history = NewHistory("")
	}

	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "history load failed", slog.Any("error", err))
	}

	logger.TraceContext(
		ctx,
		"inspect start",
		slog.String("history", history.path),
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, opts, history, logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}
