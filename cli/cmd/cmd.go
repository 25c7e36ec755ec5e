package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type (
	contextKey    struct{}
	resolutionKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output: the kong context's stdout,
// or [os.Stdout] if none was stored.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the writer for diagnostics.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// WithResolution returns a new context.Context containing the resolution
// settings shared by all commands.
func WithResolution(ctx context.Context, r Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, r)
}

func resolutionFrom(ctx context.Context) Resolution {
	r, _ := ctx.Value(resolutionKey{}).(Resolution)

	return r
}
