package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

// testContext returns a context whose commands write to the returned
// buffers.
func testContext(t *testing.T, res Resolution) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	k, err := kong.New(&struct{}{}, kong.Writers(&stdout, &stderr))
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), &kong.Context{Kong: k})

	return WithResolution(ctx, res), &stdout, &stderr
}

func TestParseRun(t *testing.T) {
	ctx, stdout, _ := testContext(t, Resolution{})

	c := &Parse{
		Grammar:  "line",
		Encoding: Encoding{Format: "json"},
		Input:    Input{Lines: []string{"/subsystem=logging:read-resource(recursive=true) > out.txt"}},
	}

	if err := c.Run(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decoding %q: %v", stdout.String(), err)
	}

	want := map[string]any{
		"line":      "/subsystem=logging:read-resource(recursive=true) > out.txt",
		"address":   "/subsystem=logging",
		"nodes":     []any{map[string]any{"type": "subsystem", "name": "logging"}},
		"operation": "read-resource",
		"properties": []any{
			map[string]any{"name": "recursive", "value": "true"},
		},
		"output":   "out.txt",
		"ends_on":  "none",
		"complete": true,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRunFailures(t *testing.T) {
	ctx, stdout, stderr := testContext(t, Resolution{})

	c := &Parse{
		Grammar:  "line",
		Encoding: Encoding{Format: "json"},
		Input:    Input{Lines: []string{":op(a=1", ":ok"}},
	}

	err := c.Run(ctx)
	if !errors.Is(err, ErrFailedLines) {
		t.Fatalf("expected %v, got %v", ErrFailedLines, err)
	}

	if !strings.Contains(stdout.String(), `"operation":"ok"`) {
		t.Errorf("expected the good line on stdout, got %q", stdout.String())
	}

	diag := stderr.String()

	for _, want := range []string{"error:", "   1 | :op(a=1\n", "^"} {
		if !strings.Contains(diag, want) {
			t.Errorf("expected %q in diagnostic:\n%s", want, diag)
		}
	}
}

func TestParseRunPrefix(t *testing.T) {
	ctx, stdout, _ := testContext(t, Resolution{Prefix: "/subsystem=logging"})

	c := &Parse{
		Grammar:  "address",
		Encoding: Encoding{Format: "json"},
		Input:    Input{Lines: []string{"logger=root"}},
	}

	if err := c.Run(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(stdout.String(), `"address":"/subsystem=logging/logger=root"`) {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestParseRunInvalidPrefix(t *testing.T) {
	ctx, _, _ := testContext(t, Resolution{Prefix: `/a="b`})

	err := (&Parse{Input: Input{Lines: []string{":op"}}}).Run(ctx)
	if !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("expected %v, got %v", ErrInvalidPrefix, err)
	}
}

func TestModelRun(t *testing.T) {
	res := Resolution{
		Var:      []string{"x=1"},
		Property: map[string]string{"node": "logging"},
	}

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `{"operation":"write-attribute","address":[{"subsystem":"logging"}],"name":"level","value":"1"}` + "\n"},
		{format: "dmr", want: `{"operation" => "write-attribute","address" => [{"subsystem" => "logging"}],"name" => "level","value" => "1"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ctx, stdout, _ := testContext(t, res)

			c := &Model{
				Format: tt.format,
				Input:  Input{Lines: []string{"/subsystem=${node}:write-attribute(name=level, value=$x)"}},
			}

			if err := c.Run(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got := stdout.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestModelRunUnnamedNode(t *testing.T) {
	ctx, _, stderr := testContext(t, Resolution{})

	err := (&Model{Format: "json", Input: Input{Lines: []string{"/a:add"}}}).Run(ctx)
	if !errors.Is(err, ErrFailedLines) {
		t.Fatalf("expected %v, got %v", ErrFailedLines, err)
	}

	if !strings.Contains(stderr.String(), "error:") {
		t.Errorf("expected a diagnostic, got %q", stderr.String())
	}
}

func TestQueryRun(t *testing.T) {
	lines := Input{Lines: []string{"/a=b:add(x=1)", "/a=b:remove", "deploy app.war"}}

	tests := []struct {
		name   string
		expr   string
		filter bool
		want   string
	}{
		{name: "string", expr: "operation", want: "add\nremove\n\n"},
		{name: "json", expr: "params", want: "{\"x\":\"1\"}\n{}\n{}\n"},
		{name: "filter", expr: `operation == "add"`, filter: true, want: "/a=b:add(x=1)\n"},
		{name: "commands", expr: `command != ""`, filter: true, want: "deploy app.war\n"},
		{name: "ends on", expr: `complete ? "done" : ends_on`, want: "done\nnone\nnone\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := testContext(t, Resolution{})

			c := &Query{Expr: tt.expr, Filter: tt.filter, Grammar: "line", Input: lines}
			if err := c.Run(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got := stdout.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestQueryRunCompileError(t *testing.T) {
	ctx, _, _ := testContext(t, Resolution{})

	err := (&Query{Expr: "operation ==", Input: Input{Lines: []string{":op"}}}).Run(ctx)
	if !errors.Is(err, ErrQueryCompile) {
		t.Errorf("expected %v, got %v", ErrQueryCompile, err)
	}
}

func TestTraceRun(t *testing.T) {
	ctx, stdout, _ := testContext(t, Resolution{})

	c := &Trace{Grammar: "operation", Input: Input{Lines: []string{":op(a=1)"}}}
	if err := c.Run(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := stdout.String()

	for _, want := range []string{
		`1: ":op(a=1)"` + "\n",
		"> OPERATION_NAME",
		"< OPERATION_NAME",
		`"op"`,
		"ends-on property-list-end complete=true\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in trace:\n%s", want, out)
		}
	}
}

func TestParserCache(t *testing.T) {
	ctx, _, _ := testContext(t, Resolution{})

	p, err := newParser(ctx, "line", false)
	if err != nil {
		t.Fatal(err)
	}

	first := p.parse(ctx, ":read-resource")
	p.parse(ctx, ":remove")

	if p.parse(ctx, ":read-resource") != first {
		t.Error("expected a repeated line to reuse its result")
	}

	if first.summary.Operation != "read-resource" {
		t.Errorf("expected read-resource, got %q", first.summary.Operation)
	}
}

func TestEncode(t *testing.T) {
	v := map[string]any{"operation": "add", "names": []string{"a", "b"}}

	tests := []struct {
		enc  Encoding
		want string
	}{
		{enc: Encoding{Format: "json"}, want: `{"names":["a","b"],"operation":"add"}` + "\n"},
		{
			enc:  Encoding{Format: "json", Indent: 2},
			want: "{\n  \"names\": [\n    \"a\",\n    \"b\"\n  ],\n  \"operation\": \"add\"\n}\n",
		},
		{enc: Encoding{Format: "yaml", Indent: 2}, want: "---\nnames:\n  - a\n  - b\noperation: add\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer

		if err := tt.enc.encode(context.Background(), &buf, v); err != nil {
			t.Fatalf("%+v: expected no error, got %v", tt.enc, err)
		}

		if got := buf.String(); got != tt.want {
			t.Errorf("%+v: expected %q, got %q", tt.enc, tt.want, got)
		}
	}
}
