package inspect

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/opline/request"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"type", "/subsys", 7, "subsys", 1, 7},
		{"name", "/subsystem=log", 14, "log", 11, 14},
		{"operation", "/a=b:read-res", 13, "read-res", 5, 13},
		{"parameter", ":op(a=1, rec", 12, "rec", 9, 12},
		{"header", ":op{roll", 8, "roll", 4, 8},
		{"empty after separator", "/a=b/", 5, "", 5, 5},
		{"mid word", "/subsystem=x", 3, "subsystem", 1, 10},
		{"dotted", "/a=b.c", 6, "b.c", 3, 6},
		{"out of range", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func learned(t *testing.T, lines ...string) *catalog {
	t.Helper()

	c := newCatalog()
	h := request.New()

	for _, line := range lines {
		c.learn(context.Background(), h, line)
	}

	return c
}

func matchStrings(c Completion) []string {
	if len(c.Matches) == 0 {
		return nil
	}

	out := make([]string, len(c.Matches))
	for i, m := range c.Matches {
		out[i] = m.Str
	}

	return out
}

func TestComplete(t *testing.T) {
	c := learned(t,
		"/subsystem=logging/logger=root:write-attribute(name=level, value=INFO)",
		"/subsystem=datasources/data-source=ExampleDS:read-resource(recursive=true)",
		"deploy app.war --force",
	)

	tests := []struct {
		name  string
		input string
		kind  Kind
		word  string
		want  []string
	}{
		{name: "node type", input: "/sub", kind: KindNodeType, word: "sub", want: []string{"subsystem"}},
		{
			name: "all node types", input: "/", kind: KindNodeType,
			want: []string{"data-source", "logger", "subsystem"},
		},
		{name: "node name", input: "/subsystem=lo", kind: KindNodeName, word: "lo", want: []string{"logging"}},
		{
			name: "parameter", input: ":write-attribute(", kind: KindProperty,
			want: []string{"name", "value"},
		},
		{
			name: "next parameter", input: ":write-attribute(name=x, v", kind: KindProperty,
			word: "v", want: []string{"value"},
		},
		{name: "header", input: ":read-resource{", kind: KindHeader, want: request.KnownHeaders},
		{name: "value", input: ":op(a=", kind: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.complete(context.Background(), request.New(), tt.input, len(tt.input))

			if got.Kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, got.Kind)
			}

			if got.Word != tt.word {
				t.Errorf("expected word %q, got %q", tt.word, got.Word)
			}

			if diff := cmp.Diff(tt.want, matchStrings(got)); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompleteOperations(t *testing.T) {
	c := learned(t, "/a=b:custom-op")

	got := c.complete(context.Background(), request.New(), "/a=b:", 5)
	if got.Kind != KindOperation {
		t.Fatalf("expected operation, got %q", got.Kind)
	}

	names := matchStrings(got)

	for _, op := range []string{"custom-op", "read-resource", "add"} {
		if !slices.Contains(names, op) {
			t.Errorf("expected %s among %v", op, names)
		}
	}

	got = c.complete(context.Background(), request.New(), "/a=b:custom", 11)
	if len(got.Matches) == 0 || got.Matches[0].Str != "custom-op" {
		t.Errorf("expected custom-op first, got %v", matchStrings(got))
	}
}

func TestRenderCandidateBar(t *testing.T) {
	c := learned(t)
	comp := c.complete(context.Background(), request.New(), ":", 1)

	full := renderCandidateBar(comp.Matches, -1, false, 1000)
	for _, op := range Operations {
		if !strings.Contains(full, op) {
			t.Errorf("expected %s in bar", op)
		}
	}

	narrow := renderCandidateBar(comp.Matches, -1, false, 20)
	if !strings.HasSuffix(narrow, "...") {
		t.Errorf("expected ellipsis, got %q", narrow)
	}

	if renderCandidateBar(nil, 0, false, 80) != "" {
		t.Error("expected empty bar without matches")
	}
}
