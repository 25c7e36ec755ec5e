package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func flag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	r, err := resolve(strings.NewReader(`
log_level: debug
strict: true
indent: 4
var: [a=1, b=2]
property:
  node: logging
  port: 9990
model:
  format: dmr
  indent: 2
`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	global := &kong.Path{App: &kong.Application{}}
	model := &kong.Path{Command: &kong.Command{Name: "model"}}
	parse := &kong.Path{Command: &kong.Command{Name: "parse"}}

	tests := []struct {
		name   string
		parent *kong.Path
		flag   string
		want   any
	}{
		{name: "underscore key", parent: global, flag: "log-level", want: "debug"},
		{name: "bool", parent: global, flag: "strict", want: true},
		{name: "list", parent: global, flag: "var", want: []any{"a=1", "b=2"}},
		{name: "map", parent: global, flag: "property", want: map[string]any{"node": "logging", "port": "9990"}},
		{name: "section", parent: model, flag: "format", want: "dmr"},
		{name: "section number", parent: model, flag: "indent", want: "2"},
		{name: "section falls back", parent: parse, flag: "indent", want: "4"},
		{name: "missing", parent: global, flag: "prefix", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(nil, tt.parent, flag(tt.flag))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	for _, text := range []string{"", "---\n", "# nothing\n"} {
		r, err := resolve(strings.NewReader(text))
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", text, err)
		}

		if v, _ := r.Resolve(nil, nil, flag("strict")); v != nil {
			t.Errorf("%q: expected no value, got %v", text, v)
		}
	}
}

func TestResolveInvalid(t *testing.T) {
	if _, err := resolve(strings.NewReader("a: [1, 2\n")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
