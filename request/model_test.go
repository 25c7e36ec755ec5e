package request

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToModel(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "address and parameters",
			line: "/subsystem=logging:read-resource(recursive=true,attrs=[a,b])",
			want: `{"operation":"read-resource","address":[{"subsystem":"logging"}],` +
				`"recursive":"true","attrs":["a","b"]}`,
		},
		{
			name: "flag and object",
			line: `:add(enabled, props={x=1,y="a b"})`,
			want: `{"operation":"add","address":[],"enabled":"true","props":{"x":"1","y":"a b"}}`,
		},
		{
			name: "headers",
			line: ":deploy{rollout main-server-group;rollback-on-runtime-failure=false}",
			want: `{"operation":"deploy","address":[],"operation-headers":{` +
				`"rollout-plan":{"in-series":[{"server-group":{"main-server-group":null}}]},` +
				`"rollback-on-runtime-failure":"false"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := operation(t, tt.line)

			m, err := h.ToModel(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			b, err := m.MarshalJSON()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if string(b) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, b)
			}
		})
	}
}

func TestToModelErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{name: "no operation", line: "subsystem=logging", want: ErrMissingOperation},
		{name: "empty operation", line: "subsystem=logging:", want: ErrMissingOperation},
		{name: "no node name", line: "subsystem:op", want: ErrMissingNodeName},
		{name: "no property name", line: ":op(=1)", want: ErrMissingPropName},
		{name: "unknown header", line: ":op{blocking-timout=5}", want: ErrUnknownHeader},
		{name: "bad value", line: ":op(a=[1})", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()

			err := h.ParseOperation(context.Background(), tt.line)
			if tt.want == nil {
				if err == nil {
					t.Fatal("expected a parse error")
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no parse error, got %v", err)
			}

			if _, err := h.ToModel(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUnknownHeaderSuggestion(t *testing.T) {
	h := operation(t, ":op{blocking-timout=5}")

	_, err := h.ToModel(context.Background())
	if err == nil || !strings.Contains(err.Error(), "did you mean blocking-timeout") {
		t.Errorf("expected a suggestion, got %v", err)
	}
}

func TestCommandHasNoModel(t *testing.T) {
	h := New()
	if err := h.ParseLine(context.Background(), "ls -l"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := h.ToModel(context.Background()); !errors.Is(err, ErrMissingOperation) {
		t.Errorf("expected %v, got %v", ErrMissingOperation, err)
	}
}

func TestSummary(t *testing.T) {
	line := "/subsystem=web:op(a=1,b){blocking-timeout=5} > out"
	h := operation(t, line)

	want := Summary{
		Line:      line,
		Address:   "/subsystem=web",
		Nodes:     []Node{{Type: "subsystem", Name: "web"}},
		Operation: "op",
		Properties: []Property{
			{Name: "a", Value: "1", HasValue: true},
			{Name: "b"},
		},
		Params:   map[string]string{"a": "1", "b": "true"},
		Headers:  map[string]string{"blocking-timeout": "5"},
		Output:   "out",
		EndsOn:   SepNone,
		Complete: true,
	}

	if diff := cmp.Diff(want, h.Summary(line)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}
