package grammar

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/opline/parsing"
)

// tokens records "NAME=text" for every state left, where text is the
// content emitted while the state or its descendants were active.
type tokens struct {
	keep  map[parsing.StateID]bool
	stack []*strings.Builder
	got   []string
}

func (t *tokens) EnteredState(*parsing.Context) error {
	t.stack = append(t.stack, &strings.Builder{})

	return nil
}

func (t *tokens) LeavingState(c *parsing.Context) error {
	n := len(t.stack) - 1
	text := t.stack[n].String()
	t.stack = t.stack[:n]

	if n > 0 {
		t.stack[n-1].WriteString(text)
	}

	if t.keep[c.State().ID()] {
		t.got = append(t.got, c.State().Name()+"="+text)
	}

	return nil
}

func (t *tokens) Character(c *parsing.Context) error {
	if n := len(t.stack); n > 0 {
		t.stack[n-1].WriteRune(c.Character())
	}

	return nil
}

func scan(initial parsing.StateID, input string, keep ...parsing.StateID) ([]string, error) {
	t := &tokens{keep: map[parsing.StateID]bool{}}
	for _, id := range keep {
		t.keep[id] = true
	}

	err := Default().Parse(context.Background(), input, initial, t)

	return t.got, err
}

func TestOperationTokens(t *testing.T) {
	keep := []parsing.StateID{
		NodeType, NodeName, OperationName, PropertyName, PropertyValue,
		HeaderName, HeaderValue, HeaderArguments, OutputTarget,
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "address and operation",
			input: "/subsystem=datasources:read-resource",
			want: []string{
				"NODE_TYPE=subsystem", "NODE_NAME=datasources",
				"OPERATION_NAME=read-resource",
			},
		},
		{
			name:  "escaped name",
			input: `/data-source=java\:\/H2DS:op`,
			want: []string{
				"NODE_TYPE=data-source", "NODE_NAME=java:/H2DS", "OPERATION_NAME=op",
			},
		},
		{
			name:  "properties",
			input: `:op(a=1, b="x,y", c=[1,2], d)`,
			want: []string{
				"OPERATION_NAME=op",
				"PROPERTY_NAME=a", "PROPERTY_VALUE=1",
				"PROPERTY_NAME=b", `PROPERTY_VALUE="x,y"`,
				"PROPERTY_NAME=c", "PROPERTY_VALUE=[1,2]",
				"PROPERTY_NAME=d",
			},
		},
		{
			name:  "headers",
			input: ":op{allow-resource-service-restart=true; blocking-timeout 30}",
			want: []string{
				"OPERATION_NAME=op",
				"HEADER_NAME=allow-resource-service-restart", "HEADER_VALUE=true",
				"HEADER_NAME=blocking-timeout", "HEADER_ARGUMENTS=30",
			},
		},
		{
			name:  "output target",
			input: `:op > C:\out.txt`,
			want:  []string{"OPERATION_NAME=op", `OUTPUT_TARGET=C:\out.txt`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scan(OperationRequest, tt.input, keep...)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRolloutTokens(t *testing.T) {
	got, err := scan(OperationRequest,
		":op{rollout groupA(rolling-to-servers=true) ^ groupB, groupC; blocking-timeout=5}",
		RolloutItemName, RolloutPropertyName, RolloutPropertyValue,
		RolloutSeries, RolloutConcurrent, HeaderName,
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{
		"ROLLOUT_ITEM_NAME=groupA",
		"ROLLOUT_PROPERTY_NAME=rolling-to-servers", "ROLLOUT_PROPERTY_VALUE=true",
		"ROLLOUT_CONCURRENT=",
		"ROLLOUT_ITEM_NAME=groupB",
		"ROLLOUT_SERIES=",
		"ROLLOUT_ITEM_NAME=groupC",
		"HEADER_NAME=blocking-timeout",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandTokens(t *testing.T) {
	keep := []parsing.StateID{CommandName, ArgumentName, ArgumentValue, OperationName, OutputTarget}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "command",
			input: `deploy --name=app.war "my file" --force`,
			want: []string{
				"COMMAND_NAME=deploy",
				"ARGUMENT_NAME=--name", "ARGUMENT_VALUE=app.war",
				`ARGUMENT_VALUE="my file"`,
				"ARGUMENT_NAME=--force",
			},
		},
		{
			name:  "bracketed value keeps spaces",
			input: "cmd --list=[a, b] --obj={x=1 }",
			want: []string{
				"COMMAND_NAME=cmd",
				"ARGUMENT_NAME=--list", "ARGUMENT_VALUE=[a, b]",
				"ARGUMENT_NAME=--obj", "ARGUMENT_VALUE={x=1 }",
			},
		},
		{
			name:  "redirect",
			input: "ls -l >out",
			want:  []string{"COMMAND_NAME=ls", "ARGUMENT_NAME=-l", "OUTPUT_TARGET=out"},
		},
		{
			name:  "operation",
			input: ":whoami",
			want:  []string{"OPERATION_NAME=whoami"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scan(CommandLine, tt.input, keep...)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueTokens(t *testing.T) {
	got, err := scan(Value, `a=>b, c=[1, "2"], {x=y}`, Item, ItemValue, List, Object)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{
		"ITEM_VALUE=b", "ITEM=ab",
		"ITEM=1", "ITEM=2", "LIST=[1,2]", "ITEM_VALUE=[1,2]", "ITEM=c[1,2]",
		"ITEM_VALUE=y", "ITEM=xy", "OBJECT={xy}", "ITEM={xy}",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		initial parsing.StateID
		input   string
		want    error
	}{
		{name: "open property list", initial: OperationRequest, input: ":op(a=1", want: parsing.ErrUnterminated},
		{name: "open header list", initial: OperationRequest, input: ":op{a=1", want: parsing.ErrUnterminated},
		{name: "leading dash operation", initial: OperationRequest, input: ":-op", want: parsing.ErrInvalidIdentifier},
		{name: "leading dash property", initial: OperationRequest, input: ":op(-a=1)", want: parsing.ErrInvalidIdentifier},
		{name: "open argument bracket", initial: CommandLine, input: "cmd --a=[1,2", want: parsing.ErrUnterminated},
		{name: "unbalanced value", initial: Value, input: "a]", want: parsing.ErrUnexpected},
		{name: "open value list", initial: Value, input: "[a", want: parsing.ErrUnterminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scan(tt.initial, tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("expected one grammar instance")
	}

	for _, name := range []string{"COMMAND_LINE", "OPERATION_REQUEST", "ADDRESS_LINE", "VALUE", "QUOTES"} {
		if _, ok := Default().Lookup(name); !ok {
			t.Errorf("expected state %s", name)
		}
	}
}
