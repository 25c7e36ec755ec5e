package request

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseRolloutPlan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *RolloutPlan
		json string
	}{
		{
			name: "single group",
			text: "rollout groupA",
			want: &RolloutPlan{Steps: []Step{{Groups: []Group{{Name: "groupA"}}}}},
			json: `{"in-series":[{"server-group":{"groupA":null}}]}`,
		},
		{
			name: "group settings",
			text: "rollout groupA(rolling-to-servers=true,max-failure-percentage=20)",
			want: &RolloutPlan{Steps: []Step{{Groups: []Group{{
				Name: "groupA",
				Settings: []Setting{
					{Name: "rolling-to-servers", Value: "true"},
					{Name: "max-failure-percentage", Value: "20"},
				},
			}}}}},
			json: `{"in-series":[{"server-group":{"groupA":` +
				`{"rolling-to-servers":"true","max-failure-percentage":"20"}}}]}`,
		},
		{
			name: "concurrent and series",
			text: "{ rollout groupA(rolling-to-servers) ^ groupB, groupC rollback-across-groups }",
			want: &RolloutPlan{
				Steps: []Step{
					{Groups: []Group{
						{Name: "groupA", Settings: []Setting{{Name: "rolling-to-servers", Value: "true"}}},
						{Name: "groupB"},
					}},
					{Groups: []Group{{Name: "groupC"}}},
				},
				Settings: []Setting{{Name: "rollback-across-groups", Value: "true"}},
			},
			json: `{"in-series":[` +
				`{"concurrent-groups":{"groupA":{"rolling-to-servers":"true"},"groupB":null}},` +
				`{"server-group":{"groupC":null}}],"rollback-across-groups":"true"}`,
		},
		{
			name: "plan settings",
			text: "rollout groupA prop1=value1 prop2 = value2",
			want: &RolloutPlan{
				Steps: []Step{{Groups: []Group{{Name: "groupA"}}}},
				Settings: []Setting{
					{Name: "prop1", Value: "value1"},
					{Name: "prop2", Value: "value2"},
				},
			},
			json: `{"in-series":[{"server-group":{"groupA":null}}],"prop1":"value1","prop2":"value2"}`,
		},
		{
			name: "reference",
			text: "rollout id=myplan",
			want: &RolloutPlan{Ref: "myplan"},
			json: `"myplan"`,
		},
		{
			name: "spaced reference",
			text: "rollout id = myplan",
			want: &RolloutPlan{Ref: "myplan"},
			json: `"myplan"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			p, err := ParseRolloutPlan(ctx, tt.text)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if diff := cmp.Diff(tt.want, p, cmpopts.IgnoreUnexported(Group{}), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}

			n, err := p.Node(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			b, err := n.MarshalJSON()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if string(b) != tt.json {
				t.Errorf("expected %s, got %s", tt.json, b)
			}
		})
	}
}

func TestParseRolloutPlanErrors(t *testing.T) {
	tests := []string{
		"rollout groupA groupB(x=y)",
		"blocking-timeout=5",
	}

	for _, text := range tests {
		_, err := ParseRolloutPlan(context.Background(), text)
		if !errors.Is(err, ErrInvalidPlan) {
			t.Errorf("%q: expected %v, got %v", text, ErrInvalidPlan, err)
		}
	}

	p, err := ParseRolloutPlan(context.Background(), "rollout x=1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := p.Node(context.Background()); !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("expected %v for a plan without groups, got %v", ErrInvalidPlan, err)
	}
}

func TestRolloutPlanString(t *testing.T) {
	text := "rollout g1(a=1) ^ g2, g3 x=y"

	p, err := ParseRolloutPlan(context.Background(), text)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := p.String(); got != text {
		t.Errorf("expected %q, got %q", text, got)
	}
}
