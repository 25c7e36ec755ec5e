package request

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/opline/grammar"
	"github.com/ardnew/opline/value"
)

// Setting is a name/value pair of a rollout plan or server group.
type Setting struct {
	Name  string `json:"name" yaml:"name" expr:"name"`
	Value string `json:"value" yaml:"value" expr:"value"`
}

// Group is a server group of a rollout plan.
type Group struct {
	Name     string    `json:"name" yaml:"name" expr:"name"`
	Settings []Setting `json:"settings,omitempty" yaml:"settings,omitempty" expr:"settings"`

	bare bool
}

// Step is a set of groups rolled out concurrently. Steps run in series.
type Step struct {
	Groups []Group `json:"groups" yaml:"groups" expr:"groups"`
}

// RolloutPlan is the rollout header. It either names a stored plan or
// lists its steps and settings.
type RolloutPlan struct {
	Ref      string    `json:"ref,omitempty" yaml:"ref,omitempty" expr:"ref"`
	Steps    []Step    `json:"steps,omitempty" yaml:"steps,omitempty" expr:"steps"`
	Settings []Setting `json:"settings,omitempty" yaml:"settings,omitempty" expr:"settings"`
}

// ParseRolloutPlan reads a rollout header given alone, as in
// "rollout g1 ^ g2, g3" or "{rollout id=plan}".
func ParseRolloutPlan(ctx context.Context, text string, opts ...Option) (*RolloutPlan, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		text = "{" + text + "}"
	}

	h := New(opts...)
	if err := h.parse(ctx, text, grammar.OperationRequest); err != nil {
		return nil, err
	}

	for _, hdr := range h.headers {
		if p, ok := hdr.(*RolloutPlan); ok {
			return p, nil
		}
	}

	return nil, ErrInvalidPlan.Detail("no rollout header in " + text)
}

// Name implements [Header].
func (p *RolloutPlan) Name() string { return "rollout-plan" }

// Node implements [Header].
func (p *RolloutPlan) Node(context.Context) (*value.Node, error) {
	if p.Ref != "" {
		return value.NewString(p.Ref), nil
	}

	if len(p.Steps) == 0 {
		return nil, ErrInvalidPlan.Detail("no server groups")
	}

	series := value.NewList()

	for _, step := range p.Steps {
		groups := value.NewObject()

		for _, g := range step.Groups {
			if len(g.Settings) == 0 {
				groups.Set(g.Name, value.Undefined())

				continue
			}

			props := value.NewObject()
			for _, s := range g.Settings {
				props.Set(s.Name, value.NewString(s.Value))
			}

			groups.Set(g.Name, props)
		}

		key := "server-group"
		if len(step.Groups) > 1 {
			key = "concurrent-groups"
		}

		series.Append(value.NewObject().Set(key, groups))
	}

	plan := value.NewObject().Set("in-series", series)
	for _, s := range p.Settings {
		plan.Set(s.Name, value.NewString(s.Value))
	}

	return plan, nil
}

func (p *RolloutPlan) String() string {
	var sb strings.Builder

	sb.WriteString("rollout")

	if p.Ref != "" {
		sb.WriteString(" id=")
		sb.WriteString(p.Ref)

		return sb.String()
	}

	for i, step := range p.Steps {
		if i > 0 {
			sb.WriteByte(',')
		}

		for j, g := range step.Groups {
			if j > 0 {
				sb.WriteString(" ^")
			}

			sb.WriteByte(' ')
			sb.WriteString(g.Name)

			if len(g.Settings) > 0 {
				sb.WriteByte('(')

				for k, s := range g.Settings {
					if k > 0 {
						sb.WriteByte(',')
					}

					fmt.Fprintf(&sb, "%s=%s", s.Name, s.Value)
				}

				sb.WriteByte(')')
			}
		}
	}

	for _, s := range p.Settings {
		fmt.Fprintf(&sb, " %s=%s", s.Name, s.Value)
	}

	return sb.String()
}

// rolloutItem is a word of the plan: a group, a setting, or a plan
// reference, depending on what surrounds it.
type rolloutItem struct {
	name     string
	value    string
	valued   bool
	grouped  bool
	settings []Setting
}

// planBuilder classifies the items of a rollout header as they are read.
type planBuilder struct {
	plan        *RolloutPlan
	expectGroup bool
	concurrent  bool

	// state before the last item, restored if a later '=' turns a group
	// back into a setting
	last struct {
		group       bool
		ref         bool
		expectGroup bool
		concurrent  bool
	}
}

func newPlanBuilder() *planBuilder {
	return &planBuilder{plan: &RolloutPlan{}, expectGroup: true}
}

// series starts a new step with the next group.
func (b *planBuilder) series() {
	b.expectGroup, b.concurrent = true, false
}

// together adds the next group to the current step.
func (b *planBuilder) together() {
	b.expectGroup, b.concurrent = true, true
}

func (b *planBuilder) add(item rolloutItem) error {
	b.last.group, b.last.ref = false, false
	b.last.expectGroup, b.last.concurrent = b.expectGroup, b.concurrent

	switch {
	case item.valued:
		b.set(item.name, item.value)
	case item.grouped || b.expectGroup:
		if !b.expectGroup {
			return ErrInvalidPlan.Detail(
				fmt.Sprintf("group %s must follow ',' or '^'", item.name),
			)
		}

		g := Group{Name: item.name, Settings: item.settings, bare: !item.grouped}

		if n := len(b.plan.Steps); b.concurrent && n > 0 {
			b.plan.Steps[n-1].Groups = append(b.plan.Steps[n-1].Groups, g)
		} else {
			b.plan.Steps = append(b.plan.Steps, Step{Groups: []Group{g}})
		}

		b.expectGroup, b.last.group = false, true
	default:
		b.set(item.name, "true")
	}

	return nil
}

// assign applies a value written after whitespace, as in "id = plan", to
// the last item.
func (b *planBuilder) assign(v string) error {
	if b.last.group {
		step := &b.plan.Steps[len(b.plan.Steps)-1]
		g := step.Groups[len(step.Groups)-1]

		if !g.bare {
			return ErrInvalidPlan.Detail("group " + g.Name + " cannot be assigned a value")
		}

		step.Groups = step.Groups[:len(step.Groups)-1]
		if len(step.Groups) == 0 {
			b.plan.Steps = b.plan.Steps[:len(b.plan.Steps)-1]
		}

		b.expectGroup, b.concurrent = b.last.expectGroup, b.last.concurrent
		b.last.group = false
		b.set(g.Name, v)

		return nil
	}

	if b.last.ref {
		b.plan.Ref = v

		return nil
	}

	if n := len(b.plan.Settings); n > 0 {
		b.plan.Settings[n-1].Value = v

		return nil
	}

	return ErrInvalidPlan.Detail("value " + v + " assigned to nothing")
}

func (b *planBuilder) set(name, v string) {
	if name == "id" {
		b.plan.Ref, b.last.ref = v, true

		return
	}

	b.plan.Settings = append(b.plan.Settings, Setting{Name: name, Value: v})
}
