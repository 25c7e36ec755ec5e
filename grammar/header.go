package grammar

import (
	"unicode"

	"github.com/ardnew/opline/parsing"
)

const rollout = "rollout"

// atRollout reports whether the input at the current location is the
// rollout keyword followed by a word boundary.
func atRollout(c *parsing.Context) bool {
	if !c.Begins(rollout) {
		return false
	}

	next, ok := c.Peek(len(rollout))

	return !ok || unicode.IsSpace(next) || next == ';' || next == '}'
}

func defineHeaders() {
	g.Define(HeaderList,
		parsing.EndCharacter('}', true),
		parsing.On(parsing.Noop, ' ', '\t', '\r'),
		parsing.EnterOn(HeaderSeparator, ';', '\n'),
		parsing.Default(parsing.Func(func(c *parsing.Context) error {
			if atRollout(c) {
				return c.EnterState(RolloutPlan)
			}

			return c.EnterState(Header)
		})),
	)

	g.Define(HeaderSeparator, parsing.Marker())

	g.Define(Header,
		parsing.HandleEntrance(),
		parsing.On(parsing.Noop, ' ', '\t', '\r'),
		parsing.PassOn(';', '}', '\n'),
		parsing.EnterOn(HeaderValue, '='),
		parsing.Default(parsing.Func(func(c *parsing.Context) error {
			if c.Location() == c.EnteredAt() {
				return c.EnterState(HeaderName)
			}

			return c.EnterState(HeaderArguments)
		})),
	)

	g.Define(HeaderName,
		parsing.HandleEntrance(),
		parsing.Default(parsing.Text),
		parsing.PassOn('=', ';', '}'),
		parsing.PassOnWhitespace(),
	)

	g.Define(HeaderValue, rawValue(';', '}', '\n')...)

	g.Define(HeaderArguments,
		append(rawValue(';', '}', '\n'), parsing.HandleEntrance())...,
	)
}
