package grammar

import (
	"github.com/ardnew/opline/parsing"
)

var closing = map[rune]rune{'[': ']', '{': '}', '(': ')'}

// nestOpen records a bracket that must be closed before the argument
// value ends.
var nestOpen = parsing.Func(func(c *parsing.Context) error {
	c.LookFor(closing[c.Character()])

	return parsing.Content.Handle(c)
})

// nestClose matches a bracket opened by nestOpen.
var nestClose = parsing.Func(func(c *parsing.Context) error {
	c.MeetIfLookedFor(c.Character())

	return parsing.Content.Handle(c)
})

// nestedContent emits the character while a bracket is open and passes
// it otherwise.
var nestedContent = parsing.Func(func(c *parsing.Context) error {
	if c.IsLookingFor() {
		return parsing.Content.Handle(c)
	}

	return parsing.Pass.Handle(c)
})

func defineCommand() {
	g.Define(CommandLine,
		parsing.Expression(),
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(OperationLine, '/', '.', ':'),
		parsing.EnterOn(OutputTarget, '>'),
		parsing.Default(parsing.Enter(CommandName)),
	)

	g.Define(CommandName,
		parsing.HandleEntrance(),
		parsing.Default(parsing.Text),
		parsing.PassOn('>'),
		parsing.OnWhitespace(parsing.Func(func(c *parsing.Context) error {
			if _, err := c.LeaveState(); err != nil {
				return err
			}

			return c.EnterState(ArgumentList)
		})),
	)

	g.Define(ArgumentList,
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(OutputTarget, '>'),
		parsing.Default(parsing.Enter(Argument)),
	)

	g.Define(Argument,
		parsing.HandleEntrance(),
		parsing.EnterOn(ArgumentValueSeparator, '='),
		parsing.PassOn('>'),
		parsing.PassOnWhitespace(),
		parsing.Default(parsing.Func(func(c *parsing.Context) error {
			if c.Location() == c.EnteredAt() && c.Character() == '-' {
				return c.EnterState(ArgumentName)
			}

			return c.EnterState(ArgumentValue)
		})),
	)

	g.Define(ArgumentName,
		parsing.HandleEntrance(),
		parsing.Default(parsing.Text),
		parsing.PassOn('=', '>'),
		parsing.PassOnWhitespace(),
	)

	g.Define(ArgumentValueSeparator, parsing.Marker())

	g.Define(ArgumentValue,
		parsing.HandleEntrance(),
		parsing.Default(parsing.RawText),
		parsing.EnterOn(parsing.StateQuotesIncluded, '"'),
		parsing.On(nestOpen, '[', '{', '('),
		parsing.On(nestClose, ']', '}', ')'),
		parsing.On(nestedContent, '>'),
		parsing.OnWhitespace(nestedContent),
		parsing.OnEndOfContent(parsing.Func(func(c *parsing.Context) error {
			if r, ok := c.LookingFor(); ok {
				return parsing.Missing(r).Handle(c)
			}

			return nil
		})),
	)
}
