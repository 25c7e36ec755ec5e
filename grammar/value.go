package grammar

import (
	"github.com/ardnew/opline/parsing"
)

func unbalanced(ch rune) parsing.Handler {
	return parsing.Fail(parsing.ErrUnexpected.Detail("unbalanced '" + string(ch) + "'"))
}

// arrow drops the '>' of a "=>" separator.
var arrow = parsing.Func(func(c *parsing.Context) error {
	if c.Character() == '>' && c.Location() == c.EnteredAt()+1 {
		return nil
	}

	return parsing.Text.Handle(c)
})

func defineValue() {
	item := func(text parsing.Handler) []parsing.StateOption {
		return []parsing.StateOption{
			parsing.Default(text),
			parsing.EnterOn(parsing.StateQuotes, '"'),
			parsing.EnterOn(parsing.StateSingleQuotes, '\''),
			parsing.EnterOn(List, '['),
			parsing.EnterOn(Object, '{'),
			parsing.PassOn(',', ']', '}'),
		}
	}

	g.Define(Value,
		parsing.IgnoreWhitespace(),
		parsing.On(parsing.Noop, ','),
		parsing.On(unbalanced(']'), ']'),
		parsing.On(unbalanced('}'), '}'),
		parsing.Default(parsing.Enter(Item)),
	)

	g.Define(Item,
		append(item(parsing.Text),
			parsing.HandleEntrance(),
			parsing.EnterOn(ItemValue, '='),
		)...,
	)

	g.Define(ItemValue, item(arrow)...)

	g.Define(List,
		parsing.EndCharacter(']', true),
		parsing.Delimited(),
		parsing.IgnoreWhitespace(),
		parsing.On(parsing.Content, ','),
		parsing.On(unbalanced('}'), '}'),
		parsing.Default(parsing.Enter(Item)),
	)

	g.Define(Object,
		parsing.EndCharacter('}', true),
		parsing.Delimited(),
		parsing.IgnoreWhitespace(),
		parsing.On(parsing.Content, ','),
		parsing.On(unbalanced(']'), ']'),
		parsing.Default(parsing.Enter(Item)),
	)

	g.Define(Text,
		parsing.Default(parsing.Text),
		parsing.EnterOn(parsing.StateQuotes, '"'),
		parsing.EnterOn(parsing.StateSingleQuotes, '\''),
	)
}
