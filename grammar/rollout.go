package grammar

import (
	"github.com/ardnew/opline/parsing"
)

func defineRollout() {
	g.Define(RolloutPlan,
		parsing.OnEnter(parsing.Func(func(c *parsing.Context) error {
			return c.AdvanceLocation(len(rollout) - 1)
		})),
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(RolloutSeries, ','),
		parsing.EnterOn(RolloutConcurrent, '^'),
		parsing.EnterOn(RolloutItemValue, '='),
		parsing.PassOn(';', '}'),
		parsing.Default(parsing.Enter(RolloutItem)),
	)

	g.Define(RolloutSeries, parsing.Marker())
	g.Define(RolloutConcurrent, parsing.Marker())

	g.Define(RolloutItem,
		parsing.HandleEntrance(),
		parsing.EnterOn(RolloutGroupProps, '('),
		parsing.EnterOn(RolloutItemValue, '='),
		parsing.PassOn(',', '^', ';', '}'),
		parsing.PassOnWhitespace(),
		parsing.Default(parsing.Enter(RolloutItemName)),
	)

	g.Define(RolloutItemName,
		parsing.HandleEntrance(),
		parsing.Default(parsing.Text),
		parsing.EnterOn(parsing.StateQuotes, '"'),
		parsing.PassOn('(', '=', ',', '^', ';', '}'),
		parsing.PassOnWhitespace(),
	)

	g.Define(RolloutItemValue,
		parsing.Default(parsing.Text),
		parsing.EnterOn(parsing.StateQuotes, '"'),
		parsing.OnWhitespace(skipLeading),
		parsing.PassOn(',', '^', ';', '}'),
	)

	g.Define(RolloutGroupProps,
		parsing.EndCharacter(')', true),
		parsing.IgnoreWhitespace(),
		parsing.On(parsing.Noop, ','),
		parsing.Default(parsing.Enter(RolloutProperty)),
	)

	g.Define(RolloutProperty,
		parsing.HandleEntrance(),
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(RolloutPropertyValue, '='),
		parsing.PassOn(',', ')'),
		parsing.Default(parsing.Enter(RolloutPropertyName)),
	)

	g.Define(RolloutPropertyName,
		parsing.HandleEntrance(),
		parsing.Default(parsing.Text),
		parsing.PassOn('=', ',', ')'),
		parsing.PassOnWhitespace(),
	)

	g.Define(RolloutPropertyValue,
		parsing.Default(parsing.Text),
		parsing.EnterOn(parsing.StateQuotes, '"'),
		parsing.OnWhitespace(skipLeading),
		parsing.PassOn(',', ')'),
	)
}
