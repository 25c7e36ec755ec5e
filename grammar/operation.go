package grammar

import (
	"fmt"

	"github.com/ardnew/opline/parsing"
)

// identifier emits content and rejects a leading '-'.
func identifier(what string) parsing.Handler {
	return parsing.Func(func(c *parsing.Context) error {
		if c.Character() == '-' && c.Emitted() == 0 {
			return parsing.ErrInvalidIdentifier.Detail(
				fmt.Sprintf("%s must not start with '-'", what),
			)
		}

		return parsing.Text.Handle(c)
	})
}

// skipLeading ignores whitespace before the state's first content
// character and passes it afterwards.
var skipLeading = parsing.Func(func(c *parsing.Context) error {
	if c.Emitted() == 0 {
		return nil
	}

	return parsing.Pass.Handle(c)
})

// keepInner ignores whitespace before the state's first content character
// and emits it afterwards.
var keepInner = parsing.Func(func(c *parsing.Context) error {
	if c.Emitted() == 0 {
		return nil
	}

	return parsing.Content.Handle(c)
})

// rawValue is shared by property and header values: text with escapes
// kept and quoted or bracketed sections read verbatim.
func rawValue(terminators ...rune) []parsing.StateOption {
	return []parsing.StateOption{
		parsing.Default(parsing.RawText),
		parsing.EnterOn(parsing.StateQuotesIncluded, '"'),
		parsing.EnterOn(parsing.StateParens, '('),
		parsing.EnterOn(parsing.StateBrackets, '['),
		parsing.EnterOn(parsing.StateBraces, '{'),
		parsing.PassOn(terminators...),
	}
}

func defineOperation() {
	request := []parsing.StateOption{
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(OperationName, ':'),
		parsing.EnterOn(PropertyList, '('),
		parsing.EnterOn(HeaderList, '{'),
		parsing.EnterOn(OutputTarget, '>'),
		parsing.Default(parsing.Enter(Address)),
	}

	g.Define(OperationRequest, append(request, parsing.Expression())...)
	g.Define(OperationLine, append(request, parsing.HandleEntrance())...)

	g.Define(AddressLine,
		parsing.Expression(),
		parsing.IgnoreWhitespace(),
		parsing.On(parsing.Fail(parsing.ErrUnexpected.Detail("an address has no operation or output target")), ':', '>'),
		parsing.Default(parsing.Enter(Address)),
	)

	g.Define(Address,
		parsing.HandleEntrance(),
		parsing.EnterOn(NodeSeparator, '/'),
		parsing.EnterOn(NodeName, '='),
		parsing.PassOn(':', '>'),
		parsing.LeaveOnWhitespace(),
		parsing.Default(parsing.Enter(NodeType)),
	)

	g.Define(NodeSeparator, parsing.Marker())

	g.Define(NodeType,
		parsing.HandleEntrance(),
		parsing.Default(identifier("node type")),
		parsing.EnterOn(parsing.StateQuotes, '"'),
		parsing.PassOn('=', '/', ':', '>'),
		parsing.PassOnWhitespace(),
	)

	g.Define(NodeName,
		parsing.Default(parsing.Text),
		parsing.EnterOn(parsing.StateQuotes, '"'),
		parsing.PassOn('/', ':', '>'),
		parsing.PassOnWhitespace(),
	)

	g.Define(OperationName,
		parsing.Default(identifier("operation name")),
		parsing.PassOn('(', '{', '>'),
		parsing.PassOnWhitespace(),
	)

	g.Define(PropertyList,
		parsing.EndCharacter(')', true),
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(PropertySeparator, ','),
		parsing.Default(parsing.Enter(Property)),
	)

	g.Define(PropertySeparator, parsing.Marker())

	g.Define(Property,
		parsing.HandleEntrance(),
		parsing.IgnoreWhitespace(),
		parsing.EnterOn(PropertyValue, '='),
		parsing.PassOn(',', ')'),
		parsing.Default(parsing.Enter(PropertyName)),
	)

	g.Define(PropertyName,
		parsing.HandleEntrance(),
		parsing.Default(identifier("property name")),
		parsing.PassOn('=', ',', ')'),
		parsing.PassOnWhitespace(),
	)

	g.Define(PropertyValue, rawValue(',', ')')...)

	g.Define(OutputTarget,
		parsing.OnEnter(parsing.Func(func(c *parsing.Context) error {
			c.DeactivateControl('\\')

			return nil
		})),
		parsing.OnLeave(parsing.Func(func(c *parsing.Context) error {
			c.ActivateControl('\\')

			return nil
		})),
		parsing.OnWhitespace(keepInner),
		parsing.Default(parsing.Text),
	)
}
