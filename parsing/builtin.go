package parsing

import (
	"unicode"
)

// WordFlags selects the behavior of a [Word] handler.
type WordFlags uint8

const (
	// WordEscape enters [StateEscape] on a backslash.
	WordEscape WordFlags = 1 << iota
	// WordKeepEscape enters [StateEscapeKeep] on a backslash.
	WordKeepEscape
	// WordSubstitute resolves $name and ${name} at a dollar sign.
	WordSubstitute
)

// Common word handlers.
var (
	// Text drops escapes and substitutes references.
	Text = Word(WordEscape | WordSubstitute)
	// RawText keeps escapes and substitutes references.
	RawText = Word(WordKeepEscape | WordSubstitute)
)

// Word returns the content handler used by most grammar states. It emits
// the current character, except that a backslash followed by a line break
// is dropped along with the line break, and escapes and substitutions are
// handled as selected by flags unless the control character is
// deactivated.
func Word(flags WordFlags) Handler {
	escape := flags&(WordEscape|WordKeepEscape) != 0

	return Func(func(c *Context) error {
		switch c.ch {
		case '\\':
			if !escape || c.IsDeactivated('\\') {
				break
			}

			if n := c.lineBreakAfter(); n > 0 {
				return c.AdvanceLocation(n)
			}

			if flags&WordKeepEscape != 0 {
				return c.EnterState(StateEscapeKeep)
			}

			return c.EnterState(StateEscape)

		case '$':
			if flags&WordSubstitute == 0 || c.IsDeactivated('$') {
				break
			}

			ok, err := c.ResolveExpression(c.strict)
			if err != nil || ok {
				return err
			}
		}

		return c.emit()
	})
}

func (g *Grammar) builtin() {
	escapeEnd := OnEndOfContent(Func(func(c *Context) error {
		c.SetError(ErrDanglingEscape.Detail("nothing follows the escape character"))

		return nil
	}))

	escapeNext := Default(Func(func(c *Context) error {
		if err := c.emit(); err != nil {
			return err
		}

		_, err := c.LeaveState()

		return err
	}))

	g.Define(g.Declare("ESCAPED_CHARACTER"), escapeNext, escapeEnd, NoValueIndex())
	g.Define(g.Declare("ESCAPED_CHARACTER_KEEP"),
		OnEnter(Content), escapeNext, escapeEnd, NoValueIndex(),
	)

	quotes := func(q rune, escapes, included bool) []StateOption {
		opts := []StateOption{EndCharacter(q, true), Default(Content), LockValueIndex()}

		if escapes {
			if included {
				opts = append(opts, Default(RawText))
			} else {
				opts = append(opts, Default(Text))
			}
		}

		if included {
			opts = append(opts, Delimited())
		}

		return opts
	}

	g.Define(g.Declare("QUOTES"), quotes('"', true, false)...)
	g.Define(g.Declare("QUOTES_INCLUDED"), quotes('"', true, true)...)
	g.Define(g.Declare("SINGLE_QUOTES"), quotes('\'', false, false)...)
	g.Define(g.Declare("SINGLE_QUOTES_INCLUDED"), quotes('\'', false, true)...)
	g.Define(g.Declare("BACK_QUOTES"), quotes('`', false, false)...)
	g.Define(g.Declare("BACK_QUOTES_INCLUDED"), quotes('`', false, true)...)

	nested := func(end rune) []StateOption {
		return []StateOption{
			EndCharacter(end, true),
			Delimited(),
			Default(RawText),
			EnterOn(StateQuotesIncluded, '"'),
			EnterOn(StateParens, '('),
			EnterOn(StateBrackets, '['),
			EnterOn(StateBraces, '{'),
		}
	}

	g.Define(g.Declare("PARENS"), nested(')')...)
	g.Define(g.Declare("BRACKETS"), nested(']')...)
	g.Define(g.Declare("BRACES"), nested('}')...)
}

// IsIdentifier reports whether r may appear in a $variable name.
func IsIdentifier(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
