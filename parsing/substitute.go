package parsing

import (
	"log/slog"
	"slices"
)

// ResolveExpression substitutes the reference starting at the current
// character, which must be '$'. It reports whether the input was
// rewritten. After a rewrite the location is one before the replacement,
// so the main loop continues with its first character.
//
// A ${name} reference needs a closing '}' at least one character after
// the '{'. If it does not resolve, strict makes it an
// [ErrUnresolvedProperty] failure; otherwise it is left as literal text.
// A $name reference is letters, digits and underscores, and must resolve
// or the parse fails with [ErrUnresolvedVariable]. A '$' followed by
// anything else is literal.
func (c *Context) ResolveExpression(strict bool) (bool, error) {
	if c.IsEndOfContent() || c.ch != '$' || c.location < c.protect {
		return false, nil
	}

	start := c.location

	if next, ok := c.Peek(1); ok && next == '{' {
		end := slices.Index(c.input[min(start+3, len(c.input)):], '}')
		if end < 0 {
			return false, nil
		}

		end += start + 3

		name := string(c.input[start+2 : end])

		value, ok := "", false
		if c.props != nil {
			value, ok = c.props.ResolveProperty(name)
		}

		if !ok {
			if strict {
				return false, ErrUnresolvedProperty.Detail("${" + name + "}")
			}

			return false, nil
		}

		c.rewrite(start, end+1, value)

		return true, nil
	}

	end := start + 1
	for end < len(c.input) && IsIdentifier(c.input[end]) {
		end++
	}

	if end == start+1 {
		return false, nil
	}

	name := string(c.input[start+1 : end])

	value, ok := "", false
	if c.vars != nil {
		value, ok = c.vars.ResolveVariable(name)
	}

	if !ok {
		return false, ErrUnresolvedVariable.Detail("$" + name)
	}

	c.rewrite(start, end, value)

	return true, nil
}

func (c *Context) rewrite(start, end int, value string) {
	repl := []rune(value)

	buf := make([]rune, 0, len(c.input)-(end-start)+len(repl))
	buf = append(buf, c.input[:start]...)
	buf = append(buf, repl...)
	buf = append(buf, c.input[end:]...)

	c.logger.TraceContext(c.ctx, "substitute",
		slog.String("reference", string(c.input[start:end])),
		slog.String("value", value),
		slog.Int("location", start),
	)

	c.input = buf
	c.protect = start + len(repl)
	c.location = start - 1

	if c.location >= 0 {
		c.ch = c.input[c.location]
	}
}

// resolveOnEnter performs the substitution of a state marked with
// [Expression] and reports whether the input was rewritten. A state that
// handles its entrance continues at the first replaced character.
func (c *Context) resolveOnEnter(entrance bool) (bool, error) {
	if c.IsDeactivated('$') {
		return false, nil
	}

	ok, err := c.ResolveExpression(c.strict)
	if err != nil || !ok || !entrance {
		return ok, err
	}

	c.step()

	return true, nil
}
