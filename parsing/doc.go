// Package parsing implements a character-driven, stack-based state machine
// for line-oriented command syntaxes.
//
// A [Grammar] is an arena of [State] values addressed by [StateID]. Each
// state maps characters to a [Handler]: emit the character as content,
// enter another state, leave the current state, pass the character to the
// parent state, fail, or run a function. [Grammar.Parse] walks the input
// one character at a time, dispatching each to the current state, and
// reports state transitions and content to a [Callback], which assembles
// whatever result the caller needs.
//
// The engine also provides:
//
//   - escapes with '\' and line continuation with a trailing '\'
//   - quoted strings and balanced (), [] and {} groups
//   - substitution of $name variables and ${name} properties, rewriting
//     the input in place
//   - per-parse deactivation of the control characters '\' and '$'
//
// Failures are reported as [*Error] values carrying the input line and
// the offset at which parsing stopped.
package parsing
