// Package grammar defines the states of the management command-line
// syntax on top of package parsing.
//
// All states live in one sealed [parsing.Grammar] returned by [Default].
// Parsing starts in one of the initial states:
//
//   - [CommandLine]: a command with arguments, or an operation request
//     when the line starts with '/', '.' or ':'
//   - [OperationRequest]: address, ':' operation name, '(' parameters ')',
//     '{' headers '}' and '>' output target
//   - [AddressLine]: a node address alone
//   - [ArgumentList]: command arguments alone
//   - [Value]: a parameter value with nested [...] lists and {...} objects
//   - [Text]: a single word with quotes and escapes removed
//
// The states only recognize structure. Assembling a request from the
// events they produce is the job of a [parsing.Callback] such as
// request.Handler.
package grammar
