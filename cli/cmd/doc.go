// Package cmd implements the opline subcommands.
//
// Each command reads lines from its arguments, from the files named by the
// global --source flag, or from standard input, and parses them with a
// [request.Handler] configured by the global resolution flags:
//
//   - parse: print the assembled request of each line
//   - model: print the request model of each operation request
//   - query: evaluate an expression against each parsed line
//   - trace: print the state transitions of a parse
//   - inspect: parse input interactively as it is typed
//
// Parse failures are reported with a caret under the failing offset.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the path
	// to the inspector history file.
	HistoryIdentifier = "history"
)
