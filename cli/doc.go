// Package cli contains the command line interface for opline.
//
// # Usage
//
// Each command reads operation request lines from its arguments, from the
// files given with --source, or from standard input:
//
//	opline parse '/subsystem=logging:read-resource(recursive=true)'
//	opline model -o dmr -s requests.cli
//	opline query -F 'operation == "add"' < requests.cli
//	opline trace -g value '{a=1, b=[x, y]}'
//	opline inspect
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (see [resolve]). A key naming a command holds that command's
// flags:
//
//	log-level: debug
//	prefix: /subsystem=logging
//	model:
//	  format: dmr
//
// # Substitution
//
//   - --var/-V NAME=VALUE and --vars-file define $NAME variables
//   - --property/-D NAME=VALUE defines ${NAME} properties; environment
//     variables are available as ${env.NAME}
//   - --strict fails on unresolved references
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn or error, with an optional
//     offset such as debug-2
//   - --log-format: text or json
//   - --log-time-layout: a Go layout or a name such as RFC3339 or Kitchen
//   - --log-caller: include caller information
//   - --log-pretty: colorize text logs
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o opline .
//
// Then --pprof-mode selects a profile and --pprof-dir its output directory
// (default ~/.cache/opline/pprof).
package cli
