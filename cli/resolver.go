package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Top-level keys name flags, with hyphens or underscores. A key naming a
// command holds a map of that command's flags, which take precedence over
// top-level keys:
//
//	log-level: debug
//	strict: true
//	property:
//	  node: logging
//	model:
//	  format: dmr
//
// Command-line flags override configuration values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	err := yaml.NewDecoder(r).Decode(&m)
	if errors.Is(err, io.EOF) || (err == nil && m == nil) {
		return config{}, nil
	}

	if err != nil {
		return nil, err
	}

	return config(normalize(m).(map[string]any)), nil
}

// config implements [kong.Resolver] for a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := c.lookup(parent.Command.Name).(map[string]any); ok {
			if v := config(section).lookup(flag.Name); v != nil {
				return v, nil
			}
		}
	}

	return c.lookup(flag.Name), nil
}

// lookup returns the value of name, trying the underscore form when the
// hyphenated one is missing.
func (c config) lookup(name string) any {
	if v, ok := c[name]; ok {
		return v
	}

	return c[strings.ReplaceAll(name, "-", "_")]
}

// normalize converts decoded YAML into the values kong parses: numbers
// become strings and nested maps use string keys.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[toString(k)] = normalize(e)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}

		return out
	case nil, bool, string:
		return t
	}

	return toString(v)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}

	return ""
}
