// Package resolve supplies the values of $name variables and ${name}
// properties referenced in parsed lines.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/opline/parsing"
)

// ErrInvalidVariable is returned for malformed variable definitions.
var ErrInvalidVariable = errors.New("invalid variable")

// Variables maps variable names to values. It implements
// [parsing.VariableResolver].
type Variables map[string]string

// ResolveVariable returns the value of the variable name.
func (v Variables) ResolveVariable(name string) (string, bool) {
	s, ok := v[name]

	return s, ok
}

// Set defines a variable from text of the form name=value.
func (v Variables) Set(def string) error {
	name, val, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)

	if !ok || !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidVariable, def)
	}

	v[name] = val

	return nil
}

// Load decodes a YAML mapping of variable names to scalar
// values into v.
func (v Variables) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var m yaml.MapSlice
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVariable, err)
	}

	for _, item := range m {
		name := fmt.Sprint(item.Key)
		if !validName(name) {
			return fmt.Errorf("%w: name %q", ErrInvalidVariable, name)
		}

		switch val := item.Value.(type) {
		case nil:
			v[name] = ""
		case string:
			v[name] = val
		case []any, map[string]any, map[any]any, yaml.MapSlice:
			return fmt.Errorf("%w: %s is not a scalar", ErrInvalidVariable, name)
		default:
			v[name] = fmt.Sprint(val)
		}
	}

	return nil
}

// ReadFile loads the variables file at path into v.
func (v Variables) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := v.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if !parsing.IsIdentifier(r) {
			return false
		}
	}

	return true
}
