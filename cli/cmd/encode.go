package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Encoding selects how results are written.
type Encoding struct {
	Format string `default:"yaml" enum:"yaml,json"       help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"    help:"Indent width; 0 writes one result per line." short:"i"`
}

// encode writes v to w in the selected format, followed by a newline.
func (e Encoding) encode(ctx context.Context, w io.Writer, v any) error {
	if e.Format == "json" {
		var (
			data []byte
			err  error
		)

		if e.Indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", e.Indent))
		} else {
			data, err = json.Marshal(v)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	}

	var opts []yaml.EncodeOption
	if e.Indent > 0 {
		opts = append(opts, yaml.Indent(e.Indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if e.Indent > 0 {
		// separate block documents
		_, err = fmt.Fprintf(w, "---\n%s", data)
	} else {
		_, err = fmt.Fprint(w, string(data))
	}

	return err
}
