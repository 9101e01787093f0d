package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatText writes the state as an indented listing: variables in name
// order with their typed values, then functions with their parameters, then
// the program's return value if it returned one.
func (st *State) FormatText(w io.Writer) error {
	var b strings.Builder

	b.WriteString("variables:\n")

	for name, v := range st.Env.All() {
		fmt.Fprintf(&b, "  %s = %#v\n", name, v)
	}

	b.WriteString("functions:\n")

	for name, decl := range st.Functions.All() {
		switch d := decl.(type) {
		case *Function:
			fmt.Fprintf(&b, "  %s(%s)\n", name, strings.Join(d.Params, ", "))
		default:
			fmt.Fprintf(&b, "  %s (native)\n", name)
		}
	}

	if st.Result.Returned {
		fmt.Fprintf(&b, "returned: %#v\n", st.Result.Value)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// FormatJSON writes the state as JSON. A positive indent pretty-prints.
func (st *State) FormatJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(st.Snapshot(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(st.Snapshot())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the state as YAML. A non-positive indent selects flow
// style.
func (st *State) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, st.Snapshot(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
