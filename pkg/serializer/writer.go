// Package serializer writes values to a file or stdout in a selectable
// output format.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// StdoutURI is the special path indicating output should be written to stdout.
const StdoutURI = "-"

// Format selects the serialization format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// IsUnknown reports whether f names an unsupported format. The empty
// format is known and selects YAML.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable, "":
		return false
	}
	return true
}

// Writer serializes values to an output destination.
type Writer struct {
	format Format
	out    io.Writer
	path   string
}

// NewWriter returns a Writer targeting the given stream.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// NewFileWriterOrStdout returns a Writer targeting the given file path, or
// stdout when the path is empty or StdoutURI.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	if path == "" || path == StdoutURI {
		return NewWriter(format, os.Stdout)
	}
	return &Writer{format: format, path: path}
}

// Serialize writes data in the Writer's format.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := w.out
	if out == nil {
		f, err := os.Create(w.path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch w.format {
	case FormatJSON:
		j, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(j))
		return err
	case FormatTable:
		return writeTable(out, data)
	case FormatYAML, "":
		y, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = out.Write(y)
		return err
	default:
		return fmt.Errorf("unknown output format: %q", w.format)
	}
}

// writeTable renders a struct or string-keyed map as two aligned columns.
func writeTable(out io.Writer, data any) error {
	rows, err := tableRows(data)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func tableRows(data any) ([][2]string, error) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("cannot render nil value as table")
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		rows := make([][2]string, 0, t.NumField())
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, _, _ := strings.Cut(f.Tag.Get("yaml"), ","); tag != "" {
				name = tag
			}
			rows = append(rows, [2]string{name, fmt.Sprintf("%v", v.Field(i).Interface())})
		}
		return rows, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("table format requires string map keys, got %s", v.Type().Key())
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		rows := make([][2]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, [2]string{k, fmt.Sprintf("%v", v.MapIndex(reflect.ValueOf(k)).Interface())})
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("table format does not support %s values", v.Kind())
	}
}
