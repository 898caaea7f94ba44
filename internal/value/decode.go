package value

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is an input encoding understood by NewDecoder.
type Format string

// Supported input formats.
const (
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatLines  Format = "lines"
)

// maxLineSize bounds a single NDJSON or text line.
const maxLineSize = 16 * 1024 * 1024

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown input format")

// DecodeError reports a malformed input item. The stream can continue past it.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decoder yields values one at a time and returns io.EOF at the end of input.
type Decoder interface {
	Decode() (Value, error)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatNDJSON, FormatYAML, FormatLines:
		return f, nil
	case "json", "jsonl":
		return FormatNDJSON, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use ndjson, yaml, or lines)", ErrUnknownFormat, s)
	}
}

// NewDecoder returns a decoder for the given format reading from r.
func NewDecoder(format Format, r io.Reader) (Decoder, error) {
	switch format {
	case FormatNDJSON:
		return &ndjsonDecoder{scanner: newScanner(r)}, nil
	case FormatYAML:
		return &yamlDecoder{dec: yaml.NewDecoder(r)}, nil
	case FormatLines:
		return &linesDecoder{scanner: newScanner(r)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

type ndjsonDecoder struct {
	scanner *bufio.Scanner
	line    int
}

func (d *ndjsonDecoder) Decode() (Value, error) {
	for d.scanner.Scan() {
		d.line++
		text := strings.TrimSpace(d.scanner.Text())
		if text == "" {
			continue
		}
		if !gjson.Valid(text) {
			return Value{}, &DecodeError{Line: d.line, Err: errors.New("invalid JSON")}
		}
		return FromJSON(gjson.Parse(text)), nil
	}
	if err := d.scanner.Err(); err != nil {
		return Value{}, fmt.Errorf("reading input: %w", err)
	}
	return Value{}, io.EOF
}

// FromJSON converts a parsed JSON document, keeping object key order.
func FromJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Nothing()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return Float(r.Float())
		}
		// Integers outside the int64 range keep their magnitude as floats.
		i, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil {
			return Float(r.Float())
		}
		return Int(i)
	case gjson.String:
		return String(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, FromJSON(item))
				return true
			})
			return List(items...)
		}
		var fields []Field
		r.ForEach(func(key, item gjson.Result) bool {
			fields = append(fields, F(key.String(), FromJSON(item)))
			return true
		})
		return Record(fields...)
	default:
		return Nothing()
	}
}

type yamlDecoder struct {
	dec *yaml.Decoder
	doc int
}

func (d *yamlDecoder) Decode() (Value, error) {
	var node yaml.Node
	if err := d.dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.EOF
		}
		// yaml.v3 cannot resynchronise after a syntax error.
		return Value{}, fmt.Errorf("document %d: %w", d.doc+1, err)
	}
	d.doc++
	v, err := FromYAML(&node)
	if err != nil {
		return Value{}, &DecodeError{Err: fmt.Errorf("document %d: %w", d.doc, err)}
	}
	return v, nil
}

// MaxYAMLValues bounds the values one YAML document may expand to through aliases.
const MaxYAMLValues = 1_000_000

// YAML expansion errors.
var (
	ErrAliasCycle    = errors.New("alias refers to itself")
	ErrTooManyValues = errors.New("document expands to too many values")
)

// FromYAML converts a YAML node, keeping mapping key order. Aliases are expanded
// in place; a cyclic alias or an expansion beyond MaxYAMLValues is an error.
func FromYAML(n *yaml.Node) (Value, error) {
	x := yamlExpander{visiting: make(map[*yaml.Node]struct{}), budget: MaxYAMLValues}
	return x.expand(n)
}

type yamlExpander struct {
	visiting map[*yaml.Node]struct{}
	budget   int
}

func (x *yamlExpander) expand(n *yaml.Node) (Value, error) {
	if _, ok := x.visiting[n]; ok {
		return Value{}, ErrAliasCycle
	}
	if x.budget--; x.budget < 0 {
		return Value{}, fmt.Errorf("%w (limit %d)", ErrTooManyValues, MaxYAMLValues)
	}
	x.visiting[n] = struct{}{}
	defer delete(x.visiting, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Nothing(), nil
		}
		return x.expand(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return Nothing(), nil
		}
		return x.expand(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := x.expand(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := x.expand(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, F(n.Content[i].Value, v))
		}
		return Record(fields...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	default:
		return Nothing(), nil
	}
}

func scalarFromYAML(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Nothing(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

type linesDecoder struct {
	scanner *bufio.Scanner
}

func (d *linesDecoder) Decode() (Value, error) {
	if d.scanner.Scan() {
		return String(d.scanner.Text()), nil
	}
	if err := d.scanner.Err(); err != nil {
		return Value{}, fmt.Errorf("reading input: %w", err)
	}
	return Value{}, io.EOF
}
