package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/codable/format"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/token"
)

var (
	ErrEncode      = errors.New("encode error")
	ErrNonFinite   = fmt.Errorf("%w: non-finite number", ErrEncode)
	ErrInvalidNode = fmt.Errorf("%w: invalid node", ErrEncode)
)

type EncState struct {
	depth, indent int
	format        format.Format
	wire          bool
	ascii         bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		node = ir.Null()
	}
	switch es.format {
	case format.JSONFormat:
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	case format.CBORFormat:
		return encodeCBOR(node, w)
	case format.MsgPackFormat:
		return encodeMsgPack(node, w)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeColor(w, es, ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return writeColor(w, es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		lit, err := NumberLiteral(node)
		if err != nil {
			return err
		}
		return writeColor(w, es, ir.NumberType, ValueColor, lit)
	case ir.StringType:
		return writeColor(w, es, ir.StringType, ValueColor, quote(node.String, es))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	}
	return fmt.Errorf("%w: type %d", ErrInvalidNode, node.Type)
}

func quote(s string, es *EncState) string {
	q := token.Quote(s)
	if !es.ascii {
		return q
	}
	buf := strings.Builder{}
	for _, r := range q {
		switch {
		case r < 0x80:
			buf.WriteRune(r)
		case r > 0xffff:
			r -= 0x10000
			fmt.Fprintf(&buf, `\u%04x\u%04x`, 0xd800+(r>>10), 0xdc00+(r&0x3ff))
		default:
			fmt.Fprintf(&buf, `\u%04x`, r)
		}
	}
	return buf.String()
}

// NumberLiteral returns the JSON text of a number node.
func NumberLiteral(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %v", ErrNonFinite, f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: number without value", ErrInvalidNode)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeColor(w, es, ir.ArrayType, SepColor, "["); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeColor(w, es, ir.ArrayType, SepColor, "]")
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeColor(w, es, ir.ArrayType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColor(w, es, ir.ArrayType, SepColor, "]")
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: object with %d fields and %d values", ErrInvalidNode, len(node.Fields), len(node.Values))
	}
	if err := writeColor(w, es, ir.ObjectType, SepColor, "{"); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeColor(w, es, ir.ObjectType, SepColor, "}")
	}
	es.depth++
	for i, f := range node.Fields {
		if i > 0 {
			if err := writeColor(w, es, ir.ObjectType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeColor(w, es, ir.ObjectType, FieldColor, quote(f.String, es)); err != nil {
			return err
		}
		sep := ": "
		if es.wire {
			sep = ":"
		}
		if err := writeColor(w, es, ir.ObjectType, SepColor, sep); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColor(w, es, ir.ObjectType, SepColor, "}")
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func writeColor(w io.Writer, es *EncState, t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
