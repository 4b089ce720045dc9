package encode

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/signadot/codable/ir"
	"github.com/vmihailenco/msgpack/v5"
)

// ToValue converts node to plain Go values: map[string]any, []any, string,
// bool, int64, float64 and nil. With ordered set, objects become
// yaml.MapSlice so that field order is kept.
func ToValue(node *ir.Node, ordered bool) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		if _, err := NumberLiteral(node); err != nil {
			return nil, err
		}
		f, _ := node.Float()
		return f, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := ToValue(v, ordered)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.ObjectType:
		if len(node.Fields) != len(node.Values) {
			return nil, fmt.Errorf("%w: object with %d fields and %d values", ErrInvalidNode, len(node.Fields), len(node.Values))
		}
		if ordered {
			res := make(yaml.MapSlice, len(node.Fields))
			for i, f := range node.Fields {
				x, err := ToValue(node.Values[i], ordered)
				if err != nil {
					return nil, err
				}
				res[i] = yaml.MapItem{Key: f.String, Value: x}
			}
			return res, nil
		}
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			x, err := ToValue(node.Values[i], ordered)
			if err != nil {
				return nil, err
			}
			res[f.String] = x
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: type %d", ErrInvalidNode, node.Type)
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := ToValue(node, true)
	if err != nil {
		return err
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(es.indent), yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return fmt.Errorf("%w: yaml: %w", ErrEncode, err)
	}
	_, err = w.Write(d)
	return err
}

var cborEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func encodeCBOR(node *ir.Node, w io.Writer) error {
	v, err := ToValue(node, false)
	if err != nil {
		return err
	}
	d, err := cborEncMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: cbor: %w", ErrEncode, err)
	}
	_, err = w.Write(d)
	return err
}

func encodeMsgPack(node *ir.Node, w io.Writer) error {
	v, err := ToValue(node, false)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: msgpack: %w", ErrEncode, err)
	}
	return nil
}
