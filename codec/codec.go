package codec

import (
	"bytes"
	"reflect"

	"github.com/signadot/codable/debug"
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/parse"
)

// Unmarshal parses data and decodes it into v, which must be a non-nil
// pointer. Syntax errors are returned as ParseError with the parser's
// error, a *parse.Error holding the position, as Err. Structs are decoded
// into a zeroed value, never merged with what v held.
func Unmarshal(data []byte, v any, opts ...DecodeOption) error {
	o := newDecodeOpts(opts)
	node, err := parse.Parse(data, o.parse...)
	if err != nil {
		return &Error{Kind: ParseError, Err: err}
	}
	return decodeNode(node, v, o)
}

// DecodeNode decodes node into v, which must be a non-nil pointer.
func DecodeNode(node *ir.Node, v any, opts ...DecodeOption) error {
	return decodeNode(node, v, newDecodeOpts(opts))
}

func decodeNode(node *ir.Node, v any, o *decodeOpts) error {
	if node == nil {
		node = ir.Null()
	}
	d := newDecoder(node, o)
	if debug.Decode() {
		debug.Logf("decode %T from %v\n", v, node)
	}
	return d.Decode(v)
}

// EncodeNode encodes v into a node.
func EncodeNode(v any, opts ...EncodeOption) (*ir.Node, error) {
	return encodeNode(v, newEncodeOpts(opts))
}

func encodeNode(v any, o *encodeOpts) (*ir.Node, error) {
	e := newEncoder(o)
	if err := encodeValue(e, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	res := e.result()
	if debug.Encode() {
		debug.Logf("encoded %T to %v\n", v, res)
	}
	return res, nil
}

// Marshal encodes v and serializes the result, as indented JSON unless the
// options select otherwise.
func Marshal(v any, opts ...EncodeOption) ([]byte, error) {
	o := newEncodeOpts(opts)
	node, err := encodeNode(v, o)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, o.encode...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Codec binds options to a type for repeated use.
type Codec[T any] struct {
	DecodeOptions []DecodeOption
	EncodeOptions []EncodeOption
}

// NewCodec returns a codec for T applying opts in both directions.
func NewCodec[T any](opts ...Option) *Codec[T] {
	c := &Codec[T]{}
	for _, o := range opts {
		c.DecodeOptions = append(c.DecodeOptions, o)
		c.EncodeOptions = append(c.EncodeOptions, o)
	}
	return c
}

func (c *Codec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := Unmarshal(data, &v, c.DecodeOptions...); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (c *Codec[T]) Marshal(v T) ([]byte, error) {
	return Marshal(v, c.EncodeOptions...)
}

func (c *Codec[T]) DecodeNode(node *ir.Node) (T, error) {
	var v T
	if err := DecodeNode(node, &v, c.DecodeOptions...); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (c *Codec[T]) EncodeNode(v T) (*ir.Node, error) {
	return EncodeNode(v, c.EncodeOptions...)
}
