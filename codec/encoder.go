package codec

import (
	"math"
	"reflect"

	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
	"github.com/signadot/codable/temporal"
)

// Encodable is implemented by types that encode themselves. EncodeTo
// replaces the derived codec entirely for the type.
type Encodable interface {
	EncodeTo(e *Encoder) error
}

// Encoder produces one value of a document. An Encoder that is never
// written to produces null.
type Encoder struct {
	node  *ir.Node
	path  *kpath.KPath
	opts  *encodeOpts
	slot  func(*ir.Node)
	depth int
}

const maxEncodeDepth = 10000

func newEncoder(opts *encodeOpts) *Encoder {
	return &Encoder{opts: opts}
}

func (e *Encoder) child(seg *kpath.KPath, slot func(*ir.Node)) *Encoder {
	return &Encoder{
		path:  e.path.Append(seg),
		opts:  e.opts,
		slot:  slot,
		depth: e.depth + 1,
	}
}

func (e *Encoder) set(n *ir.Node) {
	e.node = n
	if e.slot != nil {
		e.slot(n)
	}
}

func (e *Encoder) result() *ir.Node {
	if e.node == nil {
		return ir.Null()
	}
	return e.node
}

func (e *Encoder) Path() *kpath.KPath { return e.path }

// Fail returns an error of kind k located at the encoder's path.
func (e *Encoder) Fail(k Kind, format string, args ...any) *Error {
	return newError(k, e.path, format, args...)
}

// Value sets the encoded value to node. The node is shared, not copied.
func (e *Encoder) Value(node *ir.Node) {
	if node == nil {
		node = ir.Null()
	}
	e.set(node)
}

// Encode encodes v as the value, using its EncodeTo method if it has one
// and the derived codec otherwise.
func (e *Encoder) Encode(v any) error {
	return encodeValue(e, reflect.ValueOf(v))
}

func (e *Encoder) Null()         { e.set(ir.Null()) }
func (e *Encoder) Text(s string) { e.set(ir.FromString(s)) }
func (e *Encoder) Bool(b bool)   { e.set(ir.FromBool(b)) }
func (e *Encoder) Int(i int64)   { e.set(ir.FromInt(i)) }

// Float sets the value to f. NaN and infinities have no JSON form and are a
// TypeMismatch.
func (e *Encoder) Float(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return e.Fail(TypeMismatch, "%v has no JSON representation", f)
	}
	e.set(ir.FromFloat(f))
	return nil
}

// Instant sets the value to i following the date strategy.
func (e *Encoder) Instant(i temporal.Instant) error {
	switch e.opts.dates {
	case UnixSeconds:
		if i.Nanos() == 0 {
			e.Int(i.Unix())
			return nil
		}
		return e.Float(i.Seconds())
	case UnixMillis:
		e.Int(i.UnixMilli())
		return nil
	}
	e.Text(temporal.Format(i, temporal.UTC))
	return nil
}

// Mapping makes the value an object and returns a sink for its entries.
// Calling Mapping again continues the same object. Tables marked
// DecodeOnly are ignored.
func (e *Encoder) Mapping(keys ...CodingKeys) *KeyedSink {
	if e.node == nil || e.node.Type != ir.ObjectType {
		e.set(&ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}})
	}
	return &KeyedSink{e: e, keys: encodeKeys(keys)}
}

// Sequence makes the value an array and returns a sink for its elements.
func (e *Encoder) Sequence() *IndexedSink {
	if e.node == nil || e.node.Type != ir.ArrayType {
		e.set(&ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}})
	}
	return &IndexedSink{e: e}
}

// KeyedSink writes the entries of an object in order. Writing a key twice
// replaces the earlier value in place.
type KeyedSink struct {
	e    *Encoder
	keys keyChain
}

func (ks *KeyedSink) slot(key string) func(*ir.Node) {
	obj := ks.e.node
	return func(n *ir.Node) {
		for i, f := range obj.Fields {
			if f.String == key {
				obj.Values[i] = n
				return
			}
		}
		obj.Fields = append(obj.Fields, ir.FromString(key))
		obj.Values = append(obj.Values, n)
	}
}

// At returns an encoder for the value under name. The entry is created when
// the returned encoder is first written to.
func (ks *KeyedSink) At(name string) *Encoder {
	key := ks.keys.wire(name)
	return ks.e.child(kpath.NewField(key), ks.slot(key))
}

// Write encodes v under name.
func (ks *KeyedSink) Write(name string, v any) error {
	ce := ks.At(name)
	if err := ce.Encode(v); err != nil {
		return err
	}
	if ce.node == nil {
		ce.Null()
	}
	return nil
}

// WriteOptional encodes v under name unless v is nil.
func (ks *KeyedSink) WriteOptional(name string, v any) error {
	if isNil(reflect.ValueOf(v)) {
		return nil
	}
	return ks.Write(name, v)
}

// WriteValue stores node under name.
func (ks *KeyedSink) WriteValue(name string, node *ir.Node) {
	ks.At(name).Value(node)
}

// Mapping starts a nested object under name.
func (ks *KeyedSink) Mapping(name string, keys ...CodingKeys) *KeyedSink {
	return ks.At(name).Mapping(keys...)
}

// Sequence starts a nested array under name.
func (ks *KeyedSink) Sequence(name string) *IndexedSink {
	return ks.At(name).Sequence()
}

// IndexedSink appends the elements of an array.
type IndexedSink struct {
	e *Encoder
}

func (is *IndexedSink) Len() int { return len(is.e.node.Values) }

// Next returns an encoder for a new last element.
func (is *IndexedSink) Next() *Encoder {
	arr := is.e.node
	i := len(arr.Values)
	arr.Values = append(arr.Values, ir.Null())
	return is.e.child(kpath.NewIndex(i), func(n *ir.Node) { arr.Values[i] = n })
}

// Append encodes v as a new last element.
func (is *IndexedSink) Append(v any) error {
	return is.Next().Encode(v)
}

// AppendValue appends node.
func (is *IndexedSink) AppendValue(node *ir.Node) {
	is.Next().Value(node)
}

// AppendAll encodes every element of vs in order.
func AppendAll[T any](is *IndexedSink, vs []T) error {
	for i := range vs {
		if err := is.Append(vs[i]); err != nil {
			return err
		}
	}
	return nil
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
