package codec

import (
	"fmt"
	"math"
	"reflect"

	"github.com/signadot/codable/debug"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
	"github.com/signadot/codable/temporal"
)

// Decodable is implemented by types that decode themselves. DecodeFrom
// replaces the derived codec entirely for the type.
type Decodable interface {
	DecodeFrom(d *Decoder) error
}

// Decoder is positioned at one value of a document. Decoders for nested
// values are created by Mapping and Sequence views and carry the path from
// the document root.
type Decoder struct {
	node *ir.Node
	path *kpath.KPath
	opts *decodeOpts
}

func newDecoder(node *ir.Node, opts *decodeOpts) *Decoder {
	return &Decoder{node: node, opts: opts}
}

func (d *Decoder) child(node *ir.Node, seg *kpath.KPath) *Decoder {
	return &Decoder{
		node: node,
		path: d.path.Append(seg),
		opts: d.opts,
	}
}

// Node returns the value the decoder is positioned at.
func (d *Decoder) Node() *ir.Node { return d.node }

// Path returns the location of the value, nil at the document root.
func (d *Decoder) Path() *kpath.KPath { return d.path }

// IsNull reports whether the value is null.
func (d *Decoder) IsNull() bool { return d.node.Type == ir.NullType }

// Fail returns an error of kind k located at the decoder's path.
func (d *Decoder) Fail(k Kind, format string, args ...any) *Error {
	return newError(k, d.path, format, args...)
}

func (d *Decoder) mismatch(want string) *Error {
	return d.Fail(TypeMismatch, "expected %s, got %s", want, d.node.Type)
}

// Decode decodes the value into dst, which must be a non-nil pointer.
func (d *Decoder) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return d.Fail(TypeMismatch, "destination must be a non-nil pointer, got %T", dst)
	}
	return decodeValue(d, rv.Elem())
}

// Attempt decodes the value into dst and reports whether it succeeded. A
// failed attempt leaves dst unchanged and is not reported as an error.
func (d *Decoder) Attempt(dst any) bool {
	return d.try(dst) == nil
}

func (d *Decoder) try(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return d.Fail(TypeMismatch, "destination must be a non-nil pointer, got %T", dst)
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := decodeValue(d, tmp.Elem()); err != nil {
		if debug.Union() {
			debug.Logf("attempt %s at %s failed: %v\n", rv.Elem().Type(), d.path, err)
		}
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

// Text decodes the value as a string.
func (d *Decoder) Text() (string, error) {
	if d.node.Type != ir.StringType {
		return "", d.mismatch("string")
	}
	return d.node.String, nil
}

// Bool decodes the value as a bool.
func (d *Decoder) Bool() (bool, error) {
	if d.node.Type != ir.BoolType {
		return false, d.mismatch("bool")
	}
	return d.node.Bool, nil
}

// Int decodes the value as an integer. Numbers with a fraction are a
// TypeMismatch.
func (d *Decoder) Int() (int64, error) {
	if d.node.Type != ir.NumberType {
		return 0, d.mismatch("integer")
	}
	i, ok := d.node.Int()
	if !ok {
		return 0, d.Fail(TypeMismatch, "number %s is not a 64-bit integer", numberText(d.node))
	}
	return i, nil
}

// Float decodes the value as a float64.
func (d *Decoder) Float() (float64, error) {
	f, ok := d.node.Float()
	if !ok {
		return 0, d.mismatch("number")
	}
	if math.IsInf(f, 0) {
		return 0, d.Fail(TypeMismatch, "number %s overflows float64", numberText(d.node))
	}
	return f, nil
}

// Instant decodes the value as an instant following the date strategy.
func (d *Decoder) Instant() (temporal.Instant, error) {
	switch d.opts.dates {
	case UnixSeconds:
		f, err := d.Float()
		if err != nil {
			return temporal.Instant{}, err
		}
		if i, ok := d.node.Int(); ok {
			return temporal.FromUnix(i, 0), nil
		}
		sec := int64(f)
		if float64(sec) > f {
			sec--
		}
		return temporal.FromUnix(sec, int64((f-float64(sec))*1e9+0.5)), nil
	case UnixMillis:
		ms, err := d.Int()
		if err != nil {
			return temporal.Instant{}, err
		}
		return temporal.FromUnixMilli(ms), nil
	}
	s, err := d.Text()
	if err != nil {
		return temporal.Instant{}, err
	}
	i, err := temporal.Parse(s)
	if err != nil {
		return temporal.Instant{}, &Error{Kind: MalformedTimestamp, Path: d.path, Err: err}
	}
	return i, nil
}

// Mapping returns a view of the value as an object. Keys passed to the
// view's methods are translated through keys.
func (d *Decoder) Mapping(keys ...CodingKeys) (*KeyedView, error) {
	if d.node.Type != ir.ObjectType {
		return nil, d.mismatch("object")
	}
	return &KeyedView{d: d, keys: keyChain(keys)}, nil
}

// Sequence returns a view of the value as an array.
func (d *Decoder) Sequence() (*IndexedView, error) {
	if d.node.Type != ir.ArrayType {
		return nil, d.mismatch("array")
	}
	return &IndexedView{d: d}, nil
}

// KeyedView reads the entries of an object.
type KeyedView struct {
	d    *Decoder
	keys keyChain
}

func (kv *KeyedView) Path() *kpath.KPath { return kv.d.path }

// Len returns the number of keys in the object.
func (kv *KeyedView) Len() int { return len(kv.d.node.Fields) }

// Keys returns the keys of the object in document order.
func (kv *KeyedView) Keys() []string { return kv.d.node.Keys() }

// Contains reports whether the object has the key for name.
func (kv *KeyedView) Contains(name string) bool {
	return ir.Get(kv.d.node, kv.keys.wire(name)) != nil
}

func (kv *KeyedView) lookup(name string) (string, *ir.Node) {
	key := kv.keys.wire(name)
	return key, ir.Get(kv.d.node, key)
}

// At returns a decoder for the value under name, or a KeyMissing error.
func (kv *KeyedView) At(name string) (*Decoder, error) {
	key, n := kv.lookup(name)
	if n == nil {
		return nil, newError(KeyMissing, kv.d.path.WithField(key), "no value for key %q", key)
	}
	return kv.d.child(n, kpath.NewField(key)), nil
}

// Decode decodes the required value under name into dst.
func (kv *KeyedView) Decode(name string, dst any) error {
	cd, err := kv.At(name)
	if err != nil {
		return err
	}
	return cd.Decode(dst)
}

// DecodeOptional decodes the value under name into dst if it is present
// and not null. It reports whether dst was set.
func (kv *KeyedView) DecodeOptional(name string, dst any) (bool, error) {
	key, n := kv.lookup(name)
	if n == nil || n.Type == ir.NullType {
		return false, nil
	}
	if err := kv.d.child(n, kpath.NewField(key)).Decode(dst); err != nil {
		return false, err
	}
	return true, nil
}

// Mapping returns a view of the required object under name.
func (kv *KeyedView) Mapping(name string, keys ...CodingKeys) (*KeyedView, error) {
	cd, err := kv.At(name)
	if err != nil {
		return nil, err
	}
	return cd.Mapping(keys...)
}

// Sequence returns a view of the required array under name.
func (kv *KeyedView) Sequence(name string) (*IndexedView, error) {
	cd, err := kv.At(name)
	if err != nil {
		return nil, err
	}
	return cd.Sequence()
}

// IndexedView reads the elements of an array.
type IndexedView struct {
	d *Decoder
}

func (iv *IndexedView) Path() *kpath.KPath { return iv.d.path }

func (iv *IndexedView) Len() int { return len(iv.d.node.Values) }

// At returns a decoder for element i.
func (iv *IndexedView) At(i int) (*Decoder, error) {
	if i < 0 || i >= iv.Len() {
		return nil, newError(KeyMissing, iv.d.path.WithIndex(i), "index out of range [0, %d)", iv.Len())
	}
	return iv.d.child(iv.d.node.Values[i], kpath.NewIndex(i)), nil
}

// Decode decodes element i into dst.
func (iv *IndexedView) Decode(i int, dst any) error {
	cd, err := iv.At(i)
	if err != nil {
		return err
	}
	return cd.Decode(dst)
}

// Required decodes the value under name as a T.
func Required[T any](kv *KeyedView, name string) (T, error) {
	var v T
	if err := kv.Decode(name, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Optional decodes the value under name as a T. It returns nil when the key
// is missing or the value is null.
func Optional[T any](kv *KeyedView, name string) (*T, error) {
	var v T
	ok, err := kv.DecodeOptional(name, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// OptionalOr is like Optional but returns def when there is no value.
func OptionalOr[T any](kv *KeyedView, name string, def T) (T, error) {
	p, err := Optional[T](kv, name)
	if err != nil {
		return def, err
	}
	if p == nil {
		return def, nil
	}
	return *p, nil
}

// DynamicKeys decodes the value under each of names, which typically come
// from data decoded earlier in the same object. Every name is required, and
// the result follows the order of names.
func DynamicKeys[T any](kv *KeyedView, names []string) ([]T, error) {
	res := make([]T, 0, len(names))
	for _, name := range names {
		v, err := Required[T](kv, name)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Each decodes every element of the array as a T.
func Each[T any](iv *IndexedView) ([]T, error) {
	res := make([]T, iv.Len())
	for i := range res {
		if err := iv.Decode(i, &res[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Attempt decodes the value as a T without reporting failure.
func Attempt[T any](d *Decoder) (T, bool) {
	var v T
	ok := d.Attempt(&v)
	return v, ok
}

// As decodes the value as a T.
func As[T any](d *Decoder) (T, error) {
	var v T
	if err := d.Decode(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func numberText(n *ir.Node) string {
	if n.Number != "" {
		return n.Number
	}
	if n.Float64 != nil {
		return fmt.Sprint(*n.Float64)
	}
	if n.Int64 != nil {
		return fmt.Sprint(*n.Int64)
	}
	return "?"
}
