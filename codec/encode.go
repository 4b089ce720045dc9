package codec

import (
	"cmp"
	"encoding"
	"encoding/base64"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/signadot/codable/debug"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/temporal"
)

var (
	encodableType     = reflect.TypeFor[Encodable]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// encodeValue encodes v as e's value.
func encodeValue(e *Encoder, v reflect.Value) error {
	if !v.IsValid() {
		e.Null()
		return nil
	}
	if e.depth > maxEncodeDepth {
		return e.Fail(TypeMismatch, "nesting deeper than %d, value may be cyclic", maxEncodeDepth)
	}
	typ := v.Type()
	if typ == nodePtrType {
		e.Value(v.Interface().(*ir.Node))
		return nil
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			e.Null()
			return nil
		}
		if typ.Kind() == reflect.Interface {
			return encodeValue(e, v.Elem())
		}
	}
	if enc, ok := asEncodable(v); ok {
		if debug.Encode() {
			debug.Logf("encode %s at %s with EncodeTo\n", typ, e.path)
		}
		return enc.EncodeTo(e)
	}
	if typ.Kind() == reflect.Pointer {
		return encodeValue(e, v.Elem())
	}
	switch typ {
	case instantType:
		return e.Instant(v.Interface().(temporal.Instant))
	case timeType:
		return e.Instant(temporal.FromTime(v.Interface().(time.Time)))
	}
	if typ.Implements(textMarshalerType) {
		d, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return &Error{Kind: TypeMismatch, Path: e.path, Message: "MarshalText failed for " + typ.String(), Err: err}
		}
		e.Text(string(d))
		return nil
	}

	switch typ.Kind() {
	case reflect.String:
		e.Text(v.String())
	case reflect.Bool:
		e.Bool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > 1<<63-1 {
			n, err := ir.FromNumber(strconv.FormatUint(u, 10))
			if err != nil {
				return e.Fail(TypeMismatch, "%v", err)
			}
			e.Value(n)
			return nil
		}
		e.Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return e.Float(v.Float())
	case reflect.Slice:
		if v.IsNil() {
			e.Null()
			return nil
		}
		if typ.Elem().Kind() == reflect.Uint8 {
			e.Text(base64.StdEncoding.EncodeToString(v.Bytes()))
			return nil
		}
		return encodeElems(e, v)
	case reflect.Array:
		return encodeElems(e, v)
	case reflect.Map:
		if v.IsNil() {
			e.Null()
			return nil
		}
		return encodeMap(e, v)
	case reflect.Struct:
		return encodeStruct(e, v)
	default:
		return e.Fail(TypeMismatch, "unsupported type %s", typ)
	}
	return nil
}

// asEncodable returns v as an Encodable, copying it to addressable
// storage when only its pointer type has EncodeTo.
func asEncodable(v reflect.Value) (Encodable, bool) {
	typ := v.Type()
	if typ.Implements(encodableType) {
		return v.Interface().(Encodable), true
	}
	if typ.Kind() == reflect.Pointer || !reflect.PointerTo(typ).Implements(encodableType) {
		return nil, false
	}
	if v.CanAddr() {
		return v.Addr().Interface().(Encodable), true
	}
	p := reflect.New(typ)
	p.Elem().Set(v)
	return p.Interface().(Encodable), true
}

func encodeElems(e *Encoder, v reflect.Value) error {
	is := e.Sequence()
	for i := range v.Len() {
		if err := encodeValue(is.Next(), v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(e *Encoder, v reflect.Value) error {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := mapKeyString(iter.Key())
		if err != nil {
			return e.Fail(TypeMismatch, "invalid map key: %v", err)
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.key, b.key) })
	ks := e.Mapping()
	for _, ent := range entries {
		if err := encodeValue(ks.At(ent.key), ent.val); err != nil {
			return err
		}
	}
	return nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Type().Implements(textMarshalerType) {
		d, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		return string(d), err
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", &Error{Kind: TypeMismatch, Message: "unsupported key type " + k.Type().String()}
}

func encodeStruct(e *Encoder, v reflect.Value) error {
	plan, err := planFor(v.Type(), e.opts.snake)
	if err != nil {
		return e.Fail(TypeMismatch, "%v", err)
	}
	ks := e.Mapping()
	for i := range plan.fields {
		fp := &plan.fields[i]
		fv, ok := fieldForEncode(v, fp.index)
		if !ok {
			continue
		}
		if fp.omitEmpty && isEmptyValue(fv) {
			continue
		}
		if fp.optional && (fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface) && fv.IsNil() {
			continue
		}
		if err := encodeValue(ks.At(fp.key), fv); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Struct:
		if v.Type() == instantType || v.Type() == timeType {
			return v.IsZero()
		}
		return false
	}
	return v.IsZero()
}
