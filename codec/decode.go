package codec

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/signadot/codable/debug"
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
	"github.com/signadot/codable/temporal"
)

var (
	decodableType       = reflect.TypeFor[Decodable]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	nodePtrType         = reflect.TypeFor[*ir.Node]()
	instantType         = reflect.TypeFor[temporal.Instant]()
	timeType            = reflect.TypeFor[time.Time]()
)

// decodeValue decodes d's value into the settable v.
func decodeValue(d *Decoder, v reflect.Value) error {
	typ := v.Type()
	if typ == nodePtrType {
		v.Set(reflect.ValueOf(d.node))
		return nil
	}
	if typ.Kind() == reflect.Pointer {
		if d.node.Type == ir.NullType {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(typ.Elem()))
		}
		return decodeValue(d, v.Elem())
	}
	if reflect.PointerTo(typ).Implements(decodableType) && v.CanAddr() {
		if debug.Decode() {
			debug.Logf("decode %s at %s with DecodeFrom\n", typ, d.path)
		}
		return v.Addr().Interface().(Decodable).DecodeFrom(d)
	}
	switch typ {
	case instantType:
		i, err := d.Instant()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(i))
		return nil
	case timeType:
		i, err := d.Instant()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(i.Time()))
		return nil
	}
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) && v.CanAddr() {
		s, err := d.Text()
		if err != nil {
			return err
		}
		if err := v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return &Error{Kind: TypeMismatch, Path: d.path, Message: fmt.Sprintf("invalid %s %q", typ, s), Err: err}
		}
		return nil
	}

	if typ.Kind() == reflect.Interface {
		return decodeInterface(d, v)
	}
	if d.node.Type == ir.NullType {
		switch typ.Kind() {
		case reflect.Slice, reflect.Map:
			v.SetZero()
			return nil
		}
		return d.mismatch(typ.String())
	}
	switch typ.Kind() {
	case reflect.String:
		s, err := d.Text()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Bool:
		b, err := d.Bool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := d.Int()
		if err != nil {
			return err
		}
		if v.OverflowInt(i) {
			return d.Fail(TypeMismatch, "value %d overflows %s", i, typ)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := decodeUint(d)
		if err != nil {
			return err
		}
		if v.OverflowUint(u) {
			return d.Fail(TypeMismatch, "value %d overflows %s", u, typ)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := d.Float()
		if err != nil {
			return err
		}
		if typ.Kind() == reflect.Float32 && math.Abs(f) > math.MaxFloat32 {
			return d.Fail(TypeMismatch, "value %v overflows %s", f, typ)
		}
		v.SetFloat(f)
	case reflect.Slice:
		return decodeSlice(d, v)
	case reflect.Array:
		return decodeArray(d, v)
	case reflect.Map:
		return decodeMap(d, v)
	case reflect.Struct:
		return decodeStruct(d, v)
	default:
		return d.Fail(TypeMismatch, "unsupported type %s", typ)
	}
	return nil
}

func decodeUint(d *Decoder) (uint64, error) {
	if d.node.Type != ir.NumberType {
		return 0, d.mismatch("unsigned integer")
	}
	if i, ok := d.node.Int(); ok {
		if i < 0 {
			return 0, d.Fail(TypeMismatch, "negative value %d for unsigned integer", i)
		}
		return uint64(i), nil
	}
	if d.node.Number != "" {
		if u, err := strconv.ParseUint(d.node.Number, 10, 64); err == nil {
			return u, nil
		}
	}
	return 0, d.Fail(TypeMismatch, "number %s is not an unsigned 64-bit integer", numberText(d.node))
}

func decodeInterface(d *Decoder, v reflect.Value) error {
	if v.NumMethod() != 0 {
		if d.node.Type == ir.NullType {
			v.SetZero()
			return nil
		}
		return d.Fail(TypeMismatch, "cannot decode into non-empty interface %s", v.Type())
	}
	x, err := encode.ToValue(d.node, false)
	if err != nil {
		return &Error{Kind: TypeMismatch, Path: d.path, Err: err}
	}
	if x == nil {
		v.SetZero()
		return nil
	}
	v.Set(reflect.ValueOf(x))
	return nil
}

func decodeSlice(d *Decoder, v reflect.Value) error {
	typ := v.Type()
	if typ.Elem().Kind() == reflect.Uint8 && d.node.Type == ir.StringType {
		b, err := base64.StdEncoding.DecodeString(d.node.String)
		if err != nil {
			return &Error{Kind: TypeMismatch, Path: d.path, Message: "invalid base64", Err: err}
		}
		v.SetBytes(b)
		return nil
	}
	iv, err := d.Sequence()
	if err != nil {
		return err
	}
	n := iv.Len()
	res := reflect.MakeSlice(typ, n, n)
	for i := range n {
		cd := d.child(d.node.Values[i], kpath.NewIndex(i))
		if err := decodeValue(cd, res.Index(i)); err != nil {
			return err
		}
	}
	v.Set(res)
	return nil
}

func decodeArray(d *Decoder, v reflect.Value) error {
	iv, err := d.Sequence()
	if err != nil {
		return err
	}
	if iv.Len() != v.Len() {
		return d.Fail(TypeMismatch, "expected %d elements, got %d", v.Len(), iv.Len())
	}
	for i := range iv.Len() {
		cd := d.child(d.node.Values[i], kpath.NewIndex(i))
		if err := decodeValue(cd, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(d *Decoder, v reflect.Value) error {
	typ := v.Type()
	kt := typ.Key()
	if _, err := d.Mapping(); err != nil {
		return err
	}
	res := reflect.MakeMapWithSize(typ, len(d.node.Fields))
	for i, f := range d.node.Fields {
		key := reflect.New(kt).Elem()
		if err := mapKey(f.String, key); err != nil {
			return d.Fail(TypeMismatch, "invalid key %q for %s: %v", f.String, typ, err)
		}
		ev := reflect.New(typ.Elem()).Elem()
		if err := decodeValue(d.child(d.node.Values[i], kpath.NewField(f.String)), ev); err != nil {
			return err
		}
		res.SetMapIndex(key, ev)
	}
	v.Set(res)
	return nil
}

func mapKey(s string, key reflect.Value) error {
	if reflect.PointerTo(key.Type()).Implements(textUnmarshalerType) {
		return key.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	}
	switch key.Kind() {
	case reflect.String:
		key.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, key.Type().Bits())
		if err != nil {
			return err
		}
		key.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, key.Type().Bits())
		if err != nil {
			return err
		}
		key.SetUint(u)
	default:
		return fmt.Errorf("unsupported key type %s", key.Type())
	}
	return nil
}

func decodeStruct(d *Decoder, v reflect.Value) error {
	if d.node.Type != ir.ObjectType {
		return d.mismatch("object")
	}
	plan, err := planFor(v.Type(), d.opts.snake)
	if err != nil {
		return d.Fail(TypeMismatch, "%v", err)
	}
	if d.opts.strict {
		for _, f := range d.node.Fields {
			if _, ok := plan.byKey[f.String]; !ok {
				return newError(TypeMismatch, d.path.WithField(f.String), "unknown key for %s", v.Type())
			}
		}
	}
	v.SetZero()
	for i := range plan.fields {
		fp := &plan.fields[i]
		n := ir.Get(d.node, fp.key)
		if n == nil || (fp.optional && n.Type == ir.NullType && fp.typ != nodePtrType) {
			if n == nil && !fp.optional {
				return newError(KeyMissing, d.path.WithField(fp.key), "no value for field %s of %s", fp.name, v.Type())
			}
			continue
		}
		if err := decodeValue(d.child(n, kpath.NewField(fp.key)), fieldForDecode(v, fp.index)); err != nil {
			return err
		}
	}
	return nil
}
