package codec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/signadot/codable/debug"
)

// Variant is a named candidate type of a OneOf.
type Variant struct {
	name string
	typ  reflect.Type
}

// VariantOf returns the variant for values of type T.
func VariantOf[T any](name string) Variant {
	return Variant{name: name, typ: reflect.TypeFor[T]()}
}

func (v Variant) Name() string       { return v.name }
func (v Variant) Type() reflect.Type { return v.typ }

// OneOf holds a value of one of several variant types, tried in order on
// decode like Either. The variants must be set before decoding, so OneOf is
// decoded through a pointer made by NewOneOf.
type OneOf struct {
	variants []Variant
	index    int
	value    any
}

func NewOneOf(variants ...Variant) *OneOf {
	return &OneOf{variants: variants, index: -1}
}

// Variants returns the candidate variants in trial order.
func (o *OneOf) Variants() []Variant { return o.variants }

// Index returns the index of the held variant, -1 if undetermined.
func (o *OneOf) Index() int { return o.index }

// Value returns the held value, nil if undetermined.
func (o *OneOf) Value() any { return o.value }

// Name returns the name of the held variant, "" if undetermined.
func (o *OneOf) Name() string {
	if o.index < 0 {
		return ""
	}
	return o.variants[o.index].name
}

// Set makes o hold v, which must have the type of one of the variants.
func (o *OneOf) Set(v any) error {
	t := reflect.TypeOf(v)
	for i, vr := range o.variants {
		if vr.typ == t {
			o.index = i
			o.value = v
			return nil
		}
	}
	return fmt.Errorf("%w: %T is not a variant of %s", ErrNoMatchingVariant, v, o.typeName())
}

// Reset makes o undetermined.
func (o *OneOf) Reset() {
	o.index = -1
	o.value = nil
}

func (o *OneOf) typeName() string {
	names := make([]string, len(o.variants))
	for i, v := range o.variants {
		names[i] = v.name
	}
	return "OneOf[" + strings.Join(names, ", ") + "]"
}

func (o *OneOf) DecodeFrom(d *Decoder) error {
	errs := make(VariantErrors, 0, len(o.variants))
	for i, vr := range o.variants {
		p := reflect.New(vr.typ)
		err := d.try(p.Interface())
		if err == nil {
			o.index = i
			o.value = p.Elem().Interface()
			if debug.Union() {
				debug.Logf("%s at %s: %s\n", o.typeName(), d.path, vr.name)
			}
			return nil
		}
		errs = append(errs, VariantError{Name: vr.name, Err: err})
	}
	o.Reset()
	return &Error{
		Kind:    NoMatchingVariant,
		Path:    d.path,
		Message: "cannot decode any of " + o.typeName(),
		Err:     errs,
	}
}

func (o *OneOf) EncodeTo(e *Encoder) error {
	if o.index < 0 {
		return e.Fail(NoMatchingVariant, "cannot encode undetermined %s", o.typeName())
	}
	return e.Encode(o.value)
}
