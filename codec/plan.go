package codec

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/signadot/codable/debug"
)

// fieldPlan describes how one struct field appears on the wire.
type fieldPlan struct {
	key       string
	name      string
	index     []int
	typ       reflect.Type
	omitEmpty bool
	// optional fields may be absent. Pointer and interface fields, fields
	// tagged omitempty and fields promoted through an embedded pointer are
	// optional.
	optional bool
	depth    int
}

type structPlan struct {
	fields []fieldPlan
	byKey  map[string]int
}

type planKey struct {
	typ   reflect.Type
	snake bool
}

var plans sync.Map // planKey -> *structPlan or error

func planFor(typ reflect.Type, snake bool) (*structPlan, error) {
	k := planKey{typ: typ, snake: snake}
	if v, ok := plans.Load(k); ok {
		if err, isErr := v.(error); isErr {
			return nil, err
		}
		return v.(*structPlan), nil
	}
	p, err := buildPlan(typ, snake)
	if debug.Plan() {
		debug.Logf("plan %s snake=%t: %d fields err=%v\n", typ, snake, planLen(p), err)
	}
	if err != nil {
		plans.Store(k, err)
		return nil, err
	}
	v, _ := plans.LoadOrStore(k, p)
	if err, isErr := v.(error); isErr {
		return nil, err
	}
	return v.(*structPlan), nil
}

func planLen(p *structPlan) int {
	if p == nil {
		return 0
	}
	return len(p.fields)
}

func buildPlan(typ reflect.Type, snake bool) (*structPlan, error) {
	p := &structPlan{byKey: map[string]int{}}
	if err := collectFields(p, typ, nil, 0, snake, false, map[reflect.Type]bool{}); err != nil {
		return nil, err
	}
	return p, nil
}

func collectFields(p *structPlan, typ reflect.Type, index []int, depth int, snake, viaPtr bool, seen map[reflect.Type]bool) error {
	if seen[typ] {
		return nil
	}
	seen[typ] = true
	defer delete(seen, typ)
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		tag, hasTag := sf.Tag.Lookup("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fieldIndex := append(append([]int(nil), index...), i)
		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer && ft.Elem().Kind() == reflect.Struct {
				// a nil unexported embed could not be allocated on decode
				if !sf.IsExported() {
					continue
				}
				if err := collectFields(p, ft.Elem(), fieldIndex, depth+1, snake, true, seen); err != nil {
					return err
				}
				continue
			}
			if ft.Kind() == reflect.Struct {
				if err := collectFields(p, ft, fieldIndex, depth+1, snake, viaPtr, seen); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		key := name
		if key == "" {
			key = sf.Name
			if snake {
				key = SnakeCase(sf.Name)
			}
		}
		omitEmpty := hasTag && hasOpt(opts, "omitempty")
		k := sf.Type.Kind()
		fp := fieldPlan{
			key:       key,
			name:      sf.Name,
			index:     fieldIndex,
			typ:       sf.Type,
			omitEmpty: omitEmpty,
			optional:  omitEmpty || viaPtr || k == reflect.Pointer || k == reflect.Interface,
			depth:     depth,
		}
		if j, ok := p.byKey[key]; ok {
			prev := p.fields[j]
			switch {
			case prev.depth < depth:
				continue
			case prev.depth > depth:
				p.fields[j] = fp
				continue
			}
			return fmt.Errorf("%s: fields %s and %s both use key %q", typ, prev.name, sf.Name, key)
		}
		p.byKey[key] = len(p.fields)
		p.fields = append(p.fields, fp)
	}
	return nil
}

// fieldForDecode returns the field at index, allocating embedded pointers
// on the way.
func fieldForDecode(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// fieldForEncode returns the field at index, or false if it is behind a nil
// embedded pointer.
func fieldForEncode(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func hasOpt(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}
