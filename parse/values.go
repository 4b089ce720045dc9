package parse

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
)

// FromValue converts the generic values produced by format libraries
// (maps, slices, scalars) into an ir.Node.
//
// Byte strings become base64 text and timestamps become RFC 3339 text, the
// way encoding/json renders them.
func FromValue(v any) (*ir.Node, error) {
	return fromValue(v, nil)
}

func fromValue(v any, at *kpath.KPath) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case []byte:
		return ir.FromString(base64.StdEncoding.EncodeToString(x)), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return ir.FromInt(int64(x)), nil
	case uint16:
		return ir.FromInt(int64(x)), nil
	case uint32:
		return ir.FromInt(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return fromFloat(float64(x), at)
	case float64:
		return fromFloat(x, at)
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		res := &ir.Node{Type: ir.ArrayType, Values: make([]*ir.Node, len(x))}
		for i, e := range x {
			n, err := fromValue(e, at.WithIndex(i))
			if err != nil {
				return nil, err
			}
			res.Values[i] = n
		}
		return res, nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		seen := make(map[string]bool, len(x))
		for _, item := range x {
			key, err := stringKey(item.Key, at)
			if err != nil {
				return nil, err
			}
			if seen[key] {
				return nil, &Error{Err: fmt.Errorf("%w %q at %s", ErrDupKey, key, at)}
			}
			seen[key] = true
			n, err := fromValue(item.Value, at.WithField(key))
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: n})
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, e := range x {
			n, err := fromValue(e, at.WithField(k))
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	case map[any]any:
		m := make(map[string]*ir.Node, len(x))
		for k, e := range x {
			key, err := stringKey(k, at)
			if err != nil {
				return nil, err
			}
			n, err := fromValue(e, at.WithField(key))
			if err != nil {
				return nil, err
			}
			m[key] = n
		}
		return ir.FromMap(m), nil
	}
	return nil, &Error{Err: fmt.Errorf("%w %T at %q", ErrUnsupported, v, at.String())}
}

func fromUint(u uint64) (*ir.Node, error) {
	if u <= math.MaxInt64 {
		return ir.FromInt(int64(u)), nil
	}
	return ir.FromNumber(strconv.FormatUint(u, 10))
}

func fromFloat(f float64, at *kpath.KPath) (*ir.Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &Error{Err: fmt.Errorf("%w %v at %q", ErrUnsupported, f, at.String())}
	}
	return ir.FromFloat(f), nil
}

func stringKey(k any, at *kpath.KPath) (string, error) {
	if s, ok := k.(string); ok {
		return s, nil
	}
	return "", &Error{Err: fmt.Errorf("%w: key %v of type %T at %q", ErrUnsupported, k, k, at.String())}
}
