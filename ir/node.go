package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	dst := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
		Number: y.Number,
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber creates a number node from a JSON number literal, keeping
// integers exact. Integers outside the int64 range keep their literal.
func FromNumber(lit string) (*Node, error) {
	i, err := strconv.ParseInt(lit, 10, 64)
	if err == nil {
		return FromInt(i), nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return &Node{Type: NumberType, Number: lit}, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err == nil {
		return FromFloat(f), nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return &Node{Type: NumberType, Number: lit}, nil
	}
	return nil, fmt.Errorf("invalid number %q: %w", lit, err)
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap creates an object node with the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, 0, len(yMap))
	res.Values = make([]*Node, 0, len(yMap))
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.Fields = append(res.Fields, FromString(key))
		res.Values = append(res.Values, yMap[key])
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals creates an object node preserving the order of kvs.
// A nil Val is stored as null.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		res.Fields[i] = FromString(kv.Key)
		if kv.Val == nil {
			res.Values[i] = Null()
		} else {
			res.Values[i] = kv.Val
		}
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

// Get returns the value under field in the object y, or nil.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Keys returns the object keys of y in document order.
func (y *Node) Keys() []string {
	if y.Type != ObjectType {
		return nil
	}
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Float returns the numeric value of y as a float64.
func (y *Node) Float() (float64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	switch {
	case y.Int64 != nil:
		return float64(*y.Int64), true
	case y.Float64 != nil:
		return *y.Float64, true
	}
	f, err := strconv.ParseFloat(y.Number, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int returns the value of y as an int64 if y is a number with an exact
// integer value in range.
func (y *Node) Int() (int64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 == nil {
		return 0, false
	}
	f := *y.Float64
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Validate checks the structural constraints of the tree rooted at y:
// objects have string keys, one per value, and no key occurs twice.
func (y *Node) Validate() error {
	return y.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost || n.Type != ObjectType {
			return true, nil
		}
		if len(n.Fields) != len(n.Values) {
			return false, fmt.Errorf("object with %d fields and %d values", len(n.Fields), len(n.Values))
		}
		seen := make(map[string]bool, len(n.Fields))
		for _, f := range n.Fields {
			if f.Type != StringType {
				return false, fmt.Errorf("object key of type %s", f.Type)
			}
			if seen[f.String] {
				return false, fmt.Errorf("%w %q", ErrDupKey, f.String)
			}
			seen[f.String] = true
		}
		return true, nil
	})
}
