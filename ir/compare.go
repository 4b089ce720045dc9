package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Objects are compared by their sorted key/value pairs, so two objects
// holding the same entries in a different order compare equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports whether a and b denote the same value.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if a.Number != "" && b.Number != "" {
		return strings.Compare(a.Number, b.Number)
	}
	fa, _ := a.Float()
	fb, _ := b.Float()
	return cmp.Compare(fa, fb)
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	if lenA != lenB {
		return cmp.Compare(lenA, lenB)
	}
	ia, ib := sortedIndex(a), sortedIndex(b)
	for i := range lenA {
		ka, kb := a.Fields[ia[i]].String, b.Fields[ib[i]].String
		if c := strings.Compare(ka, kb); c != 0 {
			return c
		}
		if c := Compare(a.Values[ia[i]], b.Values[ib[i]]); c != 0 {
			return c
		}
	}
	return 0
}

func sortedIndex(y *Node) []int {
	res := make([]int, len(y.Fields))
	for i := range res {
		res[i] = i
	}
	slices.SortFunc(res, func(i, j int) int {
		return strings.Compare(y.Fields[i].String, y.Fields[j].String)
	})
	return res
}
