package libdiff

import (
	"strconv"

	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffArray maps each element to a rune naming its summary, diffs the two
// rune sequences, and recurses into elements whose summaries match. Objects
// and arrays share one summary per type, so they are always recursed into.
func diffArray(res []Change, path *kpath.KPath, from, to *ir.Node, df DiffFunc) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffCfg.DiffTimeout = 0
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	// ri is the index in the partially patched array.
	fi, ti, ri := 0, 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				res = append(res, Change{Op: Remove, Path: path.WithIndex(ri), From: from.Values[fi]})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				res = append(res, Change{Op: Add, Path: path.WithIndex(ri), To: to.Values[ti]})
				ri++
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				res = df(res, path.WithIndex(ri), from.Values[fi], to.Values[ti])
				ri++
				fi++
				ti++
			}
		}
	}
	return res
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			// skip the surrogate range, which does not survive the
			// conversion to string.
			r = rune(len(m))
			if r >= 0xd800 {
				r += 0x800
			}
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType, ir.NullType:
		return node.Type.String()
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		if f, ok := node.Float(); ok && node.Number == "" {
			return node.Type.String() + "-" + strconv.FormatFloat(f, 'g', -1, 64)
		}
		return node.Type.String() + "-" + node.Number
	}
	return node.Type.String()
}
