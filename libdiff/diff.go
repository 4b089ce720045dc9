package libdiff

import (
	"fmt"

	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
)

type Op int

const (
	Add Op = iota + 1
	Remove
	Replace
)

func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Change is one edit. From is nil for Add and To is nil for Remove. Array
// indices in Path refer to the document as it is after the preceding
// changes have been applied.
type Change struct {
	Op   Op
	Path *kpath.KPath
	From *ir.Node
	To   *ir.Node
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s", c.Op, JSONPointer(c.Path))
}

// DiffFunc diffs two values located at path, appending to res.
type DiffFunc func(res []Change, path *kpath.KPath, from, to *ir.Node) []Change

// Diff returns the changes that turn from into to, nil if they are equal.
func Diff(from, to *ir.Node) []Change {
	return diff(nil, nil, from, to)
}

func diff(res []Change, path *kpath.KPath, from, to *ir.Node) []Change {
	if from.Type != to.Type {
		return append(res, Change{Op: Replace, Path: path, From: from, To: to})
	}
	if !from.Type.IsLeaf() {
		if from.Type == ir.ObjectType {
			return diffObject(res, path, from, to, diff)
		}
		return diffArray(res, path, from, to, diff)
	}
	if ir.Equal(from, to) {
		return res
	}
	return append(res, Change{Op: Replace, Path: path, From: from, To: to})
}

func diffObject(res []Change, path *kpath.KPath, from, to *ir.Node, df DiffFunc) []Change {
	for i, f := range from.Fields {
		key := f.String
		at := path.WithField(key)
		tv := ir.Get(to, key)
		if tv == nil {
			res = append(res, Change{Op: Remove, Path: at, From: from.Values[i]})
			continue
		}
		res = df(res, at, from.Values[i], tv)
	}
	for i, f := range to.Fields {
		if ir.Get(from, f.String) != nil {
			continue
		}
		res = append(res, Change{Op: Add, Path: path.WithField(f.String), To: to.Values[i]})
	}
	return res
}

// Reverse returns the changes that undo cs.
func Reverse(cs []Change) []Change {
	res := make([]Change, len(cs))
	for i, c := range cs {
		r := Change{Path: c.Path, From: c.To, To: c.From}
		switch c.Op {
		case Add:
			r.Op = Remove
		case Remove:
			r.Op = Add
		default:
			r.Op = c.Op
		}
		res[len(cs)-1-i] = r
	}
	return res
}
