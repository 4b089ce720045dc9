package ir

import (
	"fmt"

	"github.com/signadot/codable/ir/kpath"
)

// GetKPath navigates an ir.Node tree using a kinded path.
//
// Example:
//
//	rootNode.GetKPath("a.b[0]")
//
// Returns an error wrapping ErrNotFound if the path doesn't exist.
func (node *Node) GetKPath(kp string) (*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return node.GetPath(p)
}

// GetPath is GetKPath with a parsed path.
func (node *Node) GetPath(kp *kpath.KPath) (*Node, error) {
	res := node
	for x := kp; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			if res.Type != ObjectType {
				return nil, fmt.Errorf("%w: %s at %q", ErrNotObject, res.Type, x.SegmentString())
			}
			child := Get(res, *x.Field)
			if child == nil {
				return nil, fmt.Errorf("%w: field %q", ErrNotFound, *x.Field)
			}
			res = child
		case x.Index != nil:
			if res.Type != ArrayType {
				return nil, fmt.Errorf("%w: %s at %s", ErrNotArray, res.Type, x.SegmentString())
			}
			i := *x.Index
			if i < 0 || i >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrNotFound, i, len(res.Values))
			}
			res = res.Values[i]
		}
	}
	return res, nil
}
