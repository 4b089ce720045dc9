package mergeop

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/signadot/codable/debug"
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch failed")

// JSONPatch applies the RFC 6902 operations in ops to doc. doc is not
// modified.
func JSONPatch(doc, ops *ir.Node) (*ir.Node, error) {
	if ops.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: json patch must be an array, got %s", ErrPatch, ops.Type)
	}
	d, err := marshalJSON(ops)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("json patch with %d ops\n", len(patch))
	}
	src, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := patch.Apply(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return parse.Parse(out)
}

// MergePatch applies the RFC 7386 merge patch to doc: objects in patch are
// merged recursively, null removes a key and any other value replaces.
func MergePatch(doc, patch *ir.Node) (*ir.Node, error) {
	src, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	p, err := marshalJSON(patch)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(src, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return parse.Parse(out)
}

// CreateMergePatch returns a merge patch that turns from into to.
func CreateMergePatch(from, to *ir.Node) (*ir.Node, error) {
	a, err := marshalJSON(from)
	if err != nil {
		return nil, err
	}
	b, err := marshalJSON(to)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return parse.Parse(out)
}

func marshalJSON(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
