package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JSONPointer renders p as an RFC 6901 JSON Pointer. The root is "".
func JSONPointer(p *kpath.KPath) string {
	buf := strings.Builder{}
	for x := p; x != nil; x = x.Next {
		buf.WriteByte('/')
		switch {
		case x.Field != nil:
			buf.WriteString(pointerEscaper.Replace(*x.Field))
		case x.Index != nil:
			buf.WriteString(strconv.Itoa(*x.Index))
		}
	}
	return buf.String()
}

// ToJSONPatch renders cs as an array of RFC 6902 operations.
func ToJSONPatch(cs []Change) *ir.Node {
	ops := make([]*ir.Node, len(cs))
	for i, c := range cs {
		kvs := []ir.KeyVal{
			{Key: "op", Val: ir.FromString(c.Op.String())},
			{Key: "path", Val: ir.FromString(JSONPointer(c.Path))},
		}
		if c.Op != Remove {
			kvs = append(kvs, ir.KeyVal{Key: "value", Val: c.To})
		}
		ops[i] = ir.FromKeyVals(kvs)
	}
	return ir.FromSlice(ops)
}
