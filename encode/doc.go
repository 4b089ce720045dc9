// Package encode encodes IR nodes to JSON text and the other formats.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "age", Val: ir.FromInt(30)},
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Compact output
//	err := encode.Encode(node, w, encode.EncodeWire(true))
//
//	// Another format
//	err := encode.Encode(node, w, encode.EncodeFormat(format.CBORFormat))
//
// Object fields are written in the order they appear in the node. Numbers
// that hold a float are always written with a fraction or exponent so that
// parsing the output yields a float again.
//
// # Related Packages
//
//   - github.com/signadot/codable/ir - IR representation
//   - github.com/signadot/codable/parse - Parse text to IR
package encode
