// Package format names the document formats that can be parsed into and
// encoded from an ir.Node.
//
// JSON is the native format. YAML, CBOR and MessagePack map onto the same
// value model, so every codec operation works on any of them.
//
// # Related Packages
//
//   - github.com/signadot/codable/parse - Parse text to IR
//   - github.com/signadot/codable/encode - Encode IR to text
package format
