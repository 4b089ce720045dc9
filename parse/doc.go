// Package parse parses documents into IR nodes.
//
// # Usage
//
//	// Parse JSON text
//	node, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse another format
//	node, err := parse.Parse(data, parse.ParseFormat(format.YAMLFormat))
//
//	// Accept comments and trailing commas in JSON
//	node, err := parse.Parse(data, parse.ParseJSONC())
//
// JSON is parsed by a strict RFC 8259 parser: syntax errors are reported as
// *Error with the byte offset, line and column. YAML, CBOR and MessagePack
// documents are decoded by their libraries and converted to the same model.
//
// # Related Packages
//
//   - github.com/signadot/codable/ir - IR representation
//   - github.com/signadot/codable/encode - Encode IR to text
//   - github.com/signadot/codable/token - Tokenization
package parse
