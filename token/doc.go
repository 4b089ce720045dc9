// Package token provides tokenization of JSON text.
//
// [Tokenize] splits a document into a flat slice of [Token]s, each carrying a
// [Pos] so that parse errors can report byte offset, line and column.
//
// [Quote] and [QuotedToString] convert between Go strings and JSON string
// literals.
package token
