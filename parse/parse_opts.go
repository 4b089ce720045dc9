package parse

import (
	"github.com/signadot/codable/format"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/token"
)

type parseOpts struct {
	format    format.Format
	jsonc     bool
	positions map[*ir.Node]*token.Pos
	maxDepth  int
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseJSONC makes JSON input lenient: comments and trailing commas are
// removed before parsing. Positions refer to the stripped document, which
// keeps the byte layout of the input.
func ParseJSONC() ParseOption {
	return func(o *parseOpts) {
		o.format = format.JSONFormat
		o.jsonc = true
	}
}

// ParsePositions records the position of each JSON value node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseMaxDepth bounds the nesting of arrays and objects.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
