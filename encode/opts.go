package encode

import "github.com/signadot/codable/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// EncodeASCII escapes all non-ASCII characters in JSON strings.
func EncodeASCII(v bool) EncodeOption {
	return func(es *EncState) { es.ascii = v }
}
