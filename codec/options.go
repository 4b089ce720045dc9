package codec

import (
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/format"
	"github.com/signadot/codable/parse"
)

// DateStrategy selects how instants and time.Time values appear on the wire.
type DateStrategy int

const (
	// ISO8601 uses temporal text: "2018-04-20T21:15:00Z".
	ISO8601 DateStrategy = iota
	// UnixSeconds uses a number of seconds since the epoch, possibly
	// fractional.
	UnixSeconds
	// UnixMillis uses an integer number of milliseconds since the epoch.
	UnixMillis
)

func (s DateStrategy) String() string {
	switch s {
	case ISO8601:
		return "iso8601"
	case UnixSeconds:
		return "unix-seconds"
	case UnixMillis:
		return "unix-millis"
	}
	return "unknown"
}

type decodeOpts struct {
	dates   DateStrategy
	snake   bool
	parse   []parse.ParseOption
	strict  bool
}

type encodeOpts struct {
	dates  DateStrategy
	snake  bool
	encode []encode.EncodeOption
}

// DecodeOption configures decoding.
type DecodeOption interface {
	applyDecode(*decodeOpts)
}

// EncodeOption configures encoding.
type EncodeOption interface {
	applyEncode(*encodeOpts)
}

// Option configures both directions.
type Option interface {
	DecodeOption
	EncodeOption
}

type decodeFunc func(*decodeOpts)

func (f decodeFunc) applyDecode(o *decodeOpts) { f(o) }

type encodeFunc func(*encodeOpts)

func (f encodeFunc) applyEncode(o *encodeOpts) { f(o) }

type bothFunc struct {
	dec decodeFunc
	enc encodeFunc
}

func (f bothFunc) applyDecode(o *decodeOpts) { f.dec(o) }
func (f bothFunc) applyEncode(o *encodeOpts) { f.enc(o) }

// DecodeDates sets the date strategy for decoding.
func DecodeDates(s DateStrategy) DecodeOption {
	return decodeFunc(func(o *decodeOpts) { o.dates = s })
}

// EncodeDates sets the date strategy for encoding.
func EncodeDates(s DateStrategy) EncodeOption {
	return encodeFunc(func(o *encodeOpts) { o.dates = s })
}

// Dates sets the date strategy for both directions.
func Dates(s DateStrategy) Option {
	return bothFunc{
		dec: func(o *decodeOpts) { o.dates = s },
		enc: func(o *encodeOpts) { o.dates = s },
	}
}

// SnakeCaseKeys makes the derived codec use snake_case keys for fields
// without an explicit json tag name.
func SnakeCaseKeys() Option {
	return bothFunc{
		dec: func(o *decodeOpts) { o.snake = true },
		enc: func(o *encodeOpts) { o.snake = true },
	}
}

// Format selects the document format for Unmarshal and Marshal.
func Format(f format.Format) Option {
	return bothFunc{
		dec: func(o *decodeOpts) { o.parse = append(o.parse, parse.ParseFormat(f)) },
		enc: func(o *encodeOpts) { o.encode = append(o.encode, encode.EncodeFormat(f)) },
	}
}

// InputFormat selects the document format for Unmarshal.
func InputFormat(f format.Format) DecodeOption {
	return WithParseOptions(parse.ParseFormat(f))
}

// OutputFormat selects the document format for Marshal.
func OutputFormat(f format.Format) EncodeOption {
	return WithEncodeOptions(encode.EncodeFormat(f))
}

func WithParseOptions(opts ...parse.ParseOption) DecodeOption {
	return decodeFunc(func(o *decodeOpts) { o.parse = append(o.parse, opts...) })
}

func WithEncodeOptions(opts ...encode.EncodeOption) EncodeOption {
	return encodeFunc(func(o *encodeOpts) { o.encode = append(o.encode, opts...) })
}

// Wire makes Marshal produce compact JSON.
func Wire() EncodeOption {
	return WithEncodeOptions(encode.EncodeWire(true))
}

// DisallowUnknownKeys makes the derived codec reject object keys that no
// struct field maps to.
func DisallowUnknownKeys() DecodeOption {
	return decodeFunc(func(o *decodeOpts) { o.strict = true })
}

func newDecodeOpts(opts []DecodeOption) *decodeOpts {
	res := &decodeOpts{}
	for _, o := range opts {
		o.applyDecode(res)
	}
	return res
}

func newEncodeOpts(opts []EncodeOption) *encodeOpts {
	res := &encodeOpts{}
	for _, o := range opts {
		o.applyEncode(res)
	}
	return res
}
