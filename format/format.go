package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	CBORFormat
	MsgPackFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
		"c":       CBORFormat,
		"cbor":    CBORFormat,
		"m":       MsgPackFormat,
		"msgpack": MsgPackFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case CBORFormat:
		return []byte("cbor"), nil
	case MsgPackFormat:
		return []byte("msgpack"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// IsBinary reports whether documents in f are not text.
func (f Format) IsBinary() bool { return f == CBORFormat || f == MsgPackFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case CBORFormat:
		return ".cbor"
	case MsgPackFormat:
		return ".msgpack"
	default:
		return ""
	}
}

// FromSuffix returns the format whose Suffix is ext, accepting ".yml".
func FromSuffix(ext string) (Format, bool) {
	if ext == ".yml" {
		return YAMLFormat, true
	}
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f, true
		}
	}
	return 0, false
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, YAMLFormat, CBORFormat, MsgPackFormat}
}
