package codec

import (
	"maps"
	"strings"
	"unicode"
)

// CodingKeys maps field names to the keys used on the wire. Names without
// an entry are used as is. The same table governs decoding and encoding
// unless it is marked DecodeOnly.
type CodingKeys struct {
	names      map[string]string
	fn         func(string) string
	decodeOnly bool
}

// Keys returns a table from name, key pairs.
func Keys(pairs ...string) CodingKeys {
	if len(pairs)%2 != 0 {
		panic("codec.Keys: odd number of arguments")
	}
	names := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		names[pairs[i]] = pairs[i+1]
	}
	return CodingKeys{names: names}
}

// KeysFunc returns a table computing keys from names with f.
func KeysFunc(f func(string) string) CodingKeys {
	return CodingKeys{fn: f}
}

// DecodeOnly marks the table as applying only to decoding. Encoder.Mapping
// ignores such tables, so the written keys are the plain names. This is the
// only way to make a type's key mapping asymmetric.
func (k CodingKeys) DecodeOnly() CodingKeys {
	k.names = maps.Clone(k.names)
	k.decodeOnly = true
	return k
}

func (k CodingKeys) IsDecodeOnly() bool { return k.decodeOnly }

// Wire returns the key for name.
func (k CodingKeys) Wire(name string) string {
	if key, ok := k.names[name]; ok {
		return key
	}
	if k.fn != nil {
		return k.fn(name)
	}
	return name
}

type keyChain []CodingKeys

func (c keyChain) wire(name string) string {
	for _, k := range c {
		if key, ok := k.names[name]; ok {
			return key
		}
	}
	for _, k := range c {
		if k.fn != nil {
			return k.fn(name)
		}
	}
	return name
}

func encodeKeys(keys []CodingKeys) keyChain {
	res := make(keyChain, 0, len(keys))
	for _, k := range keys {
		if !k.decodeOnly {
			res = append(res, k)
		}
	}
	return res
}

// SnakeCase converts a Go identifier such as "FlightRules" or "TailID" to
// "flight_rules" or "tail_id".
func SnakeCase(name string) string {
	rs := []rune(name)
	buf := strings.Builder{}
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := rs[i-1]
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					buf.WriteByte('_')
				}
			}
			buf.WriteRune(unicode.ToLower(r))
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String()
}
