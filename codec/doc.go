// Package codec converts between Go values and documents.
//
// A type takes part either through the derived codec, which maps exported
// struct fields to keys by reflection, or by implementing Decodable and
// Encodable, which replace the derived codec for that type entirely.
//
// # Derived codec
//
// Fields are keyed by their identifier, or by the name in a json struct tag.
// The tag applies to both directions. Pointer and interface fields are
// optional, as are fields tagged omitempty; every other field is required
// and a missing key is a KeyMissing error. Embedded structs are flattened.
// Fields promoted through an exported embedded pointer are optional; the
// pointer is allocated when one of them is decoded and skipped on encode
// while nil. Decoding a struct replaces the whole value, so fields absent
// from the input end up zero.
//
//	type Plane struct {
//	    Manufacturer string `json:"manufacturer"`
//	    Model        string `json:"model"`
//	    Seats        int    `json:"seats"`
//	}
//
//	var p Plane
//	err := codec.Unmarshal(data, &p)
//
// # Custom codecs
//
// DecodeFrom reads through views that track the path of every value:
//
//	func (r *Route) DecodeFrom(d *codec.Decoder) error {
//	    kv, err := d.Mapping()
//	    if err != nil {
//	        return err
//	    }
//	    codes, err := codec.Required[[]string](kv, "points")
//	    if err != nil {
//	        return err
//	    }
//	    r.Points, err = codec.DynamicKeys[Airport](kv, codes)
//	    return err
//	}
//
// Key remapping is declared once with CodingKeys and passed to both
// Decoder.Mapping and Encoder.Mapping. A table marked DecodeOnly applies to
// decoding alone and is the one sanctioned way to break the symmetry.
//
// # Unions
//
// Either and OneOf decode by trying their variants in order; the first one
// that decodes wins. There is no tag on the wire.
//
// # Errors
//
// All errors are *Error values carrying a Kind and the path of the value
// that failed, such as route[2].departure_time.proposed. errors.Is matches
// the kind sentinels ErrTypeMismatch, ErrKeyMissing, ErrMalformedTimestamp,
// ErrNoMatchingVariant and ErrParse.
package codec
