package parse

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/signadot/codable/ir"
	"github.com/vmihailenco/msgpack/v5"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, &Error{Err: fmt.Errorf("%w: yaml: %w", ErrParse, err)}
	}
	return FromValue(v)
}

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

func parseCBOR(d []byte) (*ir.Node, error) {
	var v any
	if err := cborDecMode.Unmarshal(d, &v); err != nil {
		return nil, &Error{Err: fmt.Errorf("%w: cbor: %w", ErrParse, err)}
	}
	return FromValue(v)
}

func parseMsgPack(d []byte) (*ir.Node, error) {
	r := bytes.NewReader(d)
	dec := msgpack.NewDecoder(r)
	dec.UseLooseInterfaceDecoding(true)
	v, err := dec.DecodeInterface()
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("%w: msgpack: %w", ErrParse, err)}
	}
	if r.Len() != 0 {
		return nil, &Error{Err: fmt.Errorf("%w: %d bytes after msgpack value", ErrTrailing, r.Len())}
	}
	return FromValue(v)
}
