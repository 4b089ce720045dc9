package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/codable/codec"
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/flightschool"
	"github.com/signadot/codable/ir"

	"github.com/scott-cotton/cli"
)

// recoder decodes node into a record type and encodes the record back.
type recoder func(node *ir.Node, dOpts []codec.DecodeOption, eOpts []codec.EncodeOption) (*ir.Node, error)

func recoderOf[T any]() recoder {
	return func(node *ir.Node, dOpts []codec.DecodeOption, eOpts []codec.EncodeOption) (*ir.Node, error) {
		var v T
		if err := codec.DecodeNode(node, &v, dOpts...); err != nil {
			return nil, err
		}
		return codec.EncodeNode(v, eOpts...)
	}
}

var recoders = map[string]recoder{
	"plane":        recoderOf[flightschool.Plane](),
	"planes":       recoderOf[[]flightschool.Plane](),
	"aircraft":     recoderOf[flightschool.Aircraft](),
	"flightplan":   recoderOf[flightschool.FlightPlan](),
	"flightrecord": recoderOf[flightschool.FlightRecord](),
	"route":        recoderOf[flightschool.Route](),
	"sightings":    recoderOf[[]flightschool.Sighting](),
}

func recoderNames() string {
	names := make([]string, 0, len(recoders))
	for name := range recoders {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		cfg.Decode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	rc, ok := recoders[strings.ToLower(cfg.Type)]
	if !ok {
		return fmt.Errorf("%w: -type must be one of %s, got %q", cli.ErrUsage, recoderNames(), cfg.Type)
	}
	dOpts, eOpts, err := cfg.codecOpts()
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return eachObjFile(cc, args, cfg.parseOpts(), func(name string, node *ir.Node) error {
		res, err := rc(node, dOpts, eOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return encode.Encode(res, cc.Out, opts...)
	})
}
