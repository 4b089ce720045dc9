package main

import (
	"fmt"

	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return eachObjFile(cc, args, cfg.parseOpts(), func(name string, node *ir.Node) error {
		if err := encode.Encode(node, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", name, err)
		}
		return nil
	})
}
