package main

import (
	"fmt"

	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path, err := kpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts := cfg.encOpts(cc.Out)
	return eachObjFile(cc, args[1:], cfg.parseOpts(), func(name string, node *ir.Node) error {
		res, err := node.GetPath(path)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", args[0], name, err)
		}
		return encode.Encode(res, cc.Out, opts...)
	})
}
