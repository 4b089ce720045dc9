package main

import (
	"fmt"

	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/mergeop"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file argument", cli.ErrUsage)
	}
	if cfg.Merge && cfg.Reverse {
		return fmt.Errorf("%w: a merge patch cannot be reversed", cli.ErrUsage)
	}
	p, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding patch %s: %w", args[0], err)
	}
	if cfg.Reverse {
		if p, err = reverseJSONPatch(p); err != nil {
			return err
		}
	}
	opts := cfg.encOpts(cc.Out)
	return eachObjFile(cc, args[1:], cfg.parseOpts(), func(name string, doc *ir.Node) error {
		var (
			res *ir.Node
			err error
		)
		if cfg.Merge {
			res, err = mergeop.MergePatch(doc, p)
		} else {
			res, err = mergeop.JSONPatch(doc, p)
		}
		if err != nil {
			return fmt.Errorf("error patching %s: %w", name, err)
		}
		if err := encode.Encode(res, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		return nil
	})
}

// reverseJSONPatch reverses a patch made by diff -p. Such patches hold
// no removed values, so only add operations can be undone.
func reverseJSONPatch(p *ir.Node) (*ir.Node, error) {
	if p.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: json patch must be an array", cli.ErrUsage)
	}
	res := make([]*ir.Node, len(p.Values))
	for i, op := range p.Values {
		name := ir.Get(op, "op")
		path := ir.Get(op, "path")
		if name == nil || path == nil || name.String != "add" {
			return nil, fmt.Errorf("%w: cannot reverse operation %d", cli.ErrUsage, i)
		}
		res[len(res)-1-i] = ir.FromKeyVals([]ir.KeyVal{
			{Key: "op", Val: ir.FromString("remove")},
			{Key: "path", Val: path},
		})
	}
	return ir.FromSlice(res), nil
}
