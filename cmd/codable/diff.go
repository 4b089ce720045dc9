package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/libdiff"
	"github.com/signadot/codable/mergeop"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Patch && cfg.Merge {
		return fmt.Errorf("%w: -p and -m are exclusive", cli.ErrUsage)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Reverse {
		a, b = b, a
	}
	differs, err := diffInputs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return false, nil
	}
	var out *ir.Node
	switch {
	case cfg.Patch:
		out = libdiff.ToJSONPatch(changes)
	case cfg.Merge:
		mp, err := mergeop.CreateMergePatch(a, b)
		if err != nil {
			return false, err
		}
		out = mp
	}
	if out != nil {
		if err := encode.Encode(out, w, cfg.encOpts(w)...); err != nil {
			return false, err
		}
		return true, nil
	}
	at, err := textOf(a)
	if err != nil {
		return false, err
	}
	bt, err := textOf(b)
	if err != nil {
		return false, err
	}
	text := libdiff.Text(at, bt)
	if cfg.useColor(w) {
		text = colorLines(text)
	}
	_, err = io.WriteString(w, text)
	return true, err
}

func textOf(node *ir.Node) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func colorLines(text string) string {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	del.EnableColor()
	ins.EnableColor()
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "-"):
			lines[i] = del.Sprint(body) + line[len(body):]
		case strings.HasPrefix(line, "+"):
			lines[i] = ins.Sprint(body) + line[len(body):]
		}
	}
	return strings.Join(lines, "")
}
