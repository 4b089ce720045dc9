package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/codable/codec"
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/format"
	"github.com/signadot/codable/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	ASCII   bool `cli:"name=ascii desc='escape non-ascii characters in strings'"`
	JSONC   bool `cli:"name=jsonc desc='accept comments and trailing commas in json input'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat() format.Format {
	fmat := format.JSONFormat
	if cfg.Y {
		fmat = format.YAMLFormat
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return fmat
}

func (cfg *MainConfig) outFormat() format.Format {
	fmat := format.JSONFormat
	if cfg.Y {
		fmat = format.YAMLFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{
		parse.ParseFormat(cfg.inFormat()),
	}
	if cfg.JSONC {
		res = append(res, parse.ParseJSONC())
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := cfg.outFormat()
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeASCII(cfg.ASCII),
	}
	if fmat.IsJSON() && cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: -color forces it, and
// otherwise it is on when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Patch   bool `cli:"name=p desc='output the diff as a json patch'"`
	Merge   bool `cli:"name=m desc='output the diff as a merge patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge   bool `cli:"name=m desc='the patch is a merge patch'"`
	Reverse bool `cli:"name=r desc='the patch is a diff to apply reversed'"`

	Patch *cli.Command
}

type DecodeConfig struct {
	*MainConfig
	Type   string `cli:"name=type desc='record type to decode'"`
	Dates  string `cli:"name=dates desc='date strategy: iso8601, unix-seconds, unix-millis'"`
	Snake  bool   `cli:"name=snake desc='snake_case keys for untagged fields'"`
	Strict bool   `cli:"name=strict desc='reject unknown keys'"`

	Decode *cli.Command
}

func (cfg *DecodeConfig) codecOpts() ([]codec.DecodeOption, []codec.EncodeOption, error) {
	var dates codec.DateStrategy
	switch cfg.Dates {
	case "iso8601", "":
		dates = codec.ISO8601
	case "unix-seconds", "s":
		dates = codec.UnixSeconds
	case "unix-millis", "ms":
		dates = codec.UnixMillis
	default:
		return nil, nil, fmt.Errorf("%w: unknown date strategy %q", cli.ErrUsage, cfg.Dates)
	}
	dOpts := []codec.DecodeOption{codec.Dates(dates)}
	eOpts := []codec.EncodeOption{codec.Dates(dates)}
	if cfg.Snake {
		dOpts = append(dOpts, codec.SnakeCaseKeys())
		eOpts = append(eOpts, codec.SnakeCaseKeys())
	}
	if cfg.Strict {
		dOpts = append(dOpts, codec.DisallowUnknownKeys())
	}
	return dOpts, eOpts, nil
}
