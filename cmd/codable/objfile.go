package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/parse"

	"github.com/scott-cotton/cli"
)

func readObjFile(cc *cli.Context, path string) ([]byte, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := readObjFile(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// eachObjFile calls f with the document in each of files, or with the
// document on stdin when there are none.
func eachObjFile(cc *cli.Context, files []string, opts []parse.ParseOption, f func(name string, node *ir.Node) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		node, err := getObjFile(cc, file, opts...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := f(file, node); err != nil {
			return err
		}
	}
	return nil
}
