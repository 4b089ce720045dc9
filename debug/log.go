package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/ir/kpath"
)

func render(x *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x, buf, encode.EncodeWire(true)); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", x)
	}
	return buf.String()
}

// Logf writes a formatted debug line to stderr. Node and path arguments are
// rendered in their text form.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = render(x)
		case *kpath.KPath:
			if x == nil {
				args[i] = "<root>"
			} else {
				args[i] = x.String()
			}
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
