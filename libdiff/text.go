package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Text returns a line diff of from and to: removed lines are prefixed with
// "-", added lines with "+" and unchanged lines with a space. It returns ""
// when the texts are equal.
func Text(from, to string) string {
	if from == to {
		return ""
	}
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	buf := strings.Builder{}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}
