package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", f, err)
		}
		if got != f {
			t.Errorf("ParseFormat(%q) = %v", f, got)
		}
		back, ok := FromSuffix(f.Suffix())
		if !ok || back != f {
			t.Errorf("FromSuffix(%q) = %v, %v", f.Suffix(), back, ok)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat(toml) = %v, want ErrBadFormat", err)
	}
	var f Format
	if err := f.UnmarshalText([]byte("y")); err != nil || f != YAMLFormat {
		t.Errorf("UnmarshalText(y) = %v, %v", f, err)
	}
	if !CBORFormat.IsBinary() || JSONFormat.IsBinary() {
		t.Error("IsBinary")
	}
}
