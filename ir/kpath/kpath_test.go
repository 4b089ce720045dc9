package kpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

func TestParseKPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *KPath
		wantErr bool
	}{
		{
			name:  "empty path",
			input: "",
			want:  nil,
		},
		{
			name:  "simple object path",
			input: "a",
			want:  &KPath{Field: stringPtr("a")},
		},
		{
			name:  "nested object path",
			input: "a.b.c",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b"),
					Next:  &KPath{Field: stringPtr("c")},
				},
			},
		},
		{
			name:  "array index",
			input: "a[0]",
			want: &KPath{
				Field: stringPtr("a"),
				Next:  &KPath{Index: intPtr(0)},
			},
		},
		{
			name:  "leading index",
			input: "[3].b",
			want: &KPath{
				Index: intPtr(3),
				Next:  &KPath{Field: stringPtr("b")},
			},
		},
		{
			name:  "quoted field",
			input: `a."b.c"[1]`,
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b.c"),
					Next:  &KPath{Index: intPtr(1)},
				},
			},
		},
		{name: "unterminated index", input: "a[1", wantErr: true},
		{name: "negative index", input: "a[-1]", wantErr: true},
		{name: "leading dot", input: ".a", wantErr: true},
		{name: "trailing dot", input: "a.", wantErr: true},
		{name: "double dot", input: "a..b", wantErr: true},
		{name: "unterminated quote", input: `a."b`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestKPathString(t *testing.T) {
	var root *KPath
	tests := []struct {
		path *KPath
		want string
	}{
		{root, ""},
		{root.WithField("route").WithIndex(2).WithField("departure_time").WithField("proposed"), "route[2].departure_time.proposed"},
		{root.WithIndex(0).WithIndex(1), "[0][1]"},
		{root.WithField("a b").WithField(""), `"a b".""`},
	}
	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := Parse(tt.want)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.want, err)
			continue
		}
		if !back.Equal(tt.path) {
			t.Errorf("Parse(%q) = %v, not equal to original", tt.want, back)
		}
	}
}

func TestAppendDoesNotModify(t *testing.T) {
	base := NewField("a")
	x := base.WithField("b")
	y := base.WithIndex(1)
	if base.Len() != 1 {
		t.Errorf("base modified: %s", base)
	}
	if x.String() != "a.b" || y.String() != "a[1]" {
		t.Errorf("got %s and %s", x, y)
	}
	if got := x.Parent(); !got.Equal(base) {
		t.Errorf("Parent() = %s, want %s", got, base)
	}
	if got := x.Last().SegmentString(); got != "b" {
		t.Errorf("Last() = %s, want b", got)
	}
}
