package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/codable/encode"
	"github.com/signadot/codable/ir/kpath"
	"github.com/signadot/codable/parse"
)

type change struct {
	Op    string
	Path  string
	Value string
}

func summarize(cs []Change) []change {
	res := make([]change, len(cs))
	for i, c := range cs {
		res[i] = change{Op: c.Op.String(), Path: JSONPointer(c.Path)}
		if c.To != nil {
			res[i].Value = encode.MustString(c.To, encode.EncodeWire(true))
		}
	}
	return res
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []change
	}{
		{"equal", `{"a": [1, {"b": null}]}`, `{"a": [1, {"b": null}]}`, []change{}},
		{"scalar", `{"seats": 4}`, `{"seats": 6}`, []change{{"replace", "/seats", "6"}}},
		{"type", `{"seats": 4}`, `{"seats": "4"}`, []change{{"replace", "/seats", `"4"`}}},
		{
			"keys",
			`{"a": 1, "b": 2}`,
			`{"b": 2, "c": 3}`,
			[]change{{"remove", "/a", ""}, {"add", "/c", "3"}},
		},
		{"append", `[1, 2]`, `[1, 2, 3]`, []change{{"add", "/2", "3"}}},
		{"delete middle", `["KSQL", "KHAF", "KWVI"]`, `["KSQL", "KWVI"]`, []change{{"remove", "/1", ""}}},
		{"insert front", `["KWVI"]`, `["KSQL", "KWVI"]`, []change{{"add", "/0", `"KSQL"`}}},
		{
			"nested",
			`{"route": [{"code": "KSQL"}, {"code": "KWVI"}]}`,
			`{"route": [{"code": "KSQL"}, {"code": "KHAF"}]}`,
			[]change{{"replace", "/route/1/code", `"KHAF"`}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := parse.ParseString(tt.from)
			if err != nil {
				t.Fatal(err)
			}
			to, err := parse.ParseString(tt.to)
			if err != nil {
				t.Fatal(err)
			}
			got := summarize(Diff(from, to))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	from, _ := parse.ParseString(`{"a": [1, 2], "b": true}`)
	to, _ := parse.ParseString(`{"a": [1], "c": false}`)
	got := summarize(Reverse(Diff(from, to)))
	want := []change{
		{"remove", "/c", ""},
		{"add", "/b", "true"},
		{"add", "/a/1", "2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONPointer(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"a.b", "/a/b"},
		{"route[2].departure_time", "/route/2/departure_time"},
		{`"a/b"."m~n"`, "/a~1b/m~0n"},
	}
	for _, tt := range tests {
		if got := JSONPointer(kpath.MustParse(tt.path)); got != tt.want {
			t.Errorf("JSONPointer(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestToJSONPatch(t *testing.T) {
	from, _ := parse.ParseString(`{"a": 1, "b": 2}`)
	to, _ := parse.ParseString(`{"a": 5}`)
	got := encode.MustString(ToJSONPatch(Diff(from, to)), encode.EncodeWire(true))
	want := `[{"op":"replace","path":"/a","value":5},{"op":"remove","path":"/b"}]`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestText(t *testing.T) {
	from := "{\n  \"a\": 1,\n  \"b\": 2\n}\n"
	to := "{\n  \"a\": 1,\n  \"b\": 3\n}\n"
	want := " {\n   \"a\": 1,\n-  \"b\": 2\n+  \"b\": 3\n }\n"
	if got := Text(from, to); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if got := Text(from, from); got != "" {
		t.Errorf("equal texts: %q", got)
	}
}
