package codec

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/codable/format"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/parse"
	"github.com/signadot/codable/temporal"
)

type engine struct {
	Maker string `json:"maker"`
	Count int    `json:"count"`
}

type base struct {
	ID   string `json:"id"`
	Note string `json:"note,omitempty"`
}

type craft struct {
	base
	Name     string            `json:"name"`
	Engines  []engine          `json:"engines"`
	Wingspan float64           `json:"wingspan"`
	Ceiling  *int              `json:"ceiling"`
	Tags     map[string]string `json:"tags,omitempty"`
	Extra    any               `json:"extra"`
	Raw      *ir.Node          `json:"raw"`
	Skip     string            `json:"-"`
	Seats    uint8
	hidden   int
}

func intPtr(i int) *int { return &i }

func TestDecodeDerived(t *testing.T) {
	in := `{
  "id": "N1",
  "name": "Otter",
  "engines": [{"maker": "PW", "count": 1}],
  "wingspan": 19.8,
  "ceiling": 25000,
  "extra": {"a": [1, "x", null]},
  "raw": {"keep": true},
  "Skip": "ignored",
  "Seats": 19,
  "unknown": 1
}`
	var got craft
	if err := Unmarshal([]byte(in), &got); err != nil {
		t.Fatal(err)
	}
	want := craft{
		base:     base{ID: "N1"},
		Name:     "Otter",
		Engines:  []engine{{Maker: "PW", Count: 1}},
		Wingspan: 19.8,
		Ceiling:  intPtr(25000),
		Extra:    map[string]any{"a": []any{int64(1), "x", nil}},
		Seats:    19,
	}
	raw := got.Raw
	got.Raw = nil
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(craft{}, base{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if raw == nil || !ir.Equal(raw, ir.FromKeyVals([]ir.KeyVal{{Key: "keep", Val: ir.FromBool(true)}})) {
		t.Errorf("raw node not passed through: %+v", raw)
	}
}

func TestDecodeOptionalAndNull(t *testing.T) {
	var got craft
	in := `{"id": "N2", "name": "Cub", "engines": [], "wingspan": 10, "ceiling": null, "Seats": 2}`
	if err := Unmarshal([]byte(in), &got); err != nil {
		t.Fatal(err)
	}
	if got.Ceiling != nil || got.Extra != nil || got.Raw != nil {
		t.Errorf("optional fields set: %+v", got)
	}
	if got.Wingspan != 10 {
		t.Errorf("wingspan %v", got.Wingspan)
	}
}

type manifest struct {
	Legs []string       `json:"legs"`
	Crew map[string]int `json:"crew"`
	Note *string        `json:"note"`
}

func TestNullCollections(t *testing.T) {
	got := manifest{Legs: []string{"x"}, Crew: map[string]int{"a": 1}}
	if err := Unmarshal([]byte(`{"legs": null, "crew": null}`), &got); err != nil {
		t.Fatal(err)
	}
	if got.Legs != nil || got.Crew != nil {
		t.Errorf("null did not clear collections: %+v", got)
	}
	for _, m := range []manifest{{}, {Legs: []string{}, Crew: map[string]int{}}} {
		data, err := Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		var back manifest
		if err := Unmarshal(data, &back); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if diff := cmp.Diff(m, back); diff != "" {
			t.Errorf("round trip of %s (-want +got):\n%s", data, diff)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		dst  any
		kind error
		path string
	}{
		{
			name: "missing required",
			in:   `{"id": "x", "engines": [], "wingspan": 1, "Seats": 1}`,
			dst:  &craft{},
			kind: ErrKeyMissing,
			path: "name",
		},
		{
			name: "nested mismatch",
			in:   `{"id": "x", "name": "n", "engines": [{"maker": "a", "count": 1}, {"maker": 2, "count": 1}], "wingspan": 1, "Seats": 1}`,
			dst:  &craft{},
			kind: ErrTypeMismatch,
			path: "engines[1].maker",
		},
		{
			name: "fraction into int",
			in:   `{"maker": "a", "count": 1.5}`,
			dst:  &engine{},
			kind: ErrTypeMismatch,
			path: "count",
		},
		{
			name: "overflow",
			in:   `{"id": "x", "name": "n", "engines": [], "wingspan": 1, "Seats": 300}`,
			dst:  &craft{},
			kind: ErrTypeMismatch,
			path: "Seats",
		},
		{
			name: "null into required",
			in:   `{"maker": null, "count": 1}`,
			dst:  &engine{},
			kind: ErrTypeMismatch,
			path: "maker",
		},
		{
			name: "float64 overflow",
			in:   `{"v": 1e400}`,
			dst:  &map[string]float64{},
			kind: ErrTypeMismatch,
			path: "v",
		},
		{
			name: "float32 overflow",
			in:   `{"v": 1e39}`,
			dst:  &map[string]float32{},
			kind: ErrTypeMismatch,
			path: "v",
		},
		{
			name: "not an object",
			in:   `[1]`,
			dst:  &engine{},
			kind: ErrTypeMismatch,
			path: "",
		},
		{
			name: "malformed timestamp",
			in:   `{"at": ["2018-04-20T14:15:00-07:00", "yesterday"]}`,
			dst:  &map[string][]temporal.Instant{},
			kind: ErrMalformedTimestamp,
			path: "at[1]",
		},
		{
			name: "parse",
			in:   `{"maker": "a",}`,
			dst:  &engine{},
			kind: ErrParse,
			path: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal([]byte(tt.in), tt.dst)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("got %v, want %v", err, tt.kind)
			}
			ce := &Error{}
			if !errors.As(err, &ce) {
				t.Fatalf("%T is not *Error", err)
			}
			if got := ce.Path.String(); got != tt.path {
				t.Errorf("path %q, want %q", got, tt.path)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	err := Unmarshal([]byte("{\n  \"maker\": tru\n}"), &engine{})
	pe := &parse.Error{}
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want a *parse.Error inside", err)
	}
	if pe.Line() != 2 || pe.Col() != 12 {
		t.Errorf("at %d:%d, want 2:12", pe.Line(), pe.Col())
	}
}

func TestDisallowUnknownKeys(t *testing.T) {
	err := Unmarshal([]byte(`{"maker": "a", "count": 1, "color": "red"}`), &engine{}, DisallowUnknownKeys())
	ce := &Error{}
	if !errors.As(err, &ce) || ce.Kind != TypeMismatch || ce.Path.String() != "color" {
		t.Errorf("got %v", err)
	}
}

func TestTopLevelArray(t *testing.T) {
	got, err := NewCodec[[]engine]().Unmarshal([]byte(`[{"maker": "a", "count": 1}, {"maker": "b", "count": 2}]`))
	if err != nil {
		t.Fatal(err)
	}
	want := []engine{{"a", 1}, {"b", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDates(t *testing.T) {
	type event struct {
		At   temporal.Instant `json:"at"`
		When time.Time        `json:"when"`
	}
	at := temporal.MustParse("2018-04-20T14:15:00-07:00")
	tests := []struct {
		strategy DateStrategy
		wire     string
	}{
		{ISO8601, `{"at":"2018-04-20T21:15:00Z","when":"2018-04-20T21:15:00Z"}`},
		{UnixSeconds, `{"at":1524258900,"when":1524258900}`},
		{UnixMillis, `{"at":1524258900000,"when":1524258900000}`},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			ev := event{At: at, When: at.Time()}
			d, err := Marshal(ev, EncodeDates(tt.strategy), Wire())
			if err != nil {
				t.Fatal(err)
			}
			if got := string(d); got != tt.wire+"\n" {
				t.Errorf("got %s, want %s", got, tt.wire)
			}
			var back event
			if err := Unmarshal(d, &back, DecodeDates(tt.strategy)); err != nil {
				t.Fatal(err)
			}
			if !back.At.Equal(at) || !back.When.Equal(at.Time()) {
				t.Errorf("round trip: %v %v", back.At, back.When)
			}
		})
	}
	var frac event
	err := Unmarshal([]byte(`{"at": 1.5, "when": -0.25}`), &frac, DecodeDates(UnixSeconds))
	if err != nil {
		t.Fatal(err)
	}
	if frac.At.UnixMilli() != 1500 || temporal.FromTime(frac.When).UnixMilli() != -250 {
		t.Errorf("fractional seconds: %v %v", frac.At, frac.When)
	}
}

func TestSnakeCaseKeys(t *testing.T) {
	type flight struct {
		FlightRules string
		TailID      string
		Remarks     *string `json:"notes"`
	}
	n, err := EncodeNode(flight{FlightRules: "VFR", TailID: "N1"}, SnakeCaseKeys())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"flight_rules", "tail_id"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	var back flight
	if err := DecodeNode(n, &back, SnakeCaseKeys()); err != nil {
		t.Fatal(err)
	}
	if back.FlightRules != "VFR" || back.TailID != "N1" {
		t.Errorf("got %+v", back)
	}
}

func TestInputFormats(t *testing.T) {
	yml := "maker: Lycoming\ncount: 2\n"
	var e engine
	if err := Unmarshal([]byte(yml), &e, InputFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	if e != (engine{"Lycoming", 2}) {
		t.Errorf("got %+v", e)
	}
	for _, f := range format.AllFormats() {
		d, err := Marshal(e, OutputFormat(f))
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		var back engine
		if err := Unmarshal(d, &back, InputFormat(f)); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if back != e {
			t.Errorf("%s: got %+v", f, back)
		}
	}
}

func TestAttempt(t *testing.T) {
	n, err := parse.ParseString(`{"maker": "a", "count": "many"}`)
	if err != nil {
		t.Fatal(err)
	}
	d := newDecoder(n, &decodeOpts{})
	e := engine{Maker: "keep"}
	if d.Attempt(&e) {
		t.Fatal("attempt succeeded")
	}
	if e.Maker != "keep" {
		t.Errorf("failed attempt modified destination: %+v", e)
	}
	m, ok := Attempt[map[string]any](d)
	if !ok || m["count"] != "many" {
		t.Errorf("got %v %v", m, ok)
	}
}

func TestKeyedView(t *testing.T) {
	n, err := parse.ParseString(`{"tail_number": "N1", "seats": 4, "remarks": null}`)
	if err != nil {
		t.Fatal(err)
	}
	d := newDecoder(n, &decodeOpts{})
	kv, err := d.Mapping(Keys("tail", "tail_number"))
	if err != nil {
		t.Fatal(err)
	}
	if kv.Len() != 3 || !kv.Contains("tail") || kv.Contains("tail_number_2") {
		t.Errorf("Len/Contains")
	}
	if diff := cmp.Diff([]string{"tail_number", "seats", "remarks"}, kv.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	tail, err := Required[string](kv, "tail")
	if err != nil || tail != "N1" {
		t.Errorf("tail %q %v", tail, err)
	}
	r, err := Optional[string](kv, "remarks")
	if err != nil || r != nil {
		t.Errorf("null remarks: %v %v", r, err)
	}
	r, err = Optional[string](kv, "absent")
	if err != nil || r != nil {
		t.Errorf("absent remarks: %v %v", r, err)
	}
	seats, err := OptionalOr(kv, "seats", 1)
	if err != nil || seats != 4 {
		t.Errorf("seats %d %v", seats, err)
	}
	def, err := OptionalOr(kv, "crew", 2)
	if err != nil || def != 2 {
		t.Errorf("crew %d %v", def, err)
	}
	if _, err := Optional[int](kv, "tail"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("optional with wrong type: %v", err)
	}
	if _, err := kv.Sequence("seats"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("sequence of number: %v", err)
	}
}

func TestDynamicKeys(t *testing.T) {
	n, err := parse.ParseString(`{"order": ["b", "a"], "a": {"maker": "A", "count": 1}, "b": {"maker": "B", "count": 2}}`)
	if err != nil {
		t.Fatal(err)
	}
	kv, err := newDecoder(n, &decodeOpts{}).Mapping()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DynamicKeys[engine](kv, []string{"b", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]engine{{"B", 2}, {"A", 1}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	_, err = DynamicKeys[engine](kv, []string{"a", "c"})
	ce := &Error{}
	if !errors.As(err, &ce) || ce.Kind != KeyMissing || ce.Path.String() != "c" {
		t.Errorf("got %v", err)
	}
}

func TestIndexedView(t *testing.T) {
	n, _ := parse.ParseString(`[1, 2, 3]`)
	iv, err := newDecoder(n, &decodeOpts{}).Sequence()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Each[int](iv)
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Errorf("Each: %v %v", got, err)
	}
	if _, err := iv.At(3); !errors.Is(err, ErrKeyMissing) {
		t.Errorf("At(3): %v", err)
	}
	if _, err := newDecoder(n, &decodeOpts{}).Mapping(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Mapping of array: %v", err)
	}
}

func TestPlanConflict(t *testing.T) {
	type dup struct {
		A string `json:"x"`
		B string `json:"x"`
	}
	err := Unmarshal([]byte(`{"x": "1"}`), &dup{})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("got %v", err)
	}
	type shadow struct {
		base
		ID int `json:"id"`
	}
	var s shadow
	if err := Unmarshal([]byte(`{"id": 7}`), &s); err != nil || s.ID != 7 {
		t.Errorf("outer field does not shadow embedded: %+v %v", s, err)
	}
}

type Avionics struct {
	Radio       string `json:"radio"`
	Transponder int    `json:"transponder"`
}

type equipped struct {
	Tail string `json:"tail"`
	*Avionics
}

func TestEmbeddedPointer(t *testing.T) {
	var got equipped
	if err := Unmarshal([]byte(`{"tail": "N1", "radio": "KX155"}`), &got); err != nil {
		t.Fatal(err)
	}
	want := equipped{Tail: "N1", Avionics: &Avionics{Radio: "KX155"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := Unmarshal([]byte(`{"tail": "N2"}`), &got); err != nil {
		t.Fatal(err)
	}
	if got.Avionics != nil {
		t.Errorf("embed allocated without fields: %+v", got.Avionics)
	}

	if s := wire(t, equipped{Tail: "N2"}); s != `{"tail":"N2"}`+"\n" {
		t.Errorf("nil embed encoded as %s", s)
	}
	if s := wire(t, want); s != `{"tail":"N1","radio":"KX155","transponder":0}`+"\n" {
		t.Errorf("embed encoded as %s", s)
	}
}

func TestDecodeReplaces(t *testing.T) {
	got := craft{
		base:    base{ID: "old", Note: "stale"},
		Tags:    map[string]string{"k": "v"},
		Ceiling: intPtr(1),
		Extra:   "old",
	}
	in := `{"id": "N3", "name": "Beaver", "engines": [], "wingspan": 14.6, "Seats": 7}`
	if err := Unmarshal([]byte(in), &got); err != nil {
		t.Fatal(err)
	}
	want := craft{base: base{ID: "N3"}, Name: "Beaver", Engines: []engine{}, Wingspan: 14.6, Seats: 7}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(craft{}, base{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
