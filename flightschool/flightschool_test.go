package flightschool

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/codable/codec"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/parse"
	"github.com/signadot/codable/temporal"
)

var instantEqual = cmp.Comparer(func(a, b temporal.Instant) bool { return a.Equal(b) })

func TestPlane(t *testing.T) {
	in := `{"manufacturer":"Airbus","model":"A380","seats":532}`
	var p Plane
	if err := codec.Unmarshal([]byte(in), &p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Plane{Manufacturer: "Airbus", Model: "A380", Seats: 532}, p); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	n, err := codec.EncodeNode(p)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := parse.ParseString(in)
	if !ir.Equal(n, want) {
		t.Errorf("re-encoded keys %v", n.Keys())
	}
}

func TestPlanes(t *testing.T) {
	in := `[
  {"manufacturer": "Cessna", "model": "172 Skyhawk", "seats": 4},
  {"manufacturer": "Piper", "model": "PA-28 Cherokee", "seats": 4}
]`
	got, err := codec.NewCodec[[]Plane]().Unmarshal([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Plane{
		{Manufacturer: "Cessna", Model: "172 Skyhawk", Seats: 4},
		{Manufacturer: "Piper", Model: "PA-28 Cherokee", Seats: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

const flightPlanJSON = `{
  "aircraft": {"identification": "NA12345", "color": "Blue/White"},
  "route": ["KTTD", "KHIO"],
  "flight_rules": "IFR",
  "departure_time": {
    "proposed": "2018-04-20T14:15:00-07:00",
    "actual": "2018-04-20T14:20:00-07:00"
  },
  "remarks": null
}`

func TestFlightPlan(t *testing.T) {
	var fp FlightPlan
	if err := codec.Unmarshal([]byte(flightPlanJSON), &fp); err != nil {
		t.Fatal(err)
	}
	if fp.Aircraft != (Aircraft{Identification: "NA12345", Color: "Blue/White"}) {
		t.Errorf("aircraft %+v", fp.Aircraft)
	}
	if diff := cmp.Diff([]string{"KTTD", "KHIO"}, fp.Route); diff != "" {
		t.Errorf("route (-want +got):\n%s", diff)
	}
	if fp.FlightRules != Instrument || fp.Remarks != nil {
		t.Errorf("rules %s remarks %v", fp.FlightRules, fp.Remarks)
	}
	proposed, ok := fp.ProposedDepartureDate()
	if !ok || proposed.Unix() != 1524258900 {
		t.Errorf("proposed %v %v", proposed, ok)
	}
	actual, ok := fp.ActualDepartureDate()
	if !ok || actual.Unix() != 1524259200 {
		t.Errorf("actual %v %v", actual, ok)
	}

	d, err := codec.Marshal(fp)
	if err != nil {
		t.Fatal(err)
	}
	var back FlightPlan
	if err := codec.Unmarshal(d, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fp, back, cmp.AllowUnexported(FlightPlan{}), instantEqual); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	n, _ := parse.Parse(d)
	if got := n.Keys(); !cmp.Equal(got, []string{"aircraft", "route", "flight_rules", "departure_time"}) {
		t.Errorf("encoded keys %v", got)
	}
}

const departedJSON = `{
  "aircraft": {"identification": "NA12345", "color": "Blue/White"},
  "route": ["KTTD"],
  "flight_rules": "VFR",
  "departure_time": {"proposed": "2018-04-20T14:15:00-07:00"},
  "remarks": "pattern work"
}`

func TestNilCollectionsRoundTrip(t *testing.T) {
	ac := Aircraft{Identification: "NA12345", Color: "Blue/White"}
	rec := FlightRecord{Aircraft: ac, FlightRules: Visual}
	data, err := codec.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var recBack FlightRecord
	if err := codec.Unmarshal(data, &recBack); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	if diff := cmp.Diff(rec, recBack, instantEqual); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	fp := NewFlightPlan(ac, nil, Instrument, nil, nil)
	data, err = codec.Marshal(fp)
	if err != nil {
		t.Fatal(err)
	}
	var fpBack FlightPlan
	if err := codec.Unmarshal(data, &fpBack); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	if diff := cmp.Diff(fp, fpBack, cmp.AllowUnexported(FlightPlan{}), instantEqual); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingActualDeparture(t *testing.T) {
	var fp FlightPlan
	if err := codec.Unmarshal([]byte(departedJSON), &fp); err != nil {
		t.Fatal(err)
	}
	if _, ok := fp.ActualDepartureDate(); ok {
		t.Error("actual departure present")
	}
	if fp.Remarks == nil || *fp.Remarks != "pattern work" {
		t.Errorf("remarks %v", fp.Remarks)
	}

	var rec FlightRecord
	err := codec.Unmarshal([]byte(departedJSON), &rec)
	ce := &codec.Error{}
	if !errors.As(err, &ce) || ce.Kind != codec.KeyMissing {
		t.Fatalf("got %v, want KeyMissing", err)
	}
	if got := ce.Path.String(); got != "departure_time.actual" {
		t.Errorf("path %q", got)
	}
}

func TestFlightPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind codec.Kind
		path string
	}{
		{
			name: "unknown rules",
			in:   `{"aircraft": {"identification": "N1", "color": "red"}, "route": [], "flight_rules": "SVFR", "departure_time": {}}`,
			kind: codec.TypeMismatch,
			path: "flight_rules",
		},
		{
			name: "malformed departure",
			in:   `{"aircraft": {"identification": "N1", "color": "red"}, "route": [], "flight_rules": "VFR", "departure_time": {"proposed": "2018-04-20 14:15"}}`,
			kind: codec.MalformedTimestamp,
			path: "departure_time.proposed",
		},
		{
			name: "route element",
			in:   `{"aircraft": {"identification": "N1", "color": "red"}, "route": ["KTTD", 7], "flight_rules": "VFR", "departure_time": {}}`,
			kind: codec.TypeMismatch,
			path: "route[1]",
		},
		{
			name: "missing aircraft color",
			in:   `{"aircraft": {"identification": "N1"}, "route": [], "flight_rules": "VFR", "departure_time": {}}`,
			kind: codec.KeyMissing,
			path: "aircraft.color",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fp FlightPlan
			err := codec.Unmarshal([]byte(tt.in), &fp)
			ce := &codec.Error{}
			if !errors.As(err, &ce) {
				t.Fatalf("got %v", err)
			}
			if ce.Kind != tt.kind || ce.Path.String() != tt.path {
				t.Errorf("got %s at %q, want %s at %q", ce.Kind, ce.Path, tt.kind, tt.path)
			}
		})
	}
}

const routeJSON = `{
  "points": ["KSQL", "KWVI"],
  "KWVI": {"code": "KWVI", "name": "Watsonville Municipal Airport"},
  "KSQL": {"code": "KSQL", "name": "San Carlos Airport"}
}`

func TestRoute(t *testing.T) {
	var r Route
	if err := codec.Unmarshal([]byte(routeJSON), &r); err != nil {
		t.Fatal(err)
	}
	want := Route{Points: []Airport{
		{Code: "KSQL", Name: "San Carlos Airport"},
		{Code: "KWVI", Name: "Watsonville Municipal Airport"},
	}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	n, err := codec.EncodeNode(r)
	if err != nil {
		t.Fatal(err)
	}
	orig, _ := parse.ParseString(routeJSON)
	if !ir.Equal(n, orig) {
		t.Errorf("re-encoded route differs, keys %v", n.Keys())
	}

	err = codec.Unmarshal([]byte(`{"points": ["KSQL", "KWVI"], "KSQL": {"code": "KSQL", "name": "x"}}`), &r)
	ce := &codec.Error{}
	if !errors.As(err, &ce) || ce.Kind != codec.KeyMissing || ce.Path.String() != "KWVI" {
		t.Errorf("got %v", err)
	}

	for _, bad := range []Route{
		{Points: []Airport{{Code: "KSQL"}, {Code: "points"}}},
		{Points: []Airport{{Code: "KSQL"}, {Code: "KSQL", Name: "again"}}},
	} {
		_, err := codec.EncodeNode(bad)
		ce := &codec.Error{}
		if !errors.As(err, &ce) || ce.Kind != codec.TypeMismatch || ce.Path.String() != "points[1]" {
			t.Errorf("encode %+v: got %v", bad, err)
		}
	}
}

func TestSightings(t *testing.T) {
	in := `[
  {"genus": "Columba", "species": "livia"},
  {"manufacturer": "Cessna", "model": "172 Skyhawk", "seats": 4},
  {"genus": "Aquila", "species": "chrysaetos", "manufacturer": "Boeing", "model": "747", "seats": 416}
]`
	var got []Sighting
	if err := codec.Unmarshal([]byte(in), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d sightings", len(got))
	}
	if b, ok := got[0].Left(); !ok || b.Genus != "Columba" {
		t.Errorf("[0] = %v", got[0].Value())
	}
	if p, ok := got[1].Right(); !ok || p.Seats != 4 {
		t.Errorf("[1] = %v", got[1].Value())
	}
	// shapes both variants; the bird is tried first.
	if b, ok := got[2].Left(); !ok || b.Species != "chrysaetos" {
		t.Errorf("[2] = %v", got[2].Value())
	}

	d, err := codec.Marshal(got[:2])
	if err != nil {
		t.Fatal(err)
	}
	var back []Sighting
	if err := codec.Unmarshal(d, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got[:2], back, cmp.AllowUnexported(Sighting{})); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	err = codec.Unmarshal([]byte(`[{"genus": "Columba", "species": "livia"}, {"genus": "Columba"}]`), &got)
	ce := &codec.Error{}
	if !errors.As(err, &ce) || ce.Kind != codec.NoMatchingVariant || ce.Path.String() != "[1]" {
		t.Errorf("got %v", err)
	}
}
