package flightschool

import (
	"fmt"

	"github.com/signadot/codable/codec"
	"github.com/signadot/codable/temporal"
)

type FlightRules int

const (
	Visual FlightRules = iota
	Instrument
)

func (r FlightRules) MarshalText() ([]byte, error) {
	switch r {
	case Visual:
		return []byte("VFR"), nil
	case Instrument:
		return []byte("IFR"), nil
	}
	return nil, fmt.Errorf("unknown flight rules %d", int(r))
}

func (r *FlightRules) UnmarshalText(d []byte) error {
	switch string(d) {
	case "VFR":
		*r = Visual
	case "IFR":
		*r = Instrument
	default:
		return fmt.Errorf("unknown flight rules %q", d)
	}
	return nil
}

func (r FlightRules) String() string {
	d, err := r.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// FlightPlan keeps its departure times in a private map keyed by "proposed"
// and "actual"; only that map is on the wire, under departure_time.
type FlightPlan struct {
	Aircraft    Aircraft
	Route       []string
	FlightRules FlightRules
	Remarks     *string

	departureDates map[string]temporal.Instant
}

var flightPlanKeys = codec.Keys(
	"aircraft", "aircraft",
	"route", "route",
	"flightRules", "flight_rules",
	"departureDates", "departure_time",
	"remarks", "remarks",
)

func NewFlightPlan(a Aircraft, route []string, rules FlightRules, departures map[string]temporal.Instant, remarks *string) FlightPlan {
	return FlightPlan{
		Aircraft:       a,
		Route:          route,
		FlightRules:    rules,
		Remarks:        remarks,
		departureDates: departures,
	}
}

func (p FlightPlan) ProposedDepartureDate() (temporal.Instant, bool) {
	i, ok := p.departureDates["proposed"]
	return i, ok
}

func (p FlightPlan) ActualDepartureDate() (temporal.Instant, bool) {
	i, ok := p.departureDates["actual"]
	return i, ok
}

func (p *FlightPlan) DecodeFrom(d *codec.Decoder) error {
	kv, err := d.Mapping(flightPlanKeys)
	if err != nil {
		return err
	}
	var res FlightPlan
	if res.Aircraft, err = codec.Required[Aircraft](kv, "aircraft"); err != nil {
		return err
	}
	if res.Route, err = codec.Required[[]string](kv, "route"); err != nil {
		return err
	}
	if res.FlightRules, err = codec.Required[FlightRules](kv, "flightRules"); err != nil {
		return err
	}
	if res.departureDates, err = codec.Required[map[string]temporal.Instant](kv, "departureDates"); err != nil {
		return err
	}
	if res.Remarks, err = codec.Optional[string](kv, "remarks"); err != nil {
		return err
	}
	*p = res
	return nil
}

func (p FlightPlan) EncodeTo(e *codec.Encoder) error {
	ks := e.Mapping(flightPlanKeys)
	if err := ks.Write("aircraft", p.Aircraft); err != nil {
		return err
	}
	if err := ks.Write("route", p.Route); err != nil {
		return err
	}
	if err := ks.Write("flightRules", p.FlightRules); err != nil {
		return err
	}
	if err := ks.Write("departureDates", p.departureDates); err != nil {
		return err
	}
	return ks.WriteOptional("remarks", p.Remarks)
}

// DepartureTimes is the departure_time object of a flight that has left:
// both times are required.
type DepartureTimes struct {
	Proposed temporal.Instant `json:"proposed"`
	Actual   temporal.Instant `json:"actual"`
}

// FlightRecord is a flight plan filed after departure.
type FlightRecord struct {
	Aircraft      Aircraft       `json:"aircraft"`
	Route         []string       `json:"route"`
	FlightRules   FlightRules    `json:"flight_rules"`
	DepartureTime DepartureTimes `json:"departure_time"`
	Remarks       *string        `json:"remarks"`
}
