package flightschool

import (
	"fmt"

	"github.com/signadot/codable/codec"
)

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Route lists the codes of its airports under "points"; each airport is
// stored under its code in the same object:
//
//	{
//	    "points": ["KSQL", "KWVI"],
//	    "KSQL": {"code": "KSQL", "name": "San Carlos Airport"},
//	    "KWVI": {"code": "KWVI", "name": "Watsonville Municipal Airport"}
//	}
type Route struct {
	Points []Airport
}

func (r *Route) DecodeFrom(d *codec.Decoder) error {
	kv, err := d.Mapping()
	if err != nil {
		return err
	}
	codes, err := codec.Required[[]string](kv, "points")
	if err != nil {
		return err
	}
	points, err := codec.DynamicKeys[Airport](kv, codes)
	if err != nil {
		return err
	}
	r.Points = points
	return nil
}

// EncodeTo fails when an airport code would collide with "points" or with
// another airport of the route.
func (r Route) EncodeTo(e *codec.Encoder) error {
	codes := make([]string, len(r.Points))
	seen := make(map[string]bool, len(r.Points))
	for i := range r.Points {
		code := r.Points[i].Code
		if code == "points" || seen[code] {
			return &codec.Error{
				Kind:    codec.TypeMismatch,
				Path:    e.Path().WithField("points").WithIndex(i),
				Message: fmt.Sprintf("airport code %q is not a usable key", code),
			}
		}
		seen[code] = true
		codes[i] = code
	}
	ks := e.Mapping()
	if err := ks.Write("points", codes); err != nil {
		return err
	}
	for _, a := range r.Points {
		if err := ks.Write(a.Code, a); err != nil {
			return err
		}
	}
	return nil
}
