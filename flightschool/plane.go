package flightschool

import "github.com/signadot/codable/codec"

// Plane uses the derived codec.
type Plane struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Seats        int    `json:"seats"`
}

type Aircraft struct {
	Identification string `json:"identification"`
	Color          string `json:"color"`
}

// Bird and Plane have no field in common, so a Sighting can tell them apart.
type Bird struct {
	Genus   string `json:"genus"`
	Species string `json:"species"`
}

// Sighting is something seen in the sky. An object with the fields of both
// Bird and Plane decodes as a Bird.
type Sighting = codec.Either[Bird, Plane]
