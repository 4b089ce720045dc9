// Package flightschool holds the aviation record shapes used to exercise
// the codec: planes, flight plans with remapped keys and private departure
// times, routes whose airports sit under keys named by the data, and
// sightings that are either birds or planes.
package flightschool
