// Package kpath provides kinded paths: the sequence of object keys and array
// indices locating a value inside a document.
//
// Kinded paths encode both navigation and structure type in the syntax:
//   - .field - Object field access
//   - [index] - Array index
//   - "field name" - quoted field, for keys containing path syntax
//
// # Usage
//
//	kp, err := kpath.Parse(`route[2].departure_time.proposed`)
//
//	// Build paths while descending
//	var p *kpath.KPath // root
//	p = p.WithField("route").WithIndex(2).WithField("departure_time")
//	fmt.Println(p) // route[2].departure_time
//
// A nil *KPath is the root path. Paths are values: Field and Index return new
// paths and never modify the receiver.
package kpath
