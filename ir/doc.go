// Package ir provides the in-memory value model for JSON documents.
//
// # Overview
//
// A [Node] is a recursive tagged union: the Type field selects which of the
// other fields carry the value.
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Int64 for integers fitting in 64 bits, otherwise Float64;
//     Number holds the literal when neither can represent it
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields[i] is the (string) key for Values[i]
//
// Nodes carry no parent pointers and the codec never mutates a node after it
// is built, so subtrees may be shared between trees.
//
// # Creating Nodes
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "manufacturer", Val: ir.FromString("Airbus")},
//	    {Key: "seats", Val: ir.FromInt(532)},
//	})
//
// [FromMap] sorts keys; [FromKeyVals] keeps the given order.
//
// # Comparing Nodes
//
// [Equal] and [Compare] treat objects as unordered sets of entries and
// compare numbers by value, so an object read back from text equals the one
// that was written regardless of key order.
//
// # Navigating Nodes
//
// [Node.GetKPath] resolves a kinded path such as "route[1]" or
// "departure_time.proposed" (see package kpath).
package ir
