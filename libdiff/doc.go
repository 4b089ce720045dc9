// Package libdiff computes structural differences between documents.
//
// A diff is a list of changes, each located by a path, that transforms one
// document into another when applied in order. Arrays are diffed element
// by element over a summary of each element, so an insertion in the middle
// of an array is a single change rather than a replacement of every
// element after it.
//
// Changes convert to RFC 6902 JSON Patch operations with ToJSONPatch, and
// Text renders a line diff of two encoded documents for display.
package libdiff
