// Package mergeop applies patches to documents: RFC 6902 JSON Patch
// operation lists and RFC 7386 JSON Merge Patch documents.
//
// Documents and patches are *ir.Node values; they are exchanged with the
// patch implementation as compact JSON.
package mergeop
