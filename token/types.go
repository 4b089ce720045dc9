package token

import (
	"fmt"
)

type TokenType int

const (
	TNull TokenType = iota
	TTrue
	TFalse
	TInteger
	TFloat
	TString
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TColon
	TComma
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TNull:    "TNull",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TInteger: "TInteger",
		TFloat:   "TFloat",
		TString:  "TString",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
		TColon:   "TColon",
		TComma:   "TComma",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the unquoted value of string tokens and the raw bytes of
// all other tokens.
func (t *Token) String() string {
	if t.Type == TString {
		return QuotedToString(t.Bytes)
	}
	return string(t.Bytes)
}

// IsValue reports whether t starts a JSON value.
func (t *Token) IsValue() bool {
	switch t.Type {
	case TColon, TComma, TRCurl, TRSquare:
		return false
	default:
		return true
	}
}
