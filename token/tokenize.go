package token

import (
	"bytes"
)

// Tokenize appends the tokens of the JSON document src to dst.
//
// Tokenize checks lexical validity only: literals, numbers and string
// escapes. Structure is checked by the parser.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	posDoc := NewPosDoc(src)
	n := len(src)
	i := 0
	for i < n {
		c := src[i]
		switch c {
		case '\n':
			posDoc.nl(i)
			i++
			continue
		case ' ', '\t', '\r':
			i++
			continue
		}
		pos := posDoc.Pos(i)
		switch c {
		case '{':
			dst = append(dst, Token{Type: TLCurl, Pos: pos, Bytes: src[i : i+1]})
			i++
		case '}':
			dst = append(dst, Token{Type: TRCurl, Pos: pos, Bytes: src[i : i+1]})
			i++
		case '[':
			dst = append(dst, Token{Type: TLSquare, Pos: pos, Bytes: src[i : i+1]})
			i++
		case ']':
			dst = append(dst, Token{Type: TRSquare, Pos: pos, Bytes: src[i : i+1]})
			i++
		case ':':
			dst = append(dst, Token{Type: TColon, Pos: pos, Bytes: src[i : i+1]})
			i++
		case ',':
			dst = append(dst, Token{Type: TComma, Pos: pos, Bytes: src[i : i+1]})
			i++
		case '"':
			sz, err := bsEscQuoted(src[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i+sz))
			}
			dst = append(dst, Token{Type: TString, Pos: pos, Bytes: src[i : i+sz]})
			i += sz
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			sz, isFloat, err := number(src[i:])
			if err != nil {
				if err == ErrNumberLeadingZero {
					return nil, LeadingZeroErr(pos)
				}
				return nil, NewTokenizeErr(err, posDoc.Pos(i+sz))
			}
			tt := TInteger
			if isFloat {
				tt = TFloat
			}
			dst = append(dst, Token{Type: tt, Pos: pos, Bytes: src[i : i+sz]})
			i += sz
		default:
			tok, err := keyword(src[i:], pos)
			if err != nil {
				return nil, err
			}
			dst = append(dst, *tok)
			i += len(tok.Bytes)
		}
	}
	if len(dst) == 0 {
		return nil, NewTokenizeErr(ErrEmptyDoc, posDoc.end())
	}
	return dst, nil
}

var keywords = []struct {
	lit []byte
	tt  TokenType
}{
	{[]byte("null"), TNull},
	{[]byte("true"), TTrue},
	{[]byte("false"), TFalse},
}

func keyword(d []byte, pos *Pos) (*Token, error) {
	for _, kw := range keywords {
		if !bytes.HasPrefix(d, kw.lit) {
			continue
		}
		n := len(kw.lit)
		if n < len(d) && isIdentByte(d[n]) {
			break
		}
		return &Token{Type: kw.tt, Pos: pos, Bytes: d[:n]}, nil
	}
	return nil, NewTokenizeErr(ErrLiteral, pos)
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
