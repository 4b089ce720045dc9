package parse

import (
	"fmt"

	"github.com/signadot/codable/debug"
	"github.com/signadot/codable/format"
	"github.com/signadot/codable/ir"
	"github.com/signadot/codable/token"
	"github.com/tidwall/jsonc"
)

const defaultMaxDepth = 10000

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat, maxDepth: defaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	switch pOpts.format {
	case format.JSONFormat:
		if pOpts.jsonc {
			d = jsonc.ToJSON(d)
		}
		return parseJSON(d, pOpts)
	case format.YAMLFormat:
		return parseYAML(d)
	case format.CBORFormat:
		return parseCBOR(d)
	case format.MsgPackFormat:
		return parseMsgPack(d)
	}
	return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, pOpts.format)
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func parseJSON(d []byte, opts *parseOpts) (*ir.Node, error) {
	toks, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, fromTokenize(err)
	}
	if debug.Tokens() {
		token.PrintTokens(toks, "parse")
	}
	p := &parser{toks: toks, opts: opts}
	if len(toks) > 0 {
		p.end = &token.Pos{I: len(d), D: toks[0].Pos.D}
	}
	res, err := p.value(0)
	if err != nil {
		return nil, err
	}
	if p.i < len(p.toks) {
		return nil, errAt(ErrTrailing, p.toks[p.i].Pos)
	}
	return res, nil
}

type parser struct {
	toks []token.Token
	i    int
	end  *token.Pos
	opts *parseOpts
}

func (p *parser) next() (*token.Token, error) {
	if p.i >= len(p.toks) {
		return nil, errAt(ErrEOF, p.end)
	}
	t := &p.toks[p.i]
	p.i++
	return t, nil
}

func (p *parser) expect(tt token.TokenType) (*token.Token, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Type != tt {
		return nil, unexpected(t)
	}
	return t, nil
}

func unexpected(t *token.Token) error {
	return errAt(fmt.Errorf("%w: unexpected %q", ErrParse, string(t.Bytes)), t.Pos)
}

func (p *parser) track(n *ir.Node, pos *token.Pos) *ir.Node {
	if p.opts.positions != nil {
		p.opts.positions[n] = pos
	}
	return n
}

func (p *parser) value(depth int) (*ir.Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case token.TNull:
		return p.track(ir.Null(), t.Pos), nil
	case token.TTrue:
		return p.track(ir.FromBool(true), t.Pos), nil
	case token.TFalse:
		return p.track(ir.FromBool(false), t.Pos), nil
	case token.TString:
		return p.track(ir.FromString(t.String()), t.Pos), nil
	case token.TInteger, token.TFloat:
		n, err := ir.FromNumber(string(t.Bytes))
		if err != nil {
			return nil, errAt(fmt.Errorf("%w: %w", ErrParse, err), t.Pos)
		}
		return p.track(n, t.Pos), nil
	case token.TLSquare:
		if depth >= p.opts.maxDepth {
			return nil, errAt(ErrTooDeep, t.Pos)
		}
		return p.array(t, depth+1)
	case token.TLCurl:
		if depth >= p.opts.maxDepth {
			return nil, errAt(ErrTooDeep, t.Pos)
		}
		return p.object(t, depth+1)
	}
	return nil, unexpected(t)
}

func (p *parser) array(open *token.Token, depth int) (*ir.Node, error) {
	res := p.track(&ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}, open.Pos)
	if p.i < len(p.toks) && p.toks[p.i].Type == token.TRSquare {
		p.i++
		return res, nil
	}
	for {
		v, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, v)
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case token.TComma:
			continue
		case token.TRSquare:
			return res, nil
		}
		return nil, unexpected(t)
	}
}

func (p *parser) object(open *token.Token, depth int) (*ir.Node, error) {
	res := p.track(&ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}}, open.Pos)
	if p.i < len(p.toks) && p.toks[p.i].Type == token.TRCurl {
		p.i++
		return res, nil
	}
	seen := map[string]bool{}
	for {
		kt, err := p.expect(token.TString)
		if err != nil {
			return nil, err
		}
		key := kt.String()
		if seen[key] {
			return nil, errAt(fmt.Errorf("%w %q", ErrDupKey, key), kt.Pos)
		}
		seen[key] = true
		if _, err := p.expect(token.TColon); err != nil {
			return nil, err
		}
		v, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		res.Fields = append(res.Fields, p.track(ir.FromString(key), kt.Pos))
		res.Values = append(res.Values, v)
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case token.TComma:
			continue
		case token.TRCurl:
			return res, nil
		}
		return nil, unexpected(t)
	}
}
