// Package ilang reads and writes a small textual netlist notation used as
// the stand-in front-end for map libraries and test fixtures. Real
// Verilog/VHDL parsing stays out of scope; this format exists only so the
// techmap engine can be exercised against real text without a full HDL
// front-end.
package ilang

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/synthkit/techmap/internal/lex"
	"github.com/synthkit/techmap/rtlil"
)

type parser struct {
	l   lex.Interface
	cur lex.Item
}

func newParser(src string) *parser {
	p := &parser{l: newLexer(src)}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.cur = p.l.Lex()
}

func (p *parser) errf(format string, args ...interface{}) error {
	return errors.Errorf("ilang: at pos %d: "+format, append([]interface{}{p.cur.Pos}, args...)...)
}

func (p *parser) expectKeyword(kw string) error {
	if p.cur.Type != tKeyword || p.cur.Value != kw {
		return p.errf("expected %q, got %q", kw, p.cur.String())
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (rtlil.Identifier, error) {
	if p.cur.Type != tIdent {
		return "", p.errf("expected identifier, got %q", p.cur.String())
	}
	id := rtlil.Identifier(p.cur.Value.(string))
	p.advance()
	return id, nil
}

func (p *parser) expectInt() (int, error) {
	if p.cur.Type != tInt {
		return 0, p.errf("expected integer, got %q", p.cur.String())
	}
	n, err := strconv.Atoi(p.cur.Value.(string))
	if err != nil {
		return 0, p.errf("bad integer %q", p.cur.Value)
	}
	p.advance()
	return n, nil
}

func (p *parser) atKeyword(kw string) bool {
	return p.cur.Type == tKeyword && p.cur.Value == kw
}

// Parse reads an ilang source and returns the design it describes.
func Parse(r io.Reader) (*rtlil.Design, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ilang: read")
	}
	p := newParser(string(b))
	d := rtlil.NewDesign()
	for p.atKeyword("module") {
		m, err := p.parseModule()
		if err != nil {
			return nil, err
		}
		d.AddModule(m)
	}
	if p.cur.Type != tEOF {
		return nil, p.errf("unexpected trailing token %q", p.cur.String())
	}
	return d, nil
}

func (p *parser) parseModule() (*rtlil.Module, error) {
	if err := p.expectKeyword("module"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	m := rtlil.NewModule(name)
	for !p.atKeyword("end") {
		switch {
		case p.atKeyword("wire"):
			if err := p.parseWire(m); err != nil {
				return nil, err
			}
		case p.atKeyword("attribute"):
			if err := p.parseAttribute(m.Attributes); err != nil {
				return nil, err
			}
		case p.atKeyword("cell"):
			if err := p.parseCell(m); err != nil {
				return nil, err
			}
		case p.atKeyword("connect"):
			lhs, rhs, err := p.parseConnectPair(m)
			if err != nil {
				return nil, err
			}
			m.AddConnection(lhs, rhs)
		case p.cur.Type == tEOF:
			return nil, p.errf("unexpected end of input inside module %q", name)
		default:
			return nil, p.errf("unexpected token %q inside module %q", p.cur.String(), name)
		}
	}
	p.advance() // consume "end"
	return m, nil
}

func (p *parser) parseWire(m *rtlil.Module) error {
	if err := p.expectKeyword("wire"); err != nil {
		return err
	}
	width := 1
	portID := 0
	var portIn, portOut bool
loop:
	for {
		switch {
		case p.atKeyword("width"):
			p.advance()
			n, err := p.expectInt()
			if err != nil {
				return err
			}
			width = n
		case p.atKeyword("input"):
			p.advance()
			n, err := p.expectInt()
			if err != nil {
				return err
			}
			portID, portIn = n, true
		case p.atKeyword("output"):
			p.advance()
			n, err := p.expectInt()
			if err != nil {
				return err
			}
			portID, portOut = n, true
		case p.atKeyword("inout"):
			p.advance()
			n, err := p.expectInt()
			if err != nil {
				return err
			}
			portID, portIn, portOut = n, true, true
		default:
			break loop
		}
	}
	id, err := p.expectIdent()
	if err != nil {
		return err
	}
	w := rtlil.NewWire(id, width)
	w.PortID, w.PortInput, w.PortOutput = portID, portIn, portOut
	return m.AddWire(w)
}

func (p *parser) parseAttribute(attrs map[string]rtlil.Const) error {
	if err := p.expectKeyword("attribute"); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	c, err := p.parseValue()
	if err != nil {
		return err
	}
	attrs[name.Tail()] = c
	return nil
}

func (p *parser) parseValue() (rtlil.Const, error) {
	switch p.cur.Type {
	case tString:
		s := p.cur.Value.(string)
		p.advance()
		return rtlil.ConstFromCommand(s), nil
	case tInt:
		n, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		return rtlil.ConstFromUint(uint64(n), 32), nil
	case tConst:
		return p.parseSizedConst()
	default:
		return nil, p.errf("expected a value, got %q", p.cur.String())
	}
}

func (p *parser) parseSizedConst() (rtlil.Const, error) {
	lit := p.cur.Value.(string)
	p.advance()
	i := strings.IndexByte(lit, '\'')
	width, err := strconv.Atoi(lit[:i])
	if err != nil {
		return nil, p.errf("bad constant width in %q", lit)
	}
	rest := lit[i+1:]
	if rest == "" {
		return nil, p.errf("missing base in constant %q", lit)
	}
	base, digits := rest[0], rest[1:]
	var v uint64
	switch base {
	case 'b':
		v, err = strconv.ParseUint(digits, 2, 64)
	case 'o':
		v, err = strconv.ParseUint(digits, 8, 64)
	case 'd':
		v, err = strconv.ParseUint(digits, 10, 64)
	case 'h':
		v, err = strconv.ParseUint(digits, 16, 64)
	default:
		return nil, p.errf("unknown constant base %q in %q", string(base), lit)
	}
	if err != nil {
		return nil, p.errf("bad constant digits in %q: %s", lit, err)
	}
	return rtlil.ConstFromUint(v, width), nil
}

func (p *parser) parseCell(m *rtlil.Module) error {
	if err := p.expectKeyword("cell"); err != nil {
		return err
	}
	typ, err := p.expectIdent()
	if err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	c := rtlil.NewCell(name, typ)
	for !p.atKeyword("end") {
		switch {
		case p.atKeyword("parameter"):
			p.advance()
			signed := false
			if p.atKeyword("signed") {
				p.advance()
				signed = true
			}
			pname, err := p.expectIdent()
			if err != nil {
				return err
			}
			v, err := p.parseValue()
			if err != nil {
				return err
			}
			c.Parameters[pname] = v
			if signed {
				c.SignedParameters[pname] = true
			}
		case p.atKeyword("connect"):
			p.advance()
			port, err := p.expectIdent()
			if err != nil {
				return err
			}
			sig, err := p.parseSignal(m)
			if err != nil {
				return err
			}
			c.SetConnection(port, sig)
		case p.cur.Type == tEOF:
			return p.errf("unexpected end of input inside cell %q", name)
		default:
			return p.errf("unexpected token %q inside cell %q", p.cur.String(), name)
		}
	}
	p.advance() // consume "end"
	return m.AddCell(c)
}

func (p *parser) parseConnectPair(m *rtlil.Module) (rtlil.SigSpec, rtlil.SigSpec, error) {
	if err := p.expectKeyword("connect"); err != nil {
		return nil, nil, err
	}
	lhs, err := p.parseSignal(m)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := p.parseSignal(m)
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

// parseSignal parses either a bare atom or a brace-delimited, MSB-first
// concatenation list, resolving wire references against m.
func (p *parser) parseSignal(m *rtlil.Module) (rtlil.SigSpec, error) {
	if p.cur.Type != tBraceOpen {
		return p.parseAtom(m)
	}
	p.advance()
	var parts []rtlil.SigSpec
	for {
		a, err := p.parseAtom(m)
		if err != nil {
			return nil, err
		}
		parts = append(parts, a)
		if p.cur.Type == tComma {
			p.advance()
			continue
		}
		break
	}
	if p.cur.Type != tBraceClose {
		return nil, p.errf("expected '}', got %q", p.cur.String())
	}
	p.advance()
	// Verilog-style concatenation lists are MSB-first; our SigSpec is
	// LSB-first, so build by appending in reverse.
	var out rtlil.SigSpec
	for i := len(parts) - 1; i >= 0; i-- {
		out = out.Append(parts[i])
	}
	return out, nil
}

func (p *parser) parseAtom(m *rtlil.Module) (rtlil.SigSpec, error) {
	switch p.cur.Type {
	case tString:
		s := p.cur.Value.(string)
		p.advance()
		return rtlil.SigFromConst(rtlil.ConstFromCommand(s)), nil
	case tConst:
		c, err := p.parseSizedConst()
		if err != nil {
			return nil, err
		}
		return rtlil.SigFromConst(c), nil
	case tInt:
		n, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		return rtlil.SigFromConst(rtlil.ConstFromUint(uint64(n), 32)), nil
	case tIdent:
		name := rtlil.Identifier(p.cur.Value.(string))
		p.advance()
		w, ok := m.Wire(name)
		if !ok {
			return nil, p.errf("reference to unknown wire %q", name)
		}
		if p.cur.Type != tBracketOpen {
			return rtlil.SigFromWire(w), nil
		}
		p.advance()
		hi, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		lo := hi
		if p.cur.Type == tColon {
			p.advance()
			lo, err = p.expectInt()
			if err != nil {
				return nil, err
			}
		}
		if p.cur.Type != tBracketClose {
			return nil, p.errf("expected ']', got %q", p.cur.String())
		}
		p.advance()
		if lo > hi {
			lo, hi = hi, lo
		}
		return rtlil.SigFromWire(w).Extract(lo, hi-lo+1), nil
	default:
		return nil, p.errf("expected a signal, got %q", p.cur.String())
	}
}
