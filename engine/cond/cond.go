// Package cond implements the boolean condition language used by custom
// actions and gated content:
//
//	expr   := or
//	or     := and ("||" and)*
//	and    := not ("&&" not)*
//	not    := "!" not | "(" expr ")" | leaf
//	leaf   := flags.NAME | OBJECT.ATTR | inventory.includes('ID')
//
// Expressions compile once at load time; evaluation is read-only and
// short-circuits. References to unknown flags, objects, or attributes
// evaluate to false rather than erroring.
package cond

import (
	"fmt"
	"strings"

	"github.com/nathoo/textquest/engine/state"
)

// Expr is a compiled condition.
type Expr interface {
	Eval(s *state.State) bool
	String() string
}

// ParseError indicates a malformed condition expression.
type ParseError struct {
	Input  string
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("condition %q: %s at offset %d", e.Input, e.Reason, e.Pos)
}

type orExpr struct{ left, right Expr }

func (e *orExpr) Eval(s *state.State) bool { return e.left.Eval(s) || e.right.Eval(s) }
func (e *orExpr) String() string           { return "(" + e.left.String() + " || " + e.right.String() + ")" }

type andExpr struct{ left, right Expr }

func (e *andExpr) Eval(s *state.State) bool { return e.left.Eval(s) && e.right.Eval(s) }
func (e *andExpr) String() string           { return "(" + e.left.String() + " && " + e.right.String() + ")" }

type notExpr struct{ inner Expr }

func (e *notExpr) Eval(s *state.State) bool { return !e.inner.Eval(s) }
func (e *notExpr) String() string           { return "!" + e.inner.String() }

type flagExpr struct{ name string }

func (e *flagExpr) Eval(s *state.State) bool { return state.Truthy(s.Flag(e.name)) }
func (e *flagExpr) String() string           { return "flags." + e.name }

type attrExpr struct{ object, attr string }

func (e *attrExpr) Eval(s *state.State) bool { return state.Truthy(s.Attr(e.object, e.attr)) }
func (e *attrExpr) String() string           { return e.object + "." + e.attr }

type carryExpr struct{ object string }

func (e *carryExpr) Eval(s *state.State) bool { return s.Carrying(e.object) }
func (e *carryExpr) String() string           { return "inventory.includes('" + e.object + "')" }

// Parse compiles a condition expression. An empty input is an error;
// callers treat absent conditions as always true before reaching here.
func Parse(input string) (Expr, error) {
	p := &parser{input: input}
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, p.errorf("empty expression")
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos:])
	}
	return expr, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) accept(lit string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept("||") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.accept("&&") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.accept("!") {
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notExpr{inner: inner}, nil
	}
	if p.accept("(") {
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, p.errorf("missing closing parenthesis")
		}
		return expr, nil
	}
	return p.parseLeaf()
}

func (p *parser) parseLeaf() (Expr, error) {
	p.skipSpace()
	start := p.pos
	ident := p.readIdent()
	if ident == "" {
		return nil, p.errorf("expected identifier")
	}

	if ident == "inventory" {
		if !p.accept(".includes('") && !p.accept(".includes(\"") {
			p.pos = start
			return nil, p.errorf("expected inventory.includes('ID')")
		}
		quote := p.input[p.pos-1]
		end := strings.IndexByte(p.input[p.pos:], quote)
		if end < 0 {
			return nil, p.errorf("unterminated object ID")
		}
		id := p.input[p.pos : p.pos+end]
		p.pos += end + 1
		if !p.accept(")") {
			return nil, p.errorf("expected closing parenthesis")
		}
		if id == "" {
			return nil, p.errorf("empty object ID")
		}
		return &carryExpr{object: id}, nil
	}

	if p.pos >= len(p.input) || p.input[p.pos] != '.' {
		return nil, p.errorf("expected '.' after %q", ident)
	}
	p.pos++
	field := p.readIdent()
	if field == "" {
		return nil, p.errorf("expected attribute name after %q.", ident)
	}

	if ident == "flags" {
		return &flagExpr{name: field}, nil
	}
	return &attrExpr{object: ident, attr: field}, nil
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}
