package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/adsc/report-system/internal/core/domain"
)

// ParseFormula compiles an arithmetic expression over one named variable.
// Supported: decimal literals, + - * /, parentheses and unary minus.
// Identifiers other than variable evaluate to 0.
func ParseFormula(expr, variable string) (func(float64) float64, error) {
	p := &parser{src: expr, variable: variable}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return node, nil
}

type parser struct {
	src      string
	pos      int
	variable string
}

type evalFn = func(float64) float64

func (p *parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return domain.NewValidationError(fmt.Sprintf("formula: %s at position %d", msg, p.pos))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (evalFn, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		if op == '+' {
			left = func(x float64) float64 { return l(x) + r(x) }
		} else {
			left = func(x float64) float64 { return l(x) - r(x) }
		}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) parseTerm() (evalFn, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		if op == '*' {
			left = func(x float64) float64 { return l(x) * r(x) }
		} else {
			left = func(x float64) float64 { return l(x) / r(x) }
		}
	}
}

// unary := ('-' | '+') unary | primary
func (p *parser) parseUnary() (evalFn, error) {
	switch p.peek() {
	case '-':
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 { return -inner(x) }, nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// primary := number | identifier | '(' expr ')'
func (p *parser) parsePrimary() (evalFn, error) {
	c := p.peek()
	switch {
	case c == 0:
		return nil, p.errorf("unexpected end of expression")
	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case isDigit(c) || c == '.':
		start := p.pos
		for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", p.src[start:p.pos])
		}
		return func(float64) float64 { return v }, nil
	case isLetter(c):
		start := p.pos
		for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
			p.pos++
		}
		if p.src[start:p.pos] == p.variable {
			return func(x float64) float64 { return x }, nil
		}
		return func(float64) float64 { return 0 }, nil
	}
	return nil, p.errorf("unexpected %q", c)
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// ValidVariable reports whether name can be used as a formula variable.
func ValidVariable(name string) bool {
	if name == "" {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool { return r > unicode.MaxASCII || !isLetter(byte(r)) }) < 0
}
