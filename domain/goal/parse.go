package goal

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads a formula written as literals joined by "&" (and) and "|" (or),
// e.g. "ontop(a,floor) & holding(b) | inside(c,k)". "|" binds loosest.
// The result is validated.
func Parse(input string) (Formula, error) {
	p := &parser{input: input}
	f, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// literal formulas in code.
func MustParse(input string) Formula {
	f, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	input string
	pos   int
}

func (p *parser) formula() (Formula, error) {
	var f Formula
	for {
		c, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		f = append(f, c)
		if !p.accept('|') {
			break
		}
	}
	if p.skipSpace(); p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}
	return f, nil
}

func (p *parser) conjunction() (Conjunction, error) {
	var c Conjunction
	for {
		l, err := p.literal()
		if err != nil {
			return nil, err
		}
		c = append(c, l)
		if !p.accept('&') {
			return c, nil
		}
	}
}

func (p *parser) literal() (Literal, error) {
	name := p.ident()
	if name == "" {
		return Literal{}, p.errorf("expected relation name")
	}
	if !p.accept('(') {
		return Literal{}, p.errorf("expected '(' after %s", name)
	}

	var args []string
	for {
		arg := p.ident()
		if arg == "" {
			return Literal{}, p.errorf("expected argument to %s", name)
		}
		args = append(args, arg)
		if !p.accept(',') {
			break
		}
	}
	if !p.accept(')') {
		return Literal{}, p.errorf("expected ')' to close %s", name)
	}
	return Literal{Relation: Relation(strings.ToLower(name)), Args: args}, nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		r := rune(p.input[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) accept(b byte) bool {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrInvalidFormula, p.pos, fmt.Sprintf(format, args...))
}
