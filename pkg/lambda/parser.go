package lambda

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TokenType enumerates the lexical classes of the input grammar:
// term ::= "λ" name "." term | "(" term term ")" | name
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLambda
	TokenDot
	TokenLParen
	TokenRParen
	TokenIdent
)

type Token struct {
	Type    TokenType
	Literal string
}

// Parser is a hand-rolled recursive-descent reader over the grammar's
// five token kinds, one token of lookahead.
type Parser struct {
	input   string
	pos     int
	current Token
}

// NewParser returns a Parser positioned at the start of input.
func NewParser(input string) *Parser {
	p := &Parser{input: input}
	p.next()
	return p
}

// Parse reads one complete term and reports an error if trailing input
// remains or the grammar is violated.
func (p *Parser) Parse() (Term, error) {
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, errors.Errorf("unexpected trailing input at %q", p.input[p.pos:])
	}
	return t, nil
}

func (p *Parser) parseTerm() (Term, error) {
	switch p.current.Type {
	case TokenLambda:
		return p.parseAbs()
	case TokenLParen:
		return p.parseApp()
	case TokenIdent:
		name := p.current.Literal
		p.next()
		return Var{Name: name}, nil
	default:
		return nil, errors.Errorf("expected term, got %q", p.current.Literal)
	}
}

func (p *Parser) parseAbs() (Term, error) {
	p.next() // consume λ
	if p.current.Type != TokenIdent {
		return nil, errors.Errorf("expected binder name after λ, got %q", p.current.Literal)
	}
	name := p.current.Literal
	p.next()
	if p.current.Type != TokenDot {
		return nil, errors.Errorf("expected '.' after λ%s, got %q", name, p.current.Literal)
	}
	p.next() // consume .
	body, err := p.parseTerm()
	if err != nil {
		return nil, errors.Wrapf(err, "in body of λ%s", name)
	}
	return Abs{Param: name, Body: body}, nil
}

func (p *Parser) parseApp() (Term, error) {
	p.next() // consume (
	fun, err := p.parseTerm()
	if err != nil {
		return nil, errors.Wrap(err, "in application function")
	}
	arg, err := p.parseTerm()
	if err != nil {
		return nil, errors.Wrap(err, "in application argument")
	}
	if p.current.Type != TokenRParen {
		return nil, errors.Errorf("expected ')', got %q", p.current.Literal)
	}
	p.next() // consume )
	return App{Fun: fun, Arg: arg}, nil
}

func (p *Parser) next() {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF}
		return
	}

	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	switch {
	case r == 'λ' || r == '\\':
		p.pos += size
		p.current = Token{Type: TokenLambda, Literal: string(r)}
	case r == '.':
		p.pos += size
		p.current = Token{Type: TokenDot, Literal: "."}
	case r == '(':
		p.pos += size
		p.current = Token{Type: TokenLParen, Literal: "("}
	case r == ')':
		p.pos += size
		p.current = Token{Type: TokenRParen, Literal: ")"}
	default:
		start := p.pos
		for p.pos < len(p.input) {
			r, size := utf8.DecodeRuneInString(p.input[p.pos:])
			if isNameBreak(r) {
				break
			}
			p.pos += size
		}
		p.current = Token{Type: TokenIdent, Literal: p.input[start:p.pos]}
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
}

// isNameBreak reports whether r ends a name: whitespace, '.', '(', ')',
// or the two accepted lambda spellings. Names are otherwise any run of
// characters, per the grammar's "non-'.'/non-whitespace" rule, narrowed
// just enough to keep application parentheses and abstraction dots
// unambiguous.
func isNameBreak(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(".()λ\\", r)
}
