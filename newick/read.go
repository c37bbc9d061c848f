// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/js-arias/phyprune/tree"
)

const eof = -1

// Read reads a single tree in newick format
// from r.
func Read(r io.Reader) (*tree.Tree, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}

// Parse parses a single tree in newick format.
// Any error in the input is returned
// as a *ParseError.
func Parse(text string) (*tree.Tree, error) {
	p := &parser{
		in:    text,
		line:  1,
		col:   1,
		terms: make(map[string]bool),
	}

	if err := p.skip(); err != nil {
		return nil, err
	}
	if p.peek() == eof {
		return nil, p.errorf("empty input")
	}
	root, err := p.subtree()
	if err != nil {
		return nil, err
	}

	if err := p.skip(); err != nil {
		return nil, err
	}
	switch r := p.peek(); r {
	case ';':
		p.next()
	case eof:
		return nil, p.errorf("expecting ';' at the end of the tree")
	case ')':
		return nil, p.errorf("unbalanced parenthesis: unexpected ')'")
	default:
		return nil, p.errorf("unexpected %q, expecting ';'", r)
	}

	if err := p.skip(); err != nil {
		return nil, err
	}
	if p.peek() != eof {
		return nil, p.errorf("unexpected data after ';'")
	}

	t, err := tree.New(root)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	return t, nil
}

type parser struct {
	in    string
	pos   int
	line  int
	col   int
	terms map[string]bool
}

func (p *parser) peek() rune {
	if p.pos >= len(p.in) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(p.in[p.pos:])
	return r
}

func (p *parser) next() rune {
	if p.pos >= len(p.in) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(p.in[p.pos:])
	p.pos += w
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *parser) errorf(format string, v ...any) *ParseError {
	return p.errorAt(p.line, p.col, format, v...)
}

func (p *parser) errorAt(line, col int, format string, v ...any) *ParseError {
	return &ParseError{
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// skip skips blanks and comments.
func (p *parser) skip() error {
	for {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.next()
		case '[':
			line, col := p.line, p.col
			p.next()
			for {
				r := p.next()
				if r == eof {
					return p.errorAt(line, col, "unterminated comment")
				}
				if r == ']' {
					break
				}
			}
		default:
			return nil
		}
	}
}

func (p *parser) subtree() (*tree.Node, error) {
	line, col := p.line, p.col

	var children []*tree.Node
	if p.peek() == '(' {
		p.next()
	loop:
		for {
			if err := p.skip(); err != nil {
				return nil, err
			}
			c, err := p.subtree()
			if err != nil {
				return nil, err
			}
			children = append(children, c)

			if err := p.skip(); err != nil {
				return nil, err
			}
			switch r := p.peek(); r {
			case ',':
				p.next()
			case ')':
				p.next()
				break loop
			case eof, ';':
				return nil, p.errorAt(line, col, "unbalanced parenthesis: missing ')'")
			default:
				return nil, p.errorf("unexpected %q, expecting ',' or ')'", r)
			}
		}
		if err := p.skip(); err != nil {
			return nil, err
		}
	}

	lLine, lCol := p.line, p.col
	label, err := p.label()
	if err != nil {
		return nil, err
	}
	if err := p.skip(); err != nil {
		return nil, err
	}

	var length float64
	if p.peek() == ':' {
		p.next()
		if err := p.skip(); err != nil {
			return nil, err
		}
		length, err = p.length()
		if err != nil {
			return nil, err
		}
	}

	if len(children) == 0 {
		if label == "" {
			return nil, p.errorAt(lLine, lCol, "terminal without label")
		}
		if p.terms[label] {
			return nil, p.errorAt(lLine, lCol, "repeated terminal %q", label)
		}
		p.terms[label] = true
	}
	return tree.NewNode(label, length, children...), nil
}

func (p *parser) label() (string, error) {
	if p.peek() != '\'' {
		start := p.pos
		for {
			r := p.peek()
			if r == eof || strings.ContainsRune(reserved, r) {
				break
			}
			p.next()
		}
		return p.in[start:p.pos], nil
	}

	line, col := p.line, p.col
	p.next()
	var b strings.Builder
	for {
		r := p.next()
		if r == eof {
			return "", p.errorAt(line, col, "unterminated quoted label")
		}
		if r == '\'' {
			if p.peek() != '\'' {
				break
			}
			p.next()
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (p *parser) length() (float64, error) {
	line, col := p.line, p.col
	start := p.pos
	for {
		r := p.peek()
		if r == eof || strings.ContainsRune(reserved, r) {
			break
		}
		p.next()
	}
	s := p.in[start:p.pos]
	if s == "" {
		return 0, p.errorAt(line, col, "expecting branch length")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.errorAt(line, col, "invalid branch length %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, p.errorAt(line, col, "invalid branch length %q", s)
	}
	if v < 0 {
		return 0, p.errorAt(line, col, "negative branch length %q", s)
	}
	if v == 0 {
		// -0
		v = 0
	}
	return v, nil
}
