/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf

import (
	"fmt"
	"strconv"
	"strings"
)

// NQuads serializes the dataset into N-Quads, one statement per line.
func (d *Dataset) NQuads() string {
	var b strings.Builder

	for _, q := range d.quads {
		b.WriteString(renderQuad(q))
		b.WriteByte('\n')
	}

	return b.String()
}

// ParseNQuads parses N-Quads text into a dataset. Empty lines and comment
// lines starting with '#' are skipped.
func ParseNQuads(input string) (*Dataset, error) {
	d := NewDataset()

	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := parseStatement(line)
		if err != nil {
			return nil, fmt.Errorf("parse N-Quads line %d: %w", i+1, err)
		}

		d.Add(q)
	}

	return d, nil
}

func renderQuad(q Quad) string {
	line := renderTerm(q.S) + " " + renderTerm(q.P) + " " + renderTerm(q.O)
	if q.G != nil {
		line += " " + renderTerm(q.G)
	}

	return line + " ."
}

func renderTerm(term Term) string {
	switch t := term.(type) {
	case IRI:
		return "<" + t.Value + ">"
	case BlankNode:
		return "_:" + t.ID
	case Literal:
		s := "\"" + escapeLiteral(t.Lexical) + "\""

		switch {
		case t.Lang != "":
			return s + "@" + t.Lang
		case t.Datatype.Value != "" && t.Datatype.Value != xsdString:
			return s + "^^<" + t.Datatype.Value + ">"
		default:
			return s
		}
	default:
		return ""
	}
}

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

func escapeLiteral(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

type cursor struct {
	input string
	pos   int
}

func parseStatement(line string) (Quad, error) {
	c := &cursor{input: line}

	subject, err := c.parseTerm(false)
	if err != nil {
		return Quad{}, err
	}

	predicate, err := c.parseTerm(false)
	if err != nil {
		return Quad{}, err
	}

	object, err := c.parseTerm(true)
	if err != nil {
		return Quad{}, err
	}

	graph, err := c.parseOptionalTerm()
	if err != nil {
		return Quad{}, err
	}

	c.skipWS()

	if !c.consume('.') {
		return Quad{}, c.errorf("expected '.' at end of statement")
	}

	return Quad{S: subject, P: predicate, O: object, G: graph}, nil
}

func (c *cursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t':
			c.pos++
		default:
			return
		}
	}
}

func (c *cursor) consume(ch byte) bool {
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}

	return false
}

func (c *cursor) parseOptionalTerm() (Term, error) {
	c.skipWS()

	if c.pos >= len(c.input) || c.input[c.pos] == '.' {
		return nil, nil
	}

	return c.parseTerm(false)
}

func (c *cursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()

	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of statement")
	}

	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}

		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token at position %d", c.pos)
	}
}

func (c *cursor) parseIRI() (Term, error) {
	if !c.consume('<') {
		return nil, c.errorf("expected IRI")
	}

	start := c.pos

	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		c.pos++
	}

	if c.pos >= len(c.input) {
		return nil, c.errorf("unterminated IRI")
	}

	value := c.input[start:c.pos]
	c.pos++

	return IRI{Value: value}, nil
}

func (c *cursor) parseBlankNode() (Term, error) {
	c.pos += 2 // "_:"
	start := c.pos

	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}

	if start == c.pos {
		return nil, c.errorf("blank node id missing")
	}

	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *cursor) parseLiteral() (Term, error) {
	c.pos++ // opening quote

	lexical, err := c.parseQuoted()
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos

		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
			c.pos++
		}

		return Literal{Lexical: lexical, Lang: c.input[start:c.pos]}, nil
	}

	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2

		dt, err := c.parseIRI()
		if err != nil {
			return nil, err
		}

		lit := Literal{Lexical: lexical}
		if iri := dt.(IRI); iri.Value != xsdString {
			lit.Datatype = iri
		}

		return lit, nil
	}

	return Literal{Lexical: lexical}, nil
}

func (c *cursor) parseQuoted() (string, error) {
	var b strings.Builder

	for c.pos < len(c.input) {
		ch := c.input[c.pos]

		if ch == '"' {
			c.pos++
			return b.String(), nil
		}

		if ch != '\\' {
			b.WriteByte(ch)
			c.pos++

			continue
		}

		if c.pos+1 >= len(c.input) {
			return "", c.errorf("unterminated escape")
		}

		next := c.input[c.pos+1]
		c.pos += 2

		switch next {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		case 'u', 'U':
			size := 4
			if next == 'U' {
				size = 8
			}

			if c.pos+size > len(c.input) {
				return "", c.errorf("truncated \\%c escape", next)
			}

			code, err := strconv.ParseUint(c.input[c.pos:c.pos+size], 16, 32)
			if err != nil {
				return "", c.errorf("invalid \\%c escape", next)
			}

			b.WriteRune(rune(code))
			c.pos += size
		default:
			return "", c.errorf("unknown escape '\\%c'", next)
		}
	}

	return "", c.errorf("unterminated literal")
}

func (c *cursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("nquads: "+format, args...)
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '.':
		return true
	default:
		return false
	}
}
