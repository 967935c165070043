/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rdf provides a minimal RDF dataset model with an N-Quads codec.
//
// A Dataset is a set of quads: duplicate insertions are suppressed, and two
// datasets with the same quads are equal regardless of insertion order. The
// model is deliberately small; JSON-LD expansion and canonicalization are
// performed by the ld/processor package, which exchanges datasets with the
// underlying JSON-LD library in N-Quads form.
package rdf

import "fmt"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier without the "_:" prefix.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI. A zero value stands for xsd:string.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns an N-Quads-like representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}

	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}

	return fmt.Sprintf("%q", l.Lexical)
}

// Quad is an RDF quad: a triple plus an optional graph name.
type Quad struct {
	// S is the subject: an IRI or a blank node.
	S Term
	// P is the predicate: an IRI, or a blank node in generalized RDF.
	P Term
	// O is the object: any term.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// InDefaultGraph reports whether the quad belongs to the default graph.
func (q Quad) InDefaultGraph() bool {
	return q.G == nil
}
