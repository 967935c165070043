/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package processor provides RDF dataset canonicalization and JSON-LD
// expansion on top of the json-gold library.
//
// processing mode JSON-LD 1.0 {RFC: https://www.w3.org/TR/2014/REC-json-ld-20140116}
package processor

import (
	"fmt"

	"github.com/piprate/json-gold/ld"

	"github.com/hyperfed/rsasignature2017/rdf"
)

const (
	format           = "application/n-quads"
	defaultAlgorithm = "URDNA2015"

	// defaultMaxBlankNodes bounds the number of distinct blank nodes accepted
	// by Canonicalize. URDNA2015 degrades super-polynomially on datasets with
	// many interlinked blank nodes, and the underlying library enforces no
	// bound of its own, so degenerate graphs are rejected up front.
	defaultMaxBlankNodes = 128
)

// ToxicGraphError is returned when a dataset exceeds the complexity bound of
// the canonicalization guard.
type ToxicGraphError struct {
	Reason string
}

func (e *ToxicGraphError) Error() string {
	return "toxic graph detected: " + e.Reason
}

// UnsupportedError is returned when a dataset contains an RDF feature that
// cannot be represented in the canonical form (generalized RDF terms).
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return "unsupported feature: " + e.Feature
}

// processorOpts holds options for JSON-LD expansion.
type processorOpts struct {
	documentLoader ld.DocumentLoader
	baseIRI        string
}

// Opts are the options for JSON-LD operations.
type Opts func(opts *processorOpts)

// WithDocumentLoader option is for passing a custom JSON-LD document loader.
func WithDocumentLoader(loader ld.DocumentLoader) Opts {
	return func(opts *processorOpts) {
		opts.documentLoader = loader
	}
}

// WithBaseIRI option sets the base IRI against which relative IRIs in the
// document are resolved during expansion.
func WithBaseIRI(base string) Opts {
	return func(opts *processorOpts) {
		opts.baseIRI = base
	}
}

// Processor canonicalizes RDF datasets and expands JSON-LD documents to RDF.
type Processor struct {
	algorithm     string
	maxBlankNodes int
}

// Option configures a Processor.
type Option func(p *Processor)

// WithMaxBlankNodes option overrides the blank node bound of the
// canonicalization complexity guard.
func WithMaxBlankNodes(n int) Option {
	return func(p *Processor) {
		p.maxBlankNodes = n
	}
}

// NewProcessor returns a new processor with the given RDF dataset
// normalization algorithm.
func NewProcessor(algorithm string, opts ...Option) *Processor {
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}

	p := &Processor{algorithm: algorithm, maxBlankNodes: defaultMaxBlankNodes}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Default returns a new processor with the default RDF dataset algorithm.
func Default(opts ...Option) *Processor {
	return NewProcessor(defaultAlgorithm, opts...)
}

// Canonicalize returns the deterministic canonical N-Quads serialization of
// the given dataset, independent of quad ordering and blank node labeling.
//
// Datasets exceeding the blank node bound are rejected with *ToxicGraphError.
// Generalized RDF features that have no canonical N-Quads form are rejected
// with *UnsupportedError. Any other error indicates a backend malfunction.
func (p *Processor) Canonicalize(dataset *rdf.Dataset) ([]byte, error) {
	if err := checkCanonicalizable(dataset, p.maxBlankNodes); err != nil {
		return nil, err
	}

	rdfDataset, err := ld.ParseNQuads(dataset.NQuads())
	if err != nil {
		return nil, fmt.Errorf("parse dataset N-Quads: %w", err)
	}

	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Algorithm = p.algorithm
	ldOptions.Format = format

	view, err := ld.NewJsonLdApi().Normalize(rdfDataset, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize RDF dataset: %w", err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, fmt.Errorf("failed to normalize RDF dataset, invalid view")
	}

	return []byte(result), nil
}

// ExpandToDataset expands a JSON-LD document (a JSON value decoded into
// map[string]interface{} and friends) into an RDF dataset.
func (p *Processor) ExpandToDataset(doc interface{}, opts ...Opts) (*rdf.Dataset, error) {
	procOptions := prepareOpts(opts)

	ldOptions := ld.NewJsonLdOptions(procOptions.baseIRI)
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Format = format
	ldOptions.ProduceGeneralizedRdf = true
	ldOptions.DocumentLoader = procOptions.documentLoader

	view, err := ld.NewJsonLdProcessor().ToRDF(doc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to expand JSON-LD document: %w", err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, fmt.Errorf("failed to expand JSON-LD document, invalid view")
	}

	dataset, err := rdf.ParseNQuads(result)
	if err != nil {
		return nil, fmt.Errorf("parse expanded document: %w", err)
	}

	return dataset, nil
}

func checkCanonicalizable(dataset *rdf.Dataset, maxBlankNodes int) error {
	blankNodes := make(map[string]struct{})

	collect := func(t rdf.Term) {
		if b, ok := t.(rdf.BlankNode); ok {
			blankNodes[b.ID] = struct{}{}
		}
	}

	for _, q := range dataset.Quads() {
		switch q.S.Kind() {
		case rdf.TermIRI, rdf.TermBlankNode:
		default:
			return &UnsupportedError{Feature: "generalized RDF: literal subject"}
		}

		if q.P.Kind() != rdf.TermIRI {
			return &UnsupportedError{Feature: "generalized RDF: non-IRI predicate"}
		}

		if q.G != nil && q.G.Kind() == rdf.TermLiteral {
			return &UnsupportedError{Feature: "generalized RDF: literal graph name"}
		}

		collect(q.S)
		collect(q.O)
		collect(q.G)
	}

	if len(blankNodes) > maxBlankNodes {
		return &ToxicGraphError{
			Reason: fmt.Sprintf("%d blank nodes exceed the limit of %d", len(blankNodes), maxBlankNodes),
		}
	}

	return nil
}

// prepareOpts prepare processorOpts from the given Opts arguments.
func prepareOpts(opts []Opts) *processorOpts {
	procOpts := &processorOpts{}

	for _, opt := range opts {
		opt(procOpts)
	}

	return procOpts
}
