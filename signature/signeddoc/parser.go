/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signeddoc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	jsonld "github.com/piprate/json-gold/ld"
	"golang.org/x/sync/errgroup"

	"github.com/hyperfed/rsasignature2017/internal/maphelpers"
	"github.com/hyperfed/rsasignature2017/ld/processor"
	"github.com/hyperfed/rsasignature2017/rdf"
	"github.com/hyperfed/rsasignature2017/signature/rsa2017"
)

const (
	signatureField      = "signature"
	contextField        = "@context"
	typeField           = "type"
	idField             = "id"
	signatureValueField = "signatureValue"
)

// Expander expands a JSON-LD document into an RDF dataset.
// *processor.Processor satisfies this interface.
type Expander interface {
	ExpandToDataset(doc interface{}, opts ...processor.Opts) (*rdf.Dataset, error)
}

// Parser extracts embedded signatures from JSON-LD documents.
type Parser struct {
	expander       Expander
	documentLoader jsonld.DocumentLoader
}

// ParserOption configures a Parser.
type ParserOption func(p *Parser)

// WithExpander option sets the JSON-LD expander. Defaults to the URDNA2015
// processor.
func WithExpander(e Expander) ParserOption {
	return func(p *Parser) {
		p.expander = e
	}
}

// WithDocumentLoader option sets the JSON-LD context loader used during
// expansion.
func WithDocumentLoader(loader jsonld.DocumentLoader) ParserOption {
	return func(p *Parser) {
		p.documentLoader = loader
	}
}

// NewParser returns a parser for signed JSON-LD documents.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		expander: processor.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ParseBytes decodes raw JSON and parses the resulting document.
func (p *Parser) ParseBytes(raw []byte) (*SignedDocument, error) {
	var doc map[string]interface{}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	return p.Parse(doc)
}

// ParseRemote parses a JSON-LD document fetched by a document loader, using
// the document's URL as the base IRI for expansion.
func (p *Parser) ParseRemote(remote *jsonld.RemoteDocument) (*SignedDocument, error) {
	doc, ok := remote.Document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: document root is not an object", ErrBadSignatureOptions)
	}

	return p.parse(doc, remote.DocumentURL)
}

// Parse splits the signature entry out of the document, reconstructs every
// signature's options object, and expands both the residual document and the
// options objects to RDF. The input map is never mutated; all work happens
// on a deep copy.
//
// Only the lexical top-level "signature" key is removed. A nested key of the
// same name inside user content is left in place, and a top-level key of
// that name in unsigned user content will be stripped like a signature.
func (p *Parser) Parse(doc map[string]interface{}) (*SignedDocument, error) {
	return p.parse(doc, "")
}

func (p *Parser) parse(doc map[string]interface{}, baseIRI string) (*SignedDocument, error) {
	working := maphelpers.CopyMap(doc)

	entry, ok := working[signatureField]
	if !ok {
		return nil, ErrMissingSignatureOptions
	}

	delete(working, signatureField)

	candidates, err := collectCandidates(entry)
	if err != nil {
		return nil, err
	}

	signatures := make([]rawSignature, len(candidates))

	for i, candidate := range candidates {
		mergeContext(working[contextField], candidate)

		sig, err := stripSignatureFields(candidate)
		if err != nil {
			return nil, err
		}

		signatures[i] = sig
	}

	return p.expand(working, signatures, baseIRI)
}

// rawSignature is a candidate after field stripping, before expansion.
type rawSignature struct {
	id      string
	options map[string]interface{}
	value   []byte
}

// collectCandidates normalizes the signature entry into a list of candidate
// objects. A plain object is the sole candidate. Every element of an array
// is a candidate; an element that is itself an array must wrap exactly one
// object.
func collectCandidates(entry interface{}) ([]map[string]interface{}, error) {
	switch v := entry.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{v}, nil
	case []interface{}:
		if len(v) == 0 {
			return nil, ErrMissingSignatureOptions
		}

		candidates := make([]map[string]interface{}, len(v))

		for i, item := range v {
			candidate, err := candidateObject(item)
			if err != nil {
				return nil, err
			}

			candidates[i] = candidate
		}

		return candidates, nil
	default:
		return nil, fmt.Errorf("%w: signature entry is not an object or array", ErrBadSignatureOptions)
	}
}

func candidateObject(item interface{}) (map[string]interface{}, error) {
	switch v := item.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		switch len(v) {
		case 0:
			return nil, ErrMissingSignatureOptions
		case 1:
			candidate, ok := v[0].(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: nested signature entry is not an object", ErrBadSignatureOptions)
			}

			return candidate, nil
		default:
			return nil, ErrDuplicateSignatures
		}
	default:
		return nil, fmt.Errorf("%w: signature entry element is not an object", ErrBadSignatureOptions)
	}
}

// mergeContext folds the document's @context into the candidate's. Document
// items come first so the candidate's own terms override the inherited ones.
//
// Repeated string entries are collapsed to their first occurrence: json-gold
// treats the same remote context twice in one array as recursive inclusion,
// and an identical entry defines identical terms, so dropping the repeat
// leaves the expanded options dataset unchanged.
func mergeContext(docContext interface{}, candidate map[string]interface{}) {
	if docContext == nil {
		return
	}

	own, ok := candidate[contextField]
	if !ok {
		candidate[contextField] = maphelpers.CopyValue(docContext)
		return
	}

	var merged []interface{}

	seen := make(map[string]struct{})

	appendItem := func(item interface{}) {
		if s, isString := item.(string); isString {
			if _, dup := seen[s]; dup {
				return
			}

			seen[s] = struct{}{}
		}

		merged = append(merged, item)
	}

	switch v := maphelpers.CopyValue(docContext).(type) {
	case []interface{}:
		for _, item := range v {
			appendItem(item)
		}
	default:
		appendItem(v)
	}

	if ownItems, isArray := own.([]interface{}); isArray {
		for _, item := range ownItems {
			appendItem(item)
		}
	} else {
		appendItem(own)
	}

	candidate[contextField] = merged
}

// stripSignatureFields removes and validates type, id, and signatureValue
// from a candidate. What remains is the signature's options object.
func stripSignatureFields(candidate map[string]interface{}) (rawSignature, error) {
	if err := checkType(candidate[typeField]); err != nil {
		return rawSignature{}, err
	}

	delete(candidate, typeField)

	var id string

	if rawID, ok := candidate[idField]; ok {
		id, ok = rawID.(string)
		if !ok {
			return rawSignature{}, fmt.Errorf("%w: id is not a string", ErrBadSignatureOptions)
		}

		delete(candidate, idField)
	}

	rawValue, ok := candidate[signatureValueField]
	if !ok {
		return rawSignature{}, ErrMissingSignatureOptions
	}

	delete(candidate, signatureValueField)

	encoded, ok := rawValue.(string)
	if !ok {
		return rawSignature{}, fmt.Errorf("%w: signatureValue is not a string", ErrBadSignatureValue)
	}

	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return rawSignature{}, fmt.Errorf("%w: %v", ErrBadSignatureValue, err)
	}

	return rawSignature{id: id, options: candidate, value: value}, nil
}

func checkType(rawType interface{}) error {
	switch v := rawType.(type) {
	case string:
		if v == rsa2017.SignatureType {
			return nil
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == rsa2017.SignatureType {
				return nil
			}
		}
	}

	return ErrUnsupportedType
}

// expand runs the document expansion and every options expansion
// concurrently and assembles the final result. The first failure aborts the
// whole parse; no partial result is returned.
func (p *Parser) expand(doc map[string]interface{}, signatures []rawSignature,
	baseIRI string) (*SignedDocument, error) {
	expandOpts := []processor.Opts{}

	if p.documentLoader != nil {
		expandOpts = append(expandOpts, processor.WithDocumentLoader(p.documentLoader))
	}

	if baseIRI != "" {
		expandOpts = append(expandOpts, processor.WithBaseIRI(baseIRI))
	}

	var docDataset *rdf.Dataset

	optionsDatasets := make([]*rdf.Dataset, len(signatures))

	var g errgroup.Group

	g.Go(func() error {
		dataset, err := p.expander.ExpandToDataset(doc, expandOpts...)
		if err != nil {
			return &DocumentExpansionError{Err: err}
		}

		docDataset = dataset

		return nil
	})

	for i := range signatures {
		i := i

		g.Go(func() error {
			dataset, err := p.expander.ExpandToDataset(signatures[i].options, expandOpts...)
			if err != nil {
				return &OptionsExpansionError{Err: err}
			}

			if err := checkOptionsDataset(dataset); err != nil {
				return err
			}

			optionsDatasets[i] = dataset

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SignedDocument{
		Document:   docDataset,
		Signatures: make([]DocumentSignature, len(signatures)),
	}

	for i := range signatures {
		result.Signatures[i] = DocumentSignature{
			ID:      signatures[i].id,
			Type:    rsa2017.SignatureType,
			Options: optionsDatasets[i],
			Value:   signatures[i].value,
		}
	}

	return result, nil
}

// checkOptionsDataset rejects options that expanded to anything other than a
// flat set of quads about one blank node in the default graph.
func checkOptionsDataset(dataset *rdf.Dataset) error {
	quads := dataset.Quads()

	if len(quads) == 0 {
		return fmt.Errorf("%w: signature options expanded to an empty dataset", ErrBadSignatureOptions)
	}

	subject := quads[0].S

	for _, q := range quads {
		if q.G != nil {
			return ErrNestingSignatureNode
		}

		if q.S.String() != subject.String() {
			return ErrNestingSignatureNode
		}
	}

	if subject.Kind() != rdf.TermBlankNode {
		return ErrBadSubject
	}

	return nil
}
