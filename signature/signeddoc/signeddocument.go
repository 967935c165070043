/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signeddoc locates, extracts, and re-embeds RsaSignature2017
// signatures in JSON-LD documents.
package signeddoc

import (
	"crypto/rsa"

	"github.com/hyperfed/rsasignature2017/rdf"
	"github.com/hyperfed/rsasignature2017/signature/rsa2017"
)

const (
	dcCreated = "http://purl.org/dc/terms/created"
	dcCreator = "http://purl.org/dc/terms/creator"
	secDomain = "https://w3id.org/security#domain"
	secNonce  = "https://w3id.org/security#nonce"
)

// SignedDocument is the result of parsing a signed JSON-LD document: the
// document's own RDF dataset with the signature entry removed, plus every
// signature that was embedded in it.
type SignedDocument struct {
	Document   *rdf.Dataset
	Signatures []DocumentSignature
}

// DocumentSignature is one embedded signature: the expanded options dataset
// covered by the signature, an optional node id, and the decoded signature
// bytes.
type DocumentSignature struct {
	ID      string
	Type    string
	Options *rdf.Dataset
	Value   []byte
}

// Verify checks every embedded signature against the document dataset. The
// first failing signature aborts verification.
func (d *SignedDocument) Verify(c rsa2017.Canonicalizer, publicKey *rsa.PublicKey) error {
	for i := range d.Signatures {
		if err := d.Signatures[i].Verify(c, d.Document, publicKey); err != nil {
			return err
		}
	}

	return nil
}

// Verify checks the signature over the given document dataset.
func (s *DocumentSignature) Verify(c rsa2017.Canonicalizer, document *rdf.Dataset,
	publicKey *rsa.PublicKey) error {
	return rsa2017.Verify(c, document, s.Options, publicKey, s.Value)
}

// Created returns the created timestamp from the options dataset.
func (s *DocumentSignature) Created() (string, bool) {
	return s.literal(dcCreated)
}

// Creator returns the creator IRI from the options dataset.
func (s *DocumentSignature) Creator() (string, bool) {
	for _, q := range s.Options.Quads() {
		p, ok := q.P.(rdf.IRI)
		if !ok || p.Value != dcCreator {
			continue
		}

		if iri, ok := q.O.(rdf.IRI); ok {
			return iri.Value, true
		}
	}

	return "", false
}

// Domain returns the domain from the options dataset.
func (s *DocumentSignature) Domain() (string, bool) {
	return s.literal(secDomain)
}

// Nonce returns the nonce from the options dataset.
func (s *DocumentSignature) Nonce() (string, bool) {
	return s.literal(secNonce)
}

func (s *DocumentSignature) literal(predicate string) (string, bool) {
	for _, q := range s.Options.Quads() {
		p, ok := q.P.(rdf.IRI)
		if !ok || p.Value != predicate {
			continue
		}

		if lit, ok := q.O.(rdf.Literal); ok {
			return lit.Lexical, true
		}
	}

	return "", false
}
