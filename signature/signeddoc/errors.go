/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signeddoc

import "errors"

// Structural errors returned by Parse. Each one identifies a specific way
// the input document fails the embedding convention; callers can branch on
// them with errors.Is.
var (
	// ErrMissingSignatureOptions is returned when the document has no
	// top-level "signature" entry, when the entry is an empty array, or when
	// a signature node lacks the "signatureValue" field.
	ErrMissingSignatureOptions = errors.New("missing signature options")

	// ErrUnsupportedType is returned when a signature node's "type" does not
	// denote RsaSignature2017.
	ErrUnsupportedType = errors.New("unsupported signature type")

	// ErrNestingSignatureNode is returned when a signature's options expand
	// to RDF with more than one subject or with named graphs, meaning the
	// options object contained nested node objects.
	ErrNestingSignatureNode = errors.New("nesting signature node")

	// ErrDuplicateSignatures is returned when a signature entry wraps more
	// than one node in a nested array.
	ErrDuplicateSignatures = errors.New("duplicate signatures")

	// ErrBadSubject is returned when a signature's options expand to a
	// single subject that is not a blank node.
	ErrBadSubject = errors.New("bad subject")

	// ErrBadSignatureOptions is returned when the signature entry or one of
	// its fields has an unusable JSON shape.
	ErrBadSignatureOptions = errors.New("bad signature options")

	// ErrBadSignatureValue is returned when "signatureValue" is not a valid
	// standard-base64 string.
	ErrBadSignatureValue = errors.New("bad signature value")
)

// DocumentExpansionError indicates that JSON-LD expansion of the document
// (with the signature entry removed) failed.
type DocumentExpansionError struct {
	Err error
}

func (e *DocumentExpansionError) Error() string {
	return "expand document: " + e.Err.Error()
}

func (e *DocumentExpansionError) Unwrap() error { return e.Err }

// OptionsExpansionError indicates that JSON-LD expansion of a signature's
// options object failed.
type OptionsExpansionError struct {
	Err error
}

func (e *OptionsExpansionError) Error() string {
	return "expand signature options: " + e.Err.Error()
}

func (e *OptionsExpansionError) Unwrap() error { return e.Err }
