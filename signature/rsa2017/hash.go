/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa2017

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/hyperfed/rsasignature2017/rdf"
)

// Canonicalizer produces a deterministic serialization of an RDF dataset.
// *processor.Processor satisfies this interface.
type Canonicalizer interface {
	Canonicalize(dataset *rdf.Dataset) ([]byte, error)
}

// OptionsDatasetError indicates that canonicalization of the signature
// options dataset failed.
type OptionsDatasetError struct {
	Err error
}

func (e *OptionsDatasetError) Error() string {
	return "canonicalize signature options: " + e.Err.Error()
}

func (e *OptionsDatasetError) Unwrap() error { return e.Err }

// DatasetError indicates that canonicalization of the document dataset
// failed.
type DatasetError struct {
	Err error
}

func (e *DatasetError) Error() string {
	return "canonicalize document: " + e.Err.Error()
}

func (e *DatasetError) Unwrap() error { return e.Err }

// CreateVerifyHash returns the digest that is signed and verified: the
// SHA-256 hash of the concatenation of the lowercase hex SHA-256 digests of
// the canonicalized options dataset and the canonicalized document dataset,
// options first.
//
// The options dataset is canonicalized before the document dataset, so an
// options failure is reported even when the document dataset is also bad.
func CreateVerifyHash(c Canonicalizer, dataset, optionsDataset *rdf.Dataset) ([]byte, error) {
	optionsNQuads, err := c.Canonicalize(optionsDataset)
	if err != nil {
		return nil, &OptionsDatasetError{Err: err}
	}

	docNQuads, err := c.Canonicalize(dataset)
	if err != nil {
		return nil, &DatasetError{Err: err}
	}

	h := sha256.New()
	h.Write(hexDigest(optionsNQuads))
	h.Write(hexDigest(docNQuads))

	return h.Sum(nil), nil
}

// hexDigest returns the lowercase hex encoding of the SHA-256 digest of b.
func hexDigest(b []byte) []byte {
	digest := sha256.Sum256(b)

	out := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(out, digest[:])

	return out
}
