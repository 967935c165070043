/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rsasignature2017 implements the RsaSignature2017 Linked Data
// Signature suite for JSON-LD documents.
//
// The signature/rsa2017 package provides the Create Verify Hash algorithm
// and the RSA sign/verify protocol over RDF datasets. The signature/signeddoc
// package locates, extracts, and re-embeds signatures in JSON-LD documents.
// The ld packages provide URDNA2015 canonicalization, JSON-LD expansion, and
// a context document loader with the legacy w3id.org contexts preloaded.
package rsasignature2017
