/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa2017

import (
	"crypto"
	"crypto/rsa"

	"github.com/hyperfed/rsasignature2017/rdf"
)

// VerificationError indicates that the signature bytes do not match the
// digest under the given public key. It is distinct from the dataset errors:
// a *VerificationError means the protocol ran to completion and the
// signature is simply wrong.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return "signature verification failed: " + e.Err.Error()
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Verify recomputes the digest over the document dataset and the
// caller-supplied options dataset and checks the signature against the RSA
// public key. A nil return means the signature is valid.
func Verify(c Canonicalizer, dataset, optionsDataset *rdf.Dataset,
	publicKey *rsa.PublicKey, signature []byte) error {
	digest, err := CreateVerifyHash(c, dataset, optionsDataset)
	if err != nil {
		return err
	}

	logger.Debugf("verifying digest %x", digest)

	if err := rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest, signature); err != nil {
		return &VerificationError{Err: err}
	}

	return nil
}
