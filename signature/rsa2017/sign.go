/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa2017

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperfed/rsasignature2017/ld/processor"
	"github.com/hyperfed/rsasignature2017/rdf"
)

var logger = log.New("rsasignature2017/rsa2017")

// nonceSize is the number of random bytes drawn for a generated nonce. The
// base64url encoding of 15 bytes is exactly 20 characters with no padding.
const nonceSize = 15

// nonceMode selects how the signer populates the nonce option.
type nonceMode int

const (
	nonceGenerate nonceMode = iota
	nonceLiteral
	nonceOmit
)

// Signer produces RsaSignature2017 signatures over RDF datasets with an
// RSASSA-PKCS1-v1_5 SHA-256 private key.
type Signer struct {
	privateKey *rsa.PrivateKey

	canonicalizer Canonicalizer
	rand          io.Reader
	now           func() time.Time

	created        *time.Time
	createdLiteral *string
	domain         *string
	nonce          string
	mode           nonceMode
}

// SignerOption configures a Signer.
type SignerOption func(s *Signer)

// WithCreated option pins the created timestamp instead of using the current
// time at signing.
func WithCreated(t time.Time) SignerOption {
	return func(s *Signer) {
		s.created = &t
	}
}

// WithCreatedLiteral option puts the given string into the created option
// verbatim, bypassing timestamp formatting. It exists for reproducing
// signatures with a known created value and is unsafe for production use:
// the caller is responsible for supplying valid ISO-8601. It takes
// precedence over WithCreated.
func WithCreatedLiteral(created string) SignerOption {
	return func(s *Signer) {
		s.createdLiteral = &created
	}
}

// WithDomain option adds a domain restriction to the signature options.
func WithDomain(domain string) SignerOption {
	return func(s *Signer) {
		s.domain = &domain
	}
}

// WithNonce option uses the given nonce verbatim instead of generating one.
func WithNonce(nonce string) SignerOption {
	return func(s *Signer) {
		s.nonce = nonce
		s.mode = nonceLiteral
	}
}

// WithoutNonce option omits the nonce from the signature options entirely.
func WithoutNonce() SignerOption {
	return func(s *Signer) {
		s.mode = nonceOmit
	}
}

// WithRand option sets the randomness source used for RSA signing and nonce
// generation. Defaults to crypto/rand.
func WithRand(r io.Reader) SignerOption {
	return func(s *Signer) {
		s.rand = r
	}
}

// WithCanonicalizer option sets the dataset canonicalizer. Defaults to the
// URDNA2015 processor.
func WithCanonicalizer(c Canonicalizer) SignerOption {
	return func(s *Signer) {
		s.canonicalizer = c
	}
}

// NewSigner returns a signer over the given RSA private key.
func NewSigner(privateKey *rsa.PrivateKey, opts ...SignerOption) (*Signer, error) {
	if privateKey == nil {
		return nil, errors.New("private key is required")
	}

	s := &Signer{
		privateKey:    privateKey,
		canonicalizer: processor.Default(),
		rand:          rand.Reader,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Sign canonicalizes and signs the dataset on behalf of the given creator,
// returning the complete signature with the options that were covered by it.
func (s *Signer) Sign(dataset *rdf.Dataset, creator string) (*Signature, error) {
	options, err := s.buildOptions(creator)
	if err != nil {
		return nil, err
	}

	digest, err := CreateVerifyHash(s.canonicalizer, dataset, options.Dataset())
	if err != nil {
		return nil, err
	}

	logger.Debugf("signing digest %x for creator %s", digest, creator)

	value, err := rsa.SignPKCS1v15(s.rand, s.privateKey, crypto.SHA256, digest)
	if err != nil {
		return nil, fmt.Errorf("sign digest: %w", err)
	}

	return &Signature{Options: *options, Value: value}, nil
}

func (s *Signer) buildOptions(creator string) (*SignatureOptions, error) {
	var created string

	switch {
	case s.createdLiteral != nil:
		created = *s.createdLiteral
	case s.created != nil:
		created = formatCreated(*s.created)
	default:
		created = formatCreated(s.now())
	}

	options := &SignatureOptions{
		Created: created,
		Creator: creator,
		Domain:  s.domain,
	}

	switch s.mode {
	case nonceLiteral:
		nonce := s.nonce
		options.Nonce = &nonce
	case nonceGenerate:
		nonce, err := generateNonce(s.rand)
		if err != nil {
			return nil, err
		}

		options.Nonce = &nonce
	case nonceOmit:
	}

	return options, nil
}

func generateNonce(r io.Reader) (string, error) {
	raw := make([]byte, nonceSize)

	if _, err := io.ReadFull(r, raw); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
