/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa2017

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperfed/rsasignature2017/ld/processor"
	"github.com/hyperfed/rsasignature2017/rdf"
)

const testCreator = "https://example.com/users/1#main-key"

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return privateKey
}

func TestSignerSign(t *testing.T) {
	privateKey := generateKey(t)

	t.Run("round trip", func(t *testing.T) {
		signer, err := NewSigner(privateKey)
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)

		require.Equal(t, testCreator, sig.Options.Creator)
		require.NotEmpty(t, sig.Options.Created)
		require.NotNil(t, sig.Options.Nonce)
		require.NotEmpty(t, sig.Value)

		err = Verify(processor.Default(), noteDataset(t), sig.Options.Dataset(),
			&privateKey.PublicKey, sig.Value)
		require.NoError(t, err)
	})

	t.Run("verbatim created literal", func(t *testing.T) {
		signer, err := NewSigner(privateKey,
			WithCreatedLiteral("2024-01-01T00:00:00Z"),
			WithDomain("https://w3id.org/security#assertionMethod"),
			WithNonce("deadbeef12345678"))
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)
		require.Equal(t, "2024-01-01T00:00:00Z", sig.Options.Created)

		digest, err := CreateVerifyHash(processor.Default(), noteDataset(t), sig.Options.Dataset())
		require.NoError(t, err)
		require.Equal(t,
			"b09ad7a64f32905af0ddada6082d9e7af89a001dc6d03b62d983036c9f98161b",
			hex.EncodeToString(digest))

		err = Verify(processor.Default(), noteDataset(t), sig.Options.Dataset(),
			&privateKey.PublicKey, sig.Value)
		require.NoError(t, err)
	})

	t.Run("created literal takes precedence over pinned time", func(t *testing.T) {
		signer, err := NewSigner(privateKey,
			WithCreated(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
			WithCreatedLiteral("2024-01-01T00:00:00Z"))
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)
		require.Equal(t, "2024-01-01T00:00:00Z", sig.Options.Created)
	})

	t.Run("pinned created timestamp", func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)

		signer, err := NewSigner(privateKey, WithCreated(created))
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)

		require.Equal(t, "2024-01-02T03:04:05.678Z", sig.Options.Created)
	})

	t.Run("generated nonce is 20 base64url characters", func(t *testing.T) {
		signer, err := NewSigner(privateKey, WithRand(bytes.NewReader(make([]byte, 1024))))
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)

		require.NotNil(t, sig.Options.Nonce)
		require.Equal(t, "AAAAAAAAAAAAAAAAAAAA", *sig.Options.Nonce)
	})

	t.Run("literal nonce", func(t *testing.T) {
		signer, err := NewSigner(privateKey, WithNonce("deadbeef12345678"))
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)

		require.NotNil(t, sig.Options.Nonce)
		require.Equal(t, "deadbeef12345678", *sig.Options.Nonce)
	})

	t.Run("omitted nonce", func(t *testing.T) {
		signer, err := NewSigner(privateKey, WithoutNonce())
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)

		require.Nil(t, sig.Options.Nonce)
		require.NotContains(t, sig.JSONLdObject(), "nonce")

		err = Verify(processor.Default(), noteDataset(t), sig.Options.Dataset(),
			&privateKey.PublicKey, sig.Value)
		require.NoError(t, err)
	})

	t.Run("domain covered by signature", func(t *testing.T) {
		signer, err := NewSigner(privateKey, WithDomain("https://example.com"))
		require.NoError(t, err)

		sig, err := signer.Sign(noteDataset(t), testCreator)
		require.NoError(t, err)

		require.NotNil(t, sig.Options.Domain)

		stripped := sig.Options
		stripped.Domain = nil

		err = Verify(processor.Default(), noteDataset(t), stripped.Dataset(),
			&privateKey.PublicKey, sig.Value)
		require.Error(t, err)
	})

	t.Run("missing private key", func(t *testing.T) {
		_, err := NewSigner(nil)
		require.EqualError(t, err, "private key is required")
	})
}

func TestVerify(t *testing.T) {
	privateKey := generateKey(t)

	signer, err := NewSigner(privateKey, WithNonce("deadbeef12345678"))
	require.NoError(t, err)

	sig, err := signer.Sign(noteDataset(t), testCreator)
	require.NoError(t, err)

	t.Run("wrong key fails with verification error", func(t *testing.T) {
		otherKey := generateKey(t)

		err := Verify(processor.Default(), noteDataset(t), sig.Options.Dataset(),
			&otherKey.PublicKey, sig.Value)

		var verificationErr *VerificationError
		require.ErrorAs(t, err, &verificationErr)
	})

	t.Run("tampered document fails with verification error", func(t *testing.T) {
		tampered := noteDataset(t)
		tampered.Add(rdf.Quad{
			S: rdf.BlankNode{ID: "b0"},
			P: rdf.IRI{Value: "https://www.w3.org/ns/activitystreams#summary"},
			O: rdf.Literal{Lexical: "injected"},
		})

		err := Verify(processor.Default(), tampered, sig.Options.Dataset(),
			&privateKey.PublicKey, sig.Value)

		var verificationErr *VerificationError
		require.ErrorAs(t, err, &verificationErr)
	})

	t.Run("garbled signature fails with verification error", func(t *testing.T) {
		garbled := append([]byte{}, sig.Value...)
		garbled[0] ^= 0xff

		err := Verify(processor.Default(), noteDataset(t), sig.Options.Dataset(),
			&privateKey.PublicKey, garbled)

		var verificationErr *VerificationError
		require.ErrorAs(t, err, &verificationErr)
	})

	t.Run("canonicalization failure is not a verification error", func(t *testing.T) {
		err := Verify(&stubCanonicalizer{failOn: 1}, noteDataset(t),
			(&SignatureOptions{Created: "2024-01-01T00:00:00Z", Creator: testCreator}).Dataset(),
			&privateKey.PublicKey, sig.Value)

		var verificationErr *VerificationError
		require.False(t, errors.As(err, &verificationErr))

		var optionsErr *OptionsDatasetError
		require.ErrorAs(t, err, &optionsErr)
	})
}
