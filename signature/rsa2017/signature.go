/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa2017

import (
	"encoding/base64"
	"encoding/json"
)

// SignatureType is the proof type produced and accepted by this suite.
const SignatureType = "RsaSignature2017"

const securityContext = "https://w3id.org/security/v1"

// Signature is a complete RsaSignature2017 proof: the options that were
// covered by the signature plus the signature bytes themselves.
type Signature struct {
	ID      string
	Options SignatureOptions
	Value   []byte
}

// JSONLdObject returns the JSON-LD node form of the signature, suitable for
// embedding into a document under the "signature" key. The @vocab entry lets
// the type tag expand for plain JSON-LD processors.
func (s *Signature) JSONLdObject() map[string]interface{} {
	node := map[string]interface{}{
		"@context": []interface{}{
			securityContext,
			map[string]interface{}{"@vocab": "sec:"},
		},
		"type":           SignatureType,
		"creator":        s.Options.Creator,
		"created":        s.Options.Created,
		"signatureValue": base64.StdEncoding.EncodeToString(s.Value),
	}

	if s.ID != "" {
		node["id"] = s.ID
	}

	if s.Options.Domain != nil {
		node["domain"] = *s.Options.Domain
	}

	if s.Options.Nonce != nil {
		node["nonce"] = *s.Options.Nonce
	}

	return node
}

// MarshalJSON serializes the signature in its JSON-LD node form.
func (s *Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.JSONLdObject())
}
