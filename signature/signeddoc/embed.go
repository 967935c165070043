/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signeddoc

import (
	"github.com/hyperfed/rsasignature2017/internal/maphelpers"
	"github.com/hyperfed/rsasignature2017/signature/rsa2017"
)

// AddSignature returns a copy of the document with the signature embedded
// under the top-level "signature" key. An existing signature entry is
// replaced. The input map is not mutated.
func AddSignature(doc map[string]interface{}, sig *rsa2017.Signature) map[string]interface{} {
	signed := maphelpers.CopyMap(doc)
	signed[signatureField] = sig.JSONLdObject()

	return signed
}
