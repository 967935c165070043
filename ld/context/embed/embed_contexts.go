/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package embed holds JSON-LD context documents compiled into the binary.
//
// The Linked Data Signatures spec and most existing implementations reference
// the https://w3id.org/identity/v1 context, whose hosting has since been
// abandoned; documents signed against it cannot be verified without a cached
// copy. The https://w3id.org/security/v1 context defines the same signature
// terms and is stable enough to cache as well. Both are registered under
// their http and https IRI variants.
package embed

import (
	_ "embed" //nolint:gci // required for go:embed

	ldcontext "github.com/hyperfed/rsasignature2017/ld/context"
)

// nolint:gochecknoglobals // required for go:embed
var (
	//go:embed third_party/w3id.org/identity_v1.jsonld
	identityV1 []byte
	//go:embed third_party/w3id.org/security_v1.jsonld
	securityV1 []byte
)

// Contexts contains JSON-LD contexts embedded into a Go binary.
var Contexts = []ldcontext.Document{ //nolint:gochecknoglobals
	{
		URL:         "https://w3id.org/identity/v1",
		DocumentURL: "https://w3id.org/identity/v1",
		Content:     identityV1,
	},
	{
		URL:         "http://w3id.org/identity/v1",
		DocumentURL: "https://w3id.org/identity/v1",
		Content:     identityV1,
	},
	{
		URL:         "https://w3id.org/security/v1",
		DocumentURL: "https://w3c-ccg.github.io/security-vocab/contexts/security-v1.jsonld",
		Content:     securityV1,
	},
	{
		URL:         "http://w3id.org/security/v1",
		DocumentURL: "https://w3c-ccg.github.io/security-vocab/contexts/security-v1.jsonld",
		Content:     securityV1,
	},
}
