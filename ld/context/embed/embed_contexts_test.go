/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedContexts(t *testing.T) {
	require.Len(t, Contexts, 4)

	urls := make(map[string]struct{})

	for _, doc := range Contexts {
		urls[doc.URL] = struct{}{}

		var content map[string]interface{}

		require.NoError(t, json.Unmarshal(doc.Content, &content))
		require.Contains(t, content, "@context")
	}

	for _, u := range []string{
		"https://w3id.org/identity/v1",
		"http://w3id.org/identity/v1",
		"https://w3id.org/security/v1",
		"http://w3id.org/security/v1",
	} {
		require.Contains(t, urls, u)
	}
}
