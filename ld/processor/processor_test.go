/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"fmt"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/require"

	"github.com/hyperfed/rsasignature2017/rdf"
)

func TestCanonicalize(t *testing.T) {
	t.Run("single quad", func(t *testing.T) {
		d := rdf.NewDataset()
		d.Add(rdf.Quad{
			S: rdf.BlankNode{ID: "anything"},
			P: rdf.IRI{Value: "http://example.com/p"},
			O: rdf.Literal{Lexical: "x"},
		})

		out, err := Default().Canonicalize(d)
		require.NoError(t, err)
		require.Equal(t, "_:c14n0 <http://example.com/p> \"x\" .\n", string(out))
	})

	t.Run("independent of insertion order and blank labels", func(t *testing.T) {
		build := func(labels []string, reversed bool) *rdf.Dataset {
			quads := []rdf.Quad{
				{
					S: rdf.BlankNode{ID: labels[0]},
					P: rdf.IRI{Value: "http://example.com/knows"},
					O: rdf.BlankNode{ID: labels[1]},
				},
				{
					S: rdf.BlankNode{ID: labels[1]},
					P: rdf.IRI{Value: "http://example.com/name"},
					O: rdf.Literal{Lexical: "Alice"},
				},
			}

			if reversed {
				quads[0], quads[1] = quads[1], quads[0]
			}

			return rdf.FromQuads(quads)
		}

		first, err := Default().Canonicalize(build([]string{"a", "b"}, false))
		require.NoError(t, err)

		second, err := Default().Canonicalize(build([]string{"z9", "q3"}, true))
		require.NoError(t, err)

		require.Equal(t, string(first), string(second))
	})

	t.Run("toxic graph rejected", func(t *testing.T) {
		d := rdf.NewDataset()

		for i := 0; i < 3; i++ {
			d.Add(rdf.Quad{
				S: rdf.BlankNode{ID: fmt.Sprintf("b%d", i)},
				P: rdf.IRI{Value: "http://example.com/p"},
				O: rdf.BlankNode{ID: fmt.Sprintf("b%d", (i+1)%3)},
			})
		}

		_, err := Default(WithMaxBlankNodes(2)).Canonicalize(d)
		require.Error(t, err)

		var toxicErr *ToxicGraphError
		require.ErrorAs(t, err, &toxicErr)
		require.Contains(t, toxicErr.Error(), "toxic graph")
	})

	t.Run("generalized RDF predicate rejected", func(t *testing.T) {
		d := rdf.NewDataset()
		d.Add(rdf.Quad{
			S: rdf.BlankNode{ID: "b0"},
			P: rdf.BlankNode{ID: "b1"},
			O: rdf.Literal{Lexical: "x"},
		})

		_, err := Default().Canonicalize(d)

		var unsupportedErr *UnsupportedError
		require.ErrorAs(t, err, &unsupportedErr)
	})

	t.Run("literal subject rejected", func(t *testing.T) {
		d := rdf.NewDataset()
		d.Add(rdf.Quad{
			S: rdf.Literal{Lexical: "x"},
			P: rdf.IRI{Value: "http://example.com/p"},
			O: rdf.Literal{Lexical: "y"},
		})

		_, err := Default().Canonicalize(d)

		var unsupportedErr *UnsupportedError
		require.ErrorAs(t, err, &unsupportedErr)
	})
}

func TestExpandToDataset(t *testing.T) {
	t.Run("inline context", func(t *testing.T) {
		doc := map[string]interface{}{
			"@context": map[string]interface{}{
				"name": "http://schema.org/name",
			},
			"name": "Bob",
		}

		d, err := Default().ExpandToDataset(doc)
		require.NoError(t, err)
		require.Equal(t, 1, d.Len())

		q := d.Quads()[0]
		require.Equal(t, rdf.TermBlankNode, q.S.Kind())
		require.Equal(t, rdf.IRI{Value: "http://schema.org/name"}, q.P)
		require.Equal(t, rdf.Literal{Lexical: "Bob"}, q.O)
		require.True(t, q.InDefaultGraph())
	})

	t.Run("invalid context fails", func(t *testing.T) {
		doc := map[string]interface{}{
			"@context": "http://invalid.example.com/context",
			"name":     "Bob",
		}

		_, err := Default().ExpandToDataset(doc, WithDocumentLoader(&failingLoader{}))
		require.Error(t, err)
	})
}

type failingLoader struct{}

func (l *failingLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, fmt.Errorf("no document at %s", u)
}
