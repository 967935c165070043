/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa2017

import (
	"time"

	"github.com/hyperfed/rsasignature2017/rdf"
)

const (
	dcCreated = "http://purl.org/dc/terms/created"
	dcCreator = "http://purl.org/dc/terms/creator"
	secDomain = "https://w3id.org/security#domain"
	secNonce  = "https://w3id.org/security#nonce"

	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"

	optionsSubject = "b0"

	timeLayout = "2006-01-02T15:04:05.000Z"
)

// SignatureOptions carries the signature metadata covered by the signature
// alongside the document. Domain and Nonce are optional and are omitted from
// the options dataset when nil.
type SignatureOptions struct {
	Created string
	Creator string
	Domain  *string
	Nonce   *string
}

// formatCreated renders a timestamp in the fixed-width UTC form used by the
// created property, with millisecond precision.
func formatCreated(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Dataset builds the RDF dataset representation of the options: a single
// blank subject carrying the created timestamp, the creator IRI, and the
// optional domain and nonce literals, all in the default graph.
func (o *SignatureOptions) Dataset() *rdf.Dataset {
	subject := rdf.BlankNode{ID: optionsSubject}

	dataset := rdf.NewDataset()

	dataset.Add(rdf.Quad{
		S: subject,
		P: rdf.IRI{Value: dcCreated},
		O: rdf.Literal{Lexical: o.Created, Datatype: rdf.IRI{Value: xsdDateTime}},
	})

	dataset.Add(rdf.Quad{
		S: subject,
		P: rdf.IRI{Value: dcCreator},
		O: rdf.IRI{Value: o.Creator},
	})

	if o.Domain != nil {
		dataset.Add(rdf.Quad{
			S: subject,
			P: rdf.IRI{Value: secDomain},
			O: rdf.Literal{Lexical: *o.Domain},
		})
	}

	if o.Nonce != nil {
		dataset.Add(rdf.Quad{
			S: subject,
			P: rdf.IRI{Value: secNonce},
			O: rdf.Literal{Lexical: *o.Nonce},
		})
	}

	return dataset
}
