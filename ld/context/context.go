/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package context provides a type for JSON-LD context documents with metadata.
package context

// Document is a JSON-LD context document with associated metadata.
type Document struct {
	// URL is the context URL that shows up in documents.
	URL string `json:"url"`
	// DocumentURL is the final URL of the loaded context document, if different.
	DocumentURL string `json:"documentURL,omitempty"`
	// Content is the context document body.
	Content []byte `json:"content"`
}
