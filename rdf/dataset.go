/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf

// Dataset is a set of quads. Duplicate insertions are ignored.
//
// The zero value is not usable; use NewDataset.
type Dataset struct {
	quads []Quad
	index map[string]struct{}
}

// NewDataset returns a new empty dataset.
func NewDataset() *Dataset {
	return &Dataset{index: make(map[string]struct{})}
}

// FromQuads builds a dataset from the given quads, dropping duplicates.
func FromQuads(quads []Quad) *Dataset {
	d := NewDataset()

	for _, q := range quads {
		d.Add(q)
	}

	return d
}

// Add inserts a quad into the dataset. It reports whether the quad was not
// already present.
func (d *Dataset) Add(q Quad) bool {
	key := renderQuad(q)
	if _, ok := d.index[key]; ok {
		return false
	}

	d.index[key] = struct{}{}
	d.quads = append(d.quads, q)

	return true
}

// Contains reports whether the dataset holds the given quad.
func (d *Dataset) Contains(q Quad) bool {
	_, ok := d.index[renderQuad(q)]
	return ok
}

// Quads returns the quads of the dataset in insertion order. The returned
// slice must not be modified.
func (d *Dataset) Quads() []Quad {
	return d.quads
}

// Len returns the number of quads in the dataset.
func (d *Dataset) Len() int {
	return len(d.quads)
}

// Equal reports whether both datasets contain exactly the same quads,
// regardless of insertion order.
func (d *Dataset) Equal(other *Dataset) bool {
	if d.Len() != other.Len() {
		return false
	}

	for key := range d.index {
		if _, ok := other.index[key]; !ok {
			return false
		}
	}

	return true
}
