// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package feature implements feature tables
// (also known as abundance or OTU tables),
// that store the abundance of each taxon
// in a set of samples.
package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultID is the default name of the field
// with the taxon identifiers.
const DefaultID = "OTU_ID"

// ErrNoSample is returned
// when a sample is not defined in the table.
var ErrNoSample = errors.New("sample not in table")

// A Table is a feature table.
type Table struct {
	taxa    []string
	samples []string

	taxIdx map[string]int
	smpIdx map[string]int

	// rows are taxa, columns are samples
	data *mat.Dense
}

// Taxa returns the taxa of the table,
// in the order of the table.
func (t *Table) Taxa() []string {
	taxa := make([]string, len(t.taxa))
	copy(taxa, t.taxa)
	return taxa
}

// Samples returns the samples of the table,
// in the order of the table.
func (t *Table) Samples() []string {
	samples := make([]string, len(t.samples))
	copy(samples, t.samples)
	return samples
}

// HasSample returns true
// if the sample is defined in the table.
func (t *Table) HasSample(sample string) bool {
	_, ok := t.smpIdx[sample]
	return ok
}

// HasTaxon returns true
// if the taxon is defined in the table.
func (t *Table) HasTaxon(taxon string) bool {
	_, ok := t.taxIdx[taxon]
	return ok
}

// Value returns the abundance of a taxon
// in a sample.
func (t *Table) Value(taxon, sample string) float64 {
	i, ok := t.taxIdx[taxon]
	if !ok {
		return 0
	}
	j, ok := t.smpIdx[sample]
	if !ok {
		return 0
	}
	return t.data.At(i, j)
}

// Present returns the taxa
// with a non-zero abundance in a sample,
// in the order of the table.
func (t *Table) Present(sample string) ([]string, error) {
	j, ok := t.smpIdx[sample]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSample, sample)
	}

	var taxa []string
	for i, tax := range t.taxa {
		if t.data.At(i, j) != 0 {
			taxa = append(taxa, tax)
		}
	}
	return taxa, nil
}

// Select returns the taxa present in a sample.
// It is an alias of Present.
func (t *Table) Select(sample string) ([]string, error) {
	return t.Present(sample)
}
