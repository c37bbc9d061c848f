// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/phyprune/tree"
)

// Tree reads the reference tree
// as defined in a project.
func (p *Project) Tree() (*tree.Tree, error) {
	name := p.Path(Tree)
	if name == "" {
		return nil, fmt.Errorf("reference tree not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := newick.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return t, nil
}

// Features reads the feature table
// as defined in a project.
// The field id is the field of the taxon identifiers
// (if empty, feature.DefaultID is used).
func (p *Project) Features(id string) (*feature.Table, error) {
	name := p.Path(Features)
	if name == "" {
		return nil, fmt.Errorf("feature table not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := feature.ReadTSV(f, id)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// Samples reads the list of samples
// from the sample metadata
// as defined in a project.
// The first skip lines of the file are ignored.
func (p *Project) Samples(skip int) ([]string, error) {
	name := p.Path(Samples)
	if name == "" {
		return nil, fmt.Errorf("samples not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ls, err := feature.ReadSamples(f, skip)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return ls, nil
}
