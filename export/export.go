// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export converts pruned trees
// into time-calibrated tree collections
// of the timetree package,
// the tree format used by PhyGeo.
package export

import (
	"fmt"
	"strings"

	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/phyprune/tree"
	"github.com/js-arias/timetree"
)

// Add adds a tree to a time tree collection,
// using name as the name of the tree.
//
// Branch lengths are multiplied by scale
// and then interpreted as million years.
// The age of the root is the largest distance
// from the root to a terminal.
func Add(c *timetree.Collection, name string, t *tree.Tree, scale float64) error {
	if t.NumTerms() < 2 {
		return fmt.Errorf("tree %q: time trees require at least two terminals", name)
	}
	if scale <= 0 {
		return fmt.Errorf("tree %q: invalid scale %.6f", name, scale)
	}

	st, err := tree.New(scaled(t.Root(), scale))
	if err != nil {
		return fmt.Errorf("tree %q: %v", name, err)
	}
	s, err := newick.Format(st)
	if err != nil {
		return fmt.Errorf("tree %q: %v", name, err)
	}

	nc, err := timetree.Newick(strings.NewReader(s), name, 0)
	if err != nil {
		return fmt.Errorf("tree %q: %v", name, err)
	}
	for _, tn := range nc.Names() {
		if err := c.Add(nc.Tree(tn)); err != nil {
			return fmt.Errorf("tree %q: %v", name, err)
		}
	}
	return nil
}

func scaled(n *tree.Node, scale float64) *tree.Node {
	children := make([]*tree.Node, 0, len(n.Children()))
	for _, c := range n.Children() {
		children = append(children, scaled(c, scale))
	}
	return tree.NewNode(n.Label(), n.Length()*scale, children...)
}
