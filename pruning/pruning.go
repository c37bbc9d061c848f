// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pruning reduces a phylogenetic tree
// to the minimal subtree that spans a set of terminals,
// preserving the patristic distances
// between the retained terminals.
package pruning

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/phyprune/tree"
)

// ErrEmptySelection is returned
// when no terminal is selected.
var ErrEmptySelection = errors.New("pruning: empty selection")

// An UnknownTaxonError is returned
// when one or more selected taxa
// are not terminals of the tree.
type UnknownTaxonError struct {
	Taxa []string // sorted
}

func (e *UnknownTaxonError) Error() string {
	if len(e.Taxa) == 1 {
		return fmt.Sprintf("pruning: taxon %q not in tree", e.Taxa[0])
	}
	return fmt.Sprintf("pruning: %d taxa not in tree: %s", len(e.Taxa), strings.Join(e.Taxa, ", "))
}

// Prune returns a new tree
// with only the terminals in keep.
//
// Nodes without selected terminals are removed,
// and any internal node left with a single child
// is replaced by that child,
// adding the length of the removed branch
// to the branch of the child.
// If the root is left with a single child,
// the child becomes the new root.
// If keep has a single taxon,
// the result is a tree with a single node.
//
// The source tree is not modified.
func Prune(t *tree.Tree, keep []string) (*tree.Tree, error) {
	if len(keep) == 0 {
		return nil, ErrEmptySelection
	}

	set := make(map[string]bool, len(keep))
	var unknown []string
	for _, tax := range keep {
		if set[tax] {
			continue
		}
		set[tax] = true
		if _, ok := t.TaxNode(tax); !ok {
			unknown = append(unknown, tax)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, &UnknownTaxonError{Taxa: unknown}
	}

	marked := t.Mark(set)
	root := copySource(t.Root(), marked)

	nt, err := tree.New(root)
	if err != nil {
		return nil, fmt.Errorf("pruning: %v", err)
	}
	return nt, nil
}

// CopySource returns a copy of the subtree of n
// with only the marked nodes,
// collapsing nodes with a single descendant.
func copySource(n *tree.Node, marked map[*tree.Node]bool) *tree.Node {
	if n.IsTerm() {
		return tree.NewNode(n.Label(), n.Length())
	}

	children := make([]*tree.Node, 0, len(n.Children()))
	for _, c := range n.Children() {
		if !marked[c] {
			continue
		}
		children = append(children, copySource(c, marked))
	}

	if len(children) == 1 {
		c := children[0]
		return tree.NewNode(c.Label(), c.Length()+n.Length(), c.Children()...)
	}
	return tree.NewNode(n.Label(), n.Length(), children...)
}
