// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements rooted phylogenetic trees
// with branch lengths.
//
// A tree is built once
// (usually by a newick reader)
// and then it is only read.
// As trees are never modified after construction
// a single tree can be shared by many goroutines.
package tree

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// A Node is a node of a phylogenetic tree.
type Node struct {
	label    string
	length   float64
	parent   *Node
	children []*Node
}

// NewNode returns a new node
// with the given label,
// branch length
// (the distance to its parent),
// and children.
// The children are attached to the new node.
func NewNode(label string, length float64, children ...*Node) *Node {
	n := &Node{
		label:  label,
		length: length,
	}
	if len(children) > 0 {
		n.children = make([]*Node, len(children))
		copy(n.children, children)
	}
	for _, c := range n.children {
		c.parent = n
	}
	return n
}

// Children returns the children of a node,
// in their original order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// IsTerm returns true if the node is a terminal
// (i.e., a leaf).
func (n *Node) IsTerm() bool {
	return len(n.children) == 0
}

// Label returns the label of the node.
// It can be empty for internal nodes.
func (n *Node) Label() string {
	return n.label
}

// Length returns the length of the branch
// that connects the node with its parent.
func (n *Node) Length() float64 {
	return n.length
}

// Parent returns the parent of the node.
// It returns nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Errors returned when a tree is built.
var (
	ErrNoLabel   = errors.New("terminal without label")
	ErrDupLabel  = errors.New("repeated terminal label")
	ErrNegLength = errors.New("negative branch length")
	ErrInfLength = errors.New("non-finite branch length")
	ErrShared    = errors.New("node with more than one parent")
)

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	root  *Node
	size  int
	terms map[string]*Node
}

// New creates a new tree from a root node.
//
// Every terminal must have a unique, non-empty label,
// and no node can be reachable by more than one path.
// The branch length of the root is discarded.
func New(root *Node) (*Tree, error) {
	if root == nil {
		return nil, errors.New("nil root")
	}
	root.parent = nil
	root.length = 0

	t := &Tree{
		root:  root,
		terms: make(map[string]*Node),
	}
	if err := t.add(root); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) add(n *Node) error {
	t.size++
	if math.IsNaN(n.length) || math.IsInf(n.length, 0) {
		return fmt.Errorf("node %q: %w", n.label, ErrInfLength)
	}
	if n.length < 0 {
		return fmt.Errorf("node %q: %w", n.label, ErrNegLength)
	}
	if n.IsTerm() {
		if n.label == "" {
			return ErrNoLabel
		}
		if _, dup := t.terms[n.label]; dup {
			return fmt.Errorf("%w: %q", ErrDupLabel, n.label)
		}
		t.terms[n.label] = n
		return nil
	}

	for _, c := range n.children {
		if c.parent != n {
			return fmt.Errorf("node %q: %w", c.label, ErrShared)
		}
		if err := t.add(c); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return t.size
}

// NumTerms returns the number of terminals in the tree.
func (t *Tree) NumTerms() int {
	return len(t.terms)
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// TaxNode returns the terminal node
// with the given label.
func (t *Tree) TaxNode(label string) (*Node, bool) {
	n, ok := t.terms[label]
	return n, ok
}

// Terms returns the labels of the terminals,
// sorted alphabetically.
func (t *Tree) Terms() []string {
	terms := make([]string, 0, len(t.terms))
	for tax := range t.terms {
		terms = append(terms, tax)
	}
	slices.Sort(terms)
	return terms
}

// LeafLabels returns the set of terminal labels of the tree.
func (t *Tree) LeafLabels() map[string]bool {
	set := make(map[string]bool, len(t.terms))
	for tax := range t.terms {
		set[tax] = true
	}
	return set
}

// Nodes returns the nodes of the tree
// in pre-order.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, t.size)
	var visit func(n *Node)
	visit = func(n *Node) {
		nodes = append(nodes, n)
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
	return nodes
}

// SubtreeContainsAny returns true
// if the subtree rooted at n
// contains at least one terminal in the keep set.
func (t *Tree) SubtreeContainsAny(n *Node, keep map[string]bool) bool {
	if n.IsTerm() {
		return keep[n.label]
	}
	for _, c := range n.children {
		if t.SubtreeContainsAny(c, keep) {
			return true
		}
	}
	return false
}

// Mark returns the nodes of the tree
// whose subtree contains at least one terminal
// in the keep set.
// It is equivalent to calling SubtreeContainsAny on each node
// but it visits the tree a single time.
func (t *Tree) Mark(keep map[string]bool) map[*Node]bool {
	marked := make(map[*Node]bool)
	var mark func(n *Node) bool
	mark = func(n *Node) bool {
		in := false
		if n.IsTerm() {
			in = keep[n.label]
		}
		for _, c := range n.children {
			if mark(c) {
				in = true
			}
		}
		if in {
			marked[n] = true
		}
		return in
	}
	mark(t.root)
	return marked
}
