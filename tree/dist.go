// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Length returns the sum of all branch lengths of the tree.
func (t *Tree) Length() float64 {
	var sum float64
	for _, n := range t.Nodes() {
		sum += n.length
	}
	return sum
}

// RootDist returns the distance from the root
// to the indicated terminal.
func (t *Tree) RootDist(label string) (float64, error) {
	n, ok := t.terms[label]
	if !ok {
		return 0, fmt.Errorf("terminal %q not in tree", label)
	}
	return rootDist(n), nil
}

func rootDist(n *Node) float64 {
	var d float64
	for ; n != nil; n = n.parent {
		d += n.length
	}
	return d
}

// Patristic returns the patristic distance
// (the sum of branch lengths along the path)
// between two terminals.
func (t *Tree) Patristic(a, b string) (float64, error) {
	na, ok := t.terms[a]
	if !ok {
		return 0, fmt.Errorf("terminal %q not in tree", a)
	}
	nb, ok := t.terms[b]
	if !ok {
		return 0, fmt.Errorf("terminal %q not in tree", b)
	}
	return patristic(na, nb), nil
}

func patristic(a, b *Node) float64 {
	if a == b {
		return 0
	}

	// distance from a to each of its ancestors
	up := make(map[*Node]float64)
	var d float64
	for n := a; n != nil; n = n.parent {
		up[n] = d
		d += n.length
	}

	d = 0
	for n := b; n != nil; n = n.parent {
		if da, ok := up[n]; ok {
			return da + d
		}
		d += n.length
	}
	panic("tree: nodes without common ancestor")
}

// DistMatrix returns a symmetric matrix
// with the patristic distances between the indicated terminals.
// Rows and columns follow the order of the terms slice.
// If terms is empty,
// all terminals will be used,
// in alphabetical order.
func (t *Tree) DistMatrix(terms []string) (*mat.SymDense, error) {
	if len(terms) == 0 {
		terms = t.Terms()
	}
	nodes := make([]*Node, len(terms))
	for i, tax := range terms {
		n, ok := t.terms[tax]
		if !ok {
			return nil, fmt.Errorf("terminal %q not in tree", tax)
		}
		nodes[i] = n
	}

	m := mat.NewSymDense(len(nodes), nil)
	for i, a := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			m.SetSym(i, j, patristic(a, nodes[j]))
		}
	}
	return m, nil
}
