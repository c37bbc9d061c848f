// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/phyprune/tree"
)

// newTree returns the tree
// ((A:1,B:2)X:3,(C:4,D:5)Y:6);
func newTree(t testing.TB) *tree.Tree {
	t.Helper()

	root := tree.NewNode("", 0,
		tree.NewNode("X", 3,
			tree.NewNode("A", 1),
			tree.NewNode("B", 2),
		),
		tree.NewNode("Y", 6,
			tree.NewNode("C", 4),
			tree.NewNode("D", 5),
		),
	)
	tr, err := tree.New(root)
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}
	return tr
}

func TestTree(t *testing.T) {
	tr := newTree(t)

	if tr.Len() != 7 {
		t.Errorf("len: got %d, want %d", tr.Len(), 7)
	}
	if tr.NumTerms() != 4 {
		t.Errorf("terms: got %d, want %d", tr.NumTerms(), 4)
	}
	terms := []string{"A", "B", "C", "D"}
	if got := tr.Terms(); !reflect.DeepEqual(got, terms) {
		t.Errorf("terms: got %v, want %v", got, terms)
	}
	set := map[string]bool{"A": true, "B": true, "C": true, "D": true}
	if got := tr.LeafLabels(); !reflect.DeepEqual(got, set) {
		t.Errorf("leaf labels: got %v, want %v", got, set)
	}

	var order []string
	for _, n := range tr.Nodes() {
		order = append(order, n.Label())
	}
	want := []string{"", "X", "A", "B", "Y", "C", "D"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("pre-order: got %q, want %q", order, want)
	}

	c, ok := tr.TaxNode("C")
	if !ok {
		t.Fatalf("terminal %q not found", "C")
	}
	if p := c.Parent(); p == nil || p.Label() != "Y" {
		t.Errorf("parent of %q: got %v, want %q", "C", p, "Y")
	}
	if tr.Root().Parent() != nil {
		t.Errorf("root: unexpected parent")
	}
	if _, ok := tr.TaxNode("X"); ok {
		t.Errorf("internal node %q found as terminal", "X")
	}
}

func TestNewError(t *testing.T) {
	shared := tree.NewNode("S", 1)
	tests := map[string]struct {
		root *tree.Node
		err  error
	}{
		"no label": {
			root: tree.NewNode("", 0, tree.NewNode("A", 1), tree.NewNode("", 1)),
			err:  tree.ErrNoLabel,
		},
		"repeated": {
			root: tree.NewNode("", 0, tree.NewNode("A", 1), tree.NewNode("", 1, tree.NewNode("A", 1), tree.NewNode("B", 1))),
			err:  tree.ErrDupLabel,
		},
		"negative": {
			root: tree.NewNode("", 0, tree.NewNode("A", -1), tree.NewNode("B", 1)),
			err:  tree.ErrNegLength,
		},
		"NaN": {
			root: tree.NewNode("", 0, tree.NewNode("A", math.NaN()), tree.NewNode("B", 1)),
			err:  tree.ErrInfLength,
		},
		"infinite": {
			root: tree.NewNode("", 0, tree.NewNode("A", 1), tree.NewNode("B", math.Inf(1))),
			err:  tree.ErrInfLength,
		},
		"negative infinite": {
			root: tree.NewNode("", 0, tree.NewNode("A", 1), tree.NewNode("", math.Inf(-1), tree.NewNode("B", 1), tree.NewNode("C", 1))),
			err:  tree.ErrInfLength,
		},
		"shared": {
			root: tree.NewNode("", 0, shared, tree.NewNode("", 1, shared, tree.NewNode("B", 1))),
			err:  tree.ErrShared,
		},
	}

	for name, test := range tests {
		_, err := tree.New(test.root)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", name, err, test.err)
		}
	}
}

func TestMark(t *testing.T) {
	tr := newTree(t)
	keep := map[string]bool{"A": true, "D": true}

	marked := tr.Mark(keep)
	want := map[string]bool{
		"":  true,
		"X": true,
		"A": true,
		"B": false,
		"Y": true,
		"C": false,
		"D": true,
	}
	for _, n := range tr.Nodes() {
		if marked[n] != want[n.Label()] {
			t.Errorf("mark %q: got %v, want %v", n.Label(), marked[n], want[n.Label()])
		}
		if got := tr.SubtreeContainsAny(n, keep); got != want[n.Label()] {
			t.Errorf("subtree %q: got %v, want %v", n.Label(), got, want[n.Label()])
		}
	}

	keep = map[string]bool{"A": true, "B": true}
	marked = tr.Mark(keep)
	for _, n := range tr.Nodes() {
		if n.Label() == "Y" || n.Label() == "C" || n.Label() == "D" {
			if marked[n] {
				t.Errorf("mark %q: got %v, want %v", n.Label(), true, false)
			}
		}
	}
}

func TestDistance(t *testing.T) {
	tr := newTree(t)

	if l := tr.Length(); l != 21 {
		t.Errorf("length: got %.6f, want %.6f", l, 21.0)
	}

	rd := map[string]float64{"A": 4, "B": 5, "C": 10, "D": 11}
	for tax, want := range rd {
		got, err := tr.RootDist(tax)
		if err != nil {
			t.Errorf("root distance %q: %v", tax, err)
			continue
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("root distance %q: got %.6f, want %.6f", tax, got, want)
		}
	}

	pairs := []struct {
		a, b string
		d    float64
	}{
		{"A", "A", 0},
		{"A", "B", 3},
		{"B", "A", 3},
		{"A", "C", 14},
		{"A", "D", 15},
		{"B", "D", 16},
		{"C", "D", 9},
	}
	for _, p := range pairs {
		got, err := tr.Patristic(p.a, p.b)
		if err != nil {
			t.Errorf("distance %q-%q: %v", p.a, p.b, err)
			continue
		}
		if math.Abs(got-p.d) > 1e-9 {
			t.Errorf("distance %q-%q: got %.6f, want %.6f", p.a, p.b, got, p.d)
		}
	}
	if _, err := tr.Patristic("A", "Z"); err == nil {
		t.Errorf("distance %q-%q: expecting error", "A", "Z")
	}

	m, err := tr.DistMatrix(nil)
	if err != nil {
		t.Fatalf("distance matrix: %v", err)
	}
	terms := tr.Terms()
	if r := m.SymmetricDim(); r != len(terms) {
		t.Fatalf("distance matrix: got %d rows, want %d", r, len(terms))
	}
	for i, a := range terms {
		for j, b := range terms {
			d, _ := tr.Patristic(a, b)
			if got := m.At(i, j); math.Abs(got-d) > 1e-9 {
				t.Errorf("matrix %q-%q: got %.6f, want %.6f", a, b, got, d)
			}
		}
	}
}
