// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pruning_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/phyprune/pruning"
	"github.com/js-arias/phyprune/tree"
	"golang.org/x/exp/rand"
)

const refTree = "((A:1,B:2):3,(C:4,D:5):6);"

func TestPrune(t *testing.T) {
	tests := map[string]struct {
		in   string
		keep []string
		want string
	}{
		"clade": {
			in:   refTree,
			keep: []string{"A", "B"},
			want: "(A:1,B:2);",
		},
		"collapse": {
			in:   refTree,
			keep: []string{"A", "D"},
			want: "(A:4,D:11);",
		},
		"single": {
			in:   refTree,
			keep: []string{"A"},
			want: "A;",
		},
		"all": {
			in:   refTree,
			keep: []string{"D", "C", "B", "A"},
			want: refTree,
		},
		"repeated taxa": {
			in:   refTree,
			keep: []string{"A", "B", "A"},
			want: "(A:1,B:2);",
		},
		"three": {
			in:   refTree,
			keep: []string{"A", "B", "D"},
			want: "((A:1,B:2):3,D:11);",
		},
		"chain": {
			in:   "(((((A:1,B:1)X:1):1):1)Z:1,C:1);",
			keep: []string{"A", "C"},
			want: "(A:5,C:1);",
		},
		"unary kept": {
			in:   "(((A:1,B:1)X:1):2,C:1);",
			keep: []string{"A", "B", "C"},
			want: "((A:1,B:1)X:3,C:1);",
		},
		"polytomy": {
			in:   "(A:1,B:2,C:3,(D:1,E:1):1);",
			keep: []string{"B", "C", "E"},
			want: "(B:2,C:3,E:2);",
		},
		"internal labels": {
			in:   "((A:1,B:2)AB:3,(C:4,(D:5,E:6)DE:7)CDE:8)root;",
			keep: []string{"A", "B", "D", "E"},
			want: "((A:1,B:2)AB:3,(D:5,E:6)DE:15)root;",
		},
		"root collapse": {
			in:   "(((A:1,B:2)AB:3,C:1)ABC:5,D:1);",
			keep: []string{"A", "B"},
			want: "(A:1,B:2)AB;",
		},
	}

	for name, test := range tests {
		tr, err := newick.Parse(test.in)
		if err != nil {
			t.Fatalf("%s: unable to parse tree: %v", name, err)
		}
		pt, err := pruning.Prune(tr, test.keep)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		got, err := newick.Format(pt)
		if err != nil {
			t.Errorf("%s: format: %v", name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %q, want %q", name, got, test.want)
		}

		// the source tree is not modified
		src, _ := newick.Format(tr)
		orig, _ := newick.Parse(test.in)
		if want, _ := newick.Format(orig); src != want {
			t.Errorf("%s: source tree modified: got %q, want %q", name, src, want)
		}
	}
}

func TestPruneError(t *testing.T) {
	tr, err := newick.Parse(refTree)
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}

	_, err = pruning.Prune(tr, []string{"A", "not_in_tree", "Z"})
	var ute *pruning.UnknownTaxonError
	if !errors.As(err, &ute) {
		t.Fatalf("unknown taxa: got error %v, want *pruning.UnknownTaxonError", err)
	}
	want := []string{"Z", "not_in_tree"}
	if !reflect.DeepEqual(ute.Taxa, want) {
		t.Errorf("unknown taxa: got %v, want %v", ute.Taxa, want)
	}

	_, err = pruning.Prune(tr, []string{"not_in_tree"})
	if !errors.As(err, &ute) {
		t.Errorf("unknown taxon: got error %v, want *pruning.UnknownTaxonError", err)
	}

	if _, err := pruning.Prune(tr, nil); !errors.Is(err, pruning.ErrEmptySelection) {
		t.Errorf("empty selection: got error %v, want %v", err, pruning.ErrEmptySelection)
	}

	if got, _ := newick.Format(tr); got != refTree {
		t.Errorf("source tree modified: got %q, want %q", got, refTree)
	}
}

func TestPruneProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(1731))

	for i := 0; i < 50; i++ {
		tr := randTree(t, rnd, 5+rnd.Intn(40))
		terms := tr.Terms()

		// random selection
		var keep []string
		for _, tax := range terms {
			if rnd.Intn(3) == 0 {
				keep = append(keep, tax)
			}
		}
		if len(keep) == 0 {
			keep = append(keep, terms[rnd.Intn(len(terms))])
		}

		pt, err := pruning.Prune(tr, keep)
		if err != nil {
			t.Fatalf("tree %d: unexpected error: %v", i, err)
		}
		name := fmt.Sprintf("tree %d", i)

		// leaf set
		if got := pt.Terms(); !reflect.DeepEqual(got, keep) {
			t.Errorf("%s: terms: got %v, want %v", name, got, keep)
		}

		// branching
		for _, n := range pt.Nodes() {
			if !n.IsTerm() && len(n.Children()) < 2 {
				t.Errorf("%s: node %q with %d children", name, n.Label(), len(n.Children()))
			}
		}

		// distances
		for j, a := range keep {
			for _, b := range keep[j+1:] {
				want, _ := tr.Patristic(a, b)
				got, _ := pt.Patristic(a, b)
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("%s: distance %q-%q: got %.6f, want %.6f", name, a, b, got, want)
				}
			}
		}

		// round trip
		s, err := newick.Format(pt)
		if err != nil {
			t.Fatalf("%s: format: %v", name, err)
		}
		rt, err := newick.Parse(s)
		if err != nil {
			t.Fatalf("%s: parse %q: %v", name, s, err)
		}
		testEqual(t, name+": round trip", rt, pt)

		// idempotence
		pp, err := pruning.Prune(pt, keep)
		if err != nil {
			t.Fatalf("%s: second pruning: %v", name, err)
		}
		testEqual(t, name+": idempotence", pp, pt)
	}
}

// randTree returns a random tree with the indicated number of terminals,
// with some unary nodes.
func randTree(t testing.TB, rnd *rand.Rand, terms int) *tree.Tree {
	t.Helper()

	nodes := make([]*tree.Node, 0, terms)
	for i := range terms {
		nodes = append(nodes, tree.NewNode(fmt.Sprintf("t%02d", i), rnd.Float64()))
	}
	for len(nodes) > 1 {
		i := rnd.Intn(len(nodes))
		a := nodes[i]
		nodes = slices.Delete(nodes, i, i+1)

		j := rnd.Intn(len(nodes))
		b := nodes[j]
		n := tree.NewNode("", rnd.Float64(), a, b)
		if rnd.Intn(5) == 0 {
			n = tree.NewNode("", rnd.Float64(), n)
		}
		nodes[j] = n
	}

	tr, err := tree.New(nodes[0])
	if err != nil {
		t.Fatalf("unable to build random tree: %v", err)
	}
	return tr
}

func testEqual(t testing.TB, name string, got, want *tree.Tree) {
	t.Helper()

	gn := got.Nodes()
	wn := want.Nodes()
	if len(gn) != len(wn) {
		t.Errorf("%s: nodes: got %d, want %d", name, len(gn), len(wn))
		return
	}
	for i, w := range wn {
		g := gn[i]
		if g.Label() != w.Label() || len(g.Children()) != len(w.Children()) {
			t.Errorf("%s: node %d: got %q [%d], want %q [%d]", name, i, g.Label(), len(g.Children()), w.Label(), len(w.Children()))
		}
		if math.Abs(g.Length()-w.Length()) > 1e-9 {
			t.Errorf("%s: node %d: length: got %g, want %g", name, i, g.Length(), w.Length())
		}
	}
}
