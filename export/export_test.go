// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package export_test

import (
	"bytes"
	"slices"
	"testing"

	"github.com/js-arias/phyprune/export"
	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/timetree"
)

func TestAdd(t *testing.T) {
	tr, err := newick.Parse("((A:1,B:1):1,C:2);")
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}

	c := timetree.NewCollection()
	if err := export.Add(c, "sample", tr, 1); err != nil {
		t.Fatalf("unable to export tree: %v", err)
	}
	if n := len(c.Names()); n != 1 {
		t.Fatalf("trees: got %d, want %d", n, 1)
	}
	tt := c.Tree(c.Names()[0])

	terms := tt.Terms()
	slices.Sort(terms)
	if want := []string{"A", "B", "C"}; !slices.Equal(terms, want) {
		t.Errorf("terms: got %v, want %v", terms, want)
	}
	if age := tt.Age(tt.Root()); age != 2_000_000 {
		t.Errorf("root age: got %d, want %d", age, 2_000_000)
	}

	var w bytes.Buffer
	if err := c.TSV(&w); err != nil {
		t.Fatalf("unable to write collection: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())
}

func TestAddError(t *testing.T) {
	single, _ := newick.Parse("A;")
	c := timetree.NewCollection()
	if err := export.Add(c, "single", single, 1); err == nil {
		t.Errorf("single terminal: expecting error")
	}

	tr, _ := newick.Parse("(A:1,B:1);")
	if err := export.Add(c, "scale", tr, 0); err == nil {
		t.Errorf("zero scale: expecting error")
	}
}
