// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"math"
	"testing"

	"github.com/js-arias/blind"
	"github.com/js-arias/phyprune/newick"
)

func TestTreePlot(t *testing.T) {
	tr, err := newick.Parse("((A:1,B:2):3,(C:4,D:5):6);")
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}
	tp := newTreePlot(tr)

	want := map[string][2]float64{
		"A": {4, 0},
		"B": {5, 1},
		"C": {10, 2},
		"D": {11, 3},
	}
	for term, xy := range want {
		n, _ := tr.TaxNode(term)
		if x := tp.x[n]; math.Abs(x-xy[0]) > 1e-9 {
			t.Errorf("term %q: got x %.6f, want %.6f", term, x, xy[0])
		}
		if y := tp.y[n]; y != xy[1] {
			t.Errorf("term %q: got y %.6f, want %.6f", term, y, xy[1])
		}
	}
	if y := tp.y[tr.Root()]; y != 1.5 {
		t.Errorf("root: got y %.6f, want %.6f", y, 1.5)
	}

	xMin, xMax, yMin, yMax := tp.DataRange()
	if xMin != 0 || math.Abs(xMax-11*1.25) > 1e-9 || yMin != -1 || yMax != 4 {
		t.Errorf("data range: got %v %v %v %v", xMin, xMax, yMin, yMax)
	}

	lb, err := tp.labels()
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if len(lb.Labels) != 4 {
		t.Errorf("labels: got %d, want %d", len(lb.Labels), 4)
	}
}

func TestTreePlotAbundance(t *testing.T) {
	tr, err := newick.Parse("((A:1,B:2):3,(C:4,D:5):6);")
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}
	tp := newTreePlot(tr)

	tp.setAbundance(func(string) float64 { return 0 })
	if tp.color != nil {
		t.Errorf("zero abundance: got %d colors, want none", len(tp.color))
	}

	abundance := map[string]float64{"A": 10, "B": 5, "C": 0, "D": 2.5}
	tp.setAbundance(func(term string) float64 { return abundance[term] })
	if len(tp.color) != 4 {
		t.Fatalf("colors: got %d, want %d", len(tp.color), 4)
	}
	a, _ := tr.TaxNode("A")
	if got, want := tp.color[a], blind.Sequential(blind.Iridescent, 1); got != want {
		t.Errorf("color of %q: got %v, want %v", "A", got, want)
	}
	c, _ := tr.TaxNode("C")
	if got, want := tp.color[c], blind.Sequential(blind.Iridescent, 0); got != want {
		t.Errorf("color of %q: got %v, want %v", "C", got, want)
	}
}
