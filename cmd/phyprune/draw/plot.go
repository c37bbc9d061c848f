// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"image/color"

	"github.com/js-arias/blind"
	"github.com/js-arias/phyprune/tree"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A treePlot is a phylogram:
// x is the distance from the root,
// and terminals are placed one per row.
type treePlot struct {
	t     *tree.Tree
	x, y  map[*tree.Node]float64
	style draw.LineStyle

	// color of terminal branches
	color map[*tree.Node]color.Color
}

func newTreePlot(t *tree.Tree) *treePlot {
	tp := &treePlot{
		t:     t,
		x:     make(map[*tree.Node]float64, t.Len()),
		y:     make(map[*tree.Node]float64, t.Len()),
		style: plotter.DefaultLineStyle,
	}

	row := 0
	var place func(n *tree.Node, x float64)
	place = func(n *tree.Node, x float64) {
		tp.x[n] = x
		if n.IsTerm() {
			tp.y[n] = float64(row)
			row++
			return
		}
		children := n.Children()
		for _, c := range children {
			place(c, x+c.Length())
		}
		tp.y[n] = (tp.y[children[0]] + tp.y[children[len(children)-1]]) / 2
	}
	place(t.Root(), 0)
	return tp
}

// SetAbundance colors the terminal branches
// by the relative abundance of each terminal.
func (tp *treePlot) setAbundance(abundance func(term string) float64) {
	var max float64
	for _, n := range tp.t.Nodes() {
		if !n.IsTerm() {
			continue
		}
		if v := abundance(n.Label()); v > max {
			max = v
		}
	}
	if max <= 0 {
		return
	}

	tp.color = make(map[*tree.Node]color.Color, tp.t.NumTerms())
	for _, n := range tp.t.Nodes() {
		if !n.IsTerm() {
			continue
		}
		tp.color[n] = blind.Sequential(blind.Iridescent, abundance(n.Label())/max)
	}
}

// DataRange implements the plot.DataRanger interface.
func (tp *treePlot) DataRange() (xMin, xMax, yMin, yMax float64) {
	for n, x := range tp.x {
		if x > xMax {
			xMax = x
		}
		if y := tp.y[n]; y > yMax {
			yMax = y
		}
	}
	if xMax == 0 {
		xMax = 1
	}
	// room for the terminal names
	return 0, xMax * 1.25, -1, yMax + 1
}

// Plot implements the plot.Plotter interface.
func (tp *treePlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	var lines [][]vg.Point
	for _, n := range tp.t.Nodes() {
		x, y := trX(tp.x[n]), trY(tp.y[n])
		if p := n.Parent(); p != nil {
			// horizontal branch
			br := []vg.Point{
				{X: trX(tp.x[p]), Y: y},
				{X: x, Y: y},
			}
			if col, ok := tp.color[n]; ok {
				sty := tp.style
				sty.Color = col
				sty.Width = 2 * tp.style.Width
				c.StrokeLines(sty, br)
			} else {
				lines = append(lines, br)
			}
		}
		children := n.Children()
		if len(children) < 2 {
			continue
		}
		// vertical connector
		lines = append(lines, []vg.Point{
			{X: x, Y: trY(tp.y[children[0]])},
			{X: x, Y: trY(tp.y[children[len(children)-1]])},
		})
	}
	c.StrokeLines(tp.style, lines...)
}

// Labels returns the names of the terminals
// placed at the tip of each terminal branch.
func (tp *treePlot) labels() (*plotter.Labels, error) {
	var xys plotter.XYs
	var names []string
	for _, n := range tp.t.Nodes() {
		if !n.IsTerm() {
			continue
		}
		xys = append(xys, plotter.XY{X: tp.x[n], Y: tp.y[n]})
		names = append(names, n.Label())
	}

	lb, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    xys,
		Labels: names,
	})
	if err != nil {
		return nil, err
	}
	lb.Offset = vg.Point{X: 3 * vg.Millimeter / 2, Y: -vg.Millimeter}
	return lb, nil
}
