// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the reference tree of a PhyPrune project,
// or a tree pruned to a sample.
package draw

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/project"
	"github.com/js-arias/phyprune/pruning"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `draw [--sample <name>] [--id <field>] [--width <value>]
	-o|--output <file> <project-file>`,
	Short: "draw a tree",
	Long: `
Command draw reads the reference tree of a PhyPrune project and draws it as a
phylogram, in which the horizontal length of each branch is proportional to
its length.

The argument of the command is the name of the project file.

If the flag --sample is set, the tree will be pruned to the taxa present in
the indicated sample before drawing, and the terminal branches will be
colored by the relative abundance of each taxon in the sample.

By default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field.

The flag --output, or -o, is required and sets the name of the output file.
The image format is defined by the file extension; valid formats are "eps",
"jpg", "jpeg", "pdf", "png", "svg", "tex", "tif", and "tiff". The flag
--width sets the width of the image in inches (default 6); the height depends
on the number of terminals.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var idField string
var output string
var width float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Float64Var(&width, "width", 6, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if output == "" {
		return c.UsageError("flag --output must be defined")
	}
	if width <= 0 {
		return c.UsageError("flag --width must be positive")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}
	title := "reference tree"
	var abundance func(string) float64
	if sampleName != "" {
		tab, err := p.Features(idField)
		if err != nil {
			return err
		}
		taxa, err := tab.Present(sampleName)
		if err != nil {
			return err
		}
		t, err = pruning.Prune(t, taxa)
		if err != nil {
			return fmt.Errorf("sample %q: %w", sampleName, err)
		}
		title = sampleName
		abundance = func(term string) float64 {
			return tab.Value(term, sampleName)
		}
	}

	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "distance from root"
	plt.HideY()

	tp := newTreePlot(t)
	if abundance != nil {
		tp.setAbundance(abundance)
	}
	plt.Add(tp)
	lb, err := tp.labels()
	if err != nil {
		return err
	}
	plt.Add(lb)

	height := vg.Points(12 * float64(t.NumTerms()))
	if height < 4*vg.Inch {
		height = 4 * vg.Inch
	}
	if err := plt.Save(vg.Length(width)*vg.Inch, height, output); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}
