// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/project"
	"github.com/js-arias/phyprune/tree"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "prj [--id <field>] [--skip <number>] <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a PhyPrune project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.

By default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field. By default, the first two
lines of the sample metadata are ignored; use the flag --skip to set a
different number of lines.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var idField string
var skipLines int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
	c.Flags().IntVar(&skipLines, "skip", 2, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	var t *tree.Tree
	if p.Path(project.Tree) != "" {
		t, err = p.Tree()
		if err != nil {
			return err
		}
		reportTree(c.Stdout(), p.Path(project.Tree), t)
	}

	if p.Path(project.Features) != "" {
		tab, err := p.Features(idField)
		if err != nil {
			return err
		}
		reportFeatures(c.Stdout(), p.Path(project.Features), tab, t)
	}

	if p.Path(project.Samples) != "" {
		ls, err := p.Samples(skipLines)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "Samples:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(project.Samples))
		fmt.Fprintf(c.Stdout(), "\tsamples: %d\n", len(ls))
		fmt.Fprintf(c.Stdout(), "\n")
	}

	if rf := p.Path(project.Ranks); rf != "" {
		fmt.Fprintf(c.Stdout(), "Taxonomic ranks:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", rf)
		fmt.Fprintf(c.Stdout(), "\n")
	}

	return nil
}

func reportTree(w io.Writer, name string, t *tree.Tree) {
	terms := t.Terms()
	dist := make([]float64, 0, len(terms))
	for _, tax := range terms {
		d, _ := t.RootDist(tax)
		dist = append(dist, d)
	}
	slices.Sort(dist)

	fmt.Fprintf(w, "Reference tree:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tnodes: %d\n", t.Len())
	fmt.Fprintf(w, "\tterminals: %d\n", len(terms))
	fmt.Fprintf(w, "\ttree length: %.6f\n", t.Length())
	fmt.Fprintf(w, "\troot to terminal distance: mean %.6f, median %.6f [%.6f-%.6f]\n", stat.Mean(dist, nil), stat.Quantile(0.5, stat.Empirical, dist, nil), dist[0], dist[len(dist)-1])
	fmt.Fprintf(w, "\n")
}

func reportFeatures(w io.Writer, name string, tab *feature.Table, t *tree.Tree) {
	taxa := tab.Taxa()

	fmt.Fprintf(w, "Feature table:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\ttaxa: %d\n", len(taxa))
	fmt.Fprintf(w, "\tsamples: %d\n", len(tab.Samples()))
	if t != nil {
		missing := 0
		for _, tax := range taxa {
			if _, ok := t.TaxNode(tax); !ok {
				missing++
			}
		}
		fmt.Fprintf(w, "\ttaxa not in tree: %d\n", missing)
	}
	fmt.Fprintf(w, "\n")
}
