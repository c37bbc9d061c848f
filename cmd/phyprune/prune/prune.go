// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prune implements a command to prune
// the reference tree of a PhyPrune project
// to a list of taxa.
package prune

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/export"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/phyprune/project"
	"github.com/js-arias/phyprune/pruning"
	"github.com/js-arias/phyprune/tree"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `prune [--taxa <file>] [--all] [--id <field>]
	[-o|--output <file>] [--tsv <file>] [--scale <value>]
	<project-file> [<taxon>...]`,
	Short: "prune the reference tree to a list of taxa",
	Long: `
Command prune reads the reference tree of a PhyPrune project and prunes it to
the minimal tree that includes a list of taxa, preserving the distances
between the retained taxa.

The first argument of the command is the name of the project file. Any other
argument will be taken as a taxon to be retained.

Use the flag --taxa to read the taxa from a file, with a taxon per line. If
the flag --all is set, all the taxa of the feature table will be retained; by
default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field.

All the taxa must be terminals of the reference tree. If a taxon is not in the
tree, the command will fail, and print the missing taxa.

By default the pruned tree will be printed in the standard output. Use the
flag --output, or -o, to define an output file.

If the flag --tsv is defined, the pruned tree will be also stored in a
tab-delimited tree file, as used by PhyGeo. As these trees are time-calibrated
trees, branch lengths are interpreted as million years; use the flag --scale
to multiply the branch lengths by a given value. The tree will be named
"pruned".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var taxaFile string
var allTaxa bool
var idField string
var output string
var tsvFile string
var scale float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&taxaFile, "taxa", "", "")
	c.Flags().BoolVar(&allTaxa, "all", false, "")
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&tsvFile, "tsv", "", "")
	c.Flags().Float64Var(&scale, "scale", 1, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	taxa := args[1:]
	if taxaFile != "" {
		ls, err := readTaxa(taxaFile)
		if err != nil {
			return err
		}
		taxa = append(taxa, ls...)
	}
	if allTaxa {
		tab, err := p.Features(idField)
		if err != nil {
			return err
		}
		taxa = append(taxa, tab.Taxa()...)
	}
	if len(taxa) == 0 {
		return c.UsageError("expecting taxa")
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}

	pt, err := pruning.Prune(t, taxa)
	if err != nil {
		return err
	}

	if err := writeTree(c.Stdout(), pt); err != nil {
		return err
	}

	if tsvFile != "" {
		tc := timetree.NewCollection()
		if err := export.Add(tc, "pruned", pt, scale); err != nil {
			return err
		}
		if err := writeCollection(tc); err != nil {
			return err
		}
	}
	return nil
}

func readTaxa(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ls, err := feature.ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return ls, nil
}

func writeTree(w io.Writer, t *tree.Tree) (err error) {
	if output == "" {
		return newick.Write(w, t)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := newick.Write(f, t); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}

func writeCollection(tc *timetree.Collection) (err error) {
	f, err := os.Create(tsvFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", tsvFile, err)
	}
	return nil
}
