// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals of the reference tree
// of a PhyPrune project.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/project"
)

var Command = &command.Command{
	Usage: `terms [--sample <name>] [--missing] [--id <field>]
	<project-file>`,
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the reference tree from a PhyPrune project and prints the
names of the terminals in the standard output.

The argument of the command is the name of the project file.

If the flag --sample is set, only the taxa present in the indicated sample of
the feature table will be printed.

If the flag --missing is set, it will print the taxa of the feature table (or
the sample, if --sample is set) that are not terminals of the reference tree.
These taxa will produce an error when pruning the tree.

By default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var missing bool
var idField string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().BoolVar(&missing, "missing", false, "")
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}

	if sampleName == "" && !missing {
		for _, term := range t.Terms() {
			fmt.Fprintf(c.Stdout(), "%s\n", term)
		}
		return nil
	}

	tab, err := p.Features(idField)
	if err != nil {
		return err
	}
	taxa := tab.Taxa()
	if sampleName != "" {
		taxa, err = tab.Present(sampleName)
		if err != nil {
			return err
		}
	}

	ls := make([]string, 0, len(taxa))
	for _, tax := range taxa {
		_, ok := t.TaxNode(tax)
		if ok == missing {
			continue
		}
		ls = append(ls, tax)
	}
	slices.Sort(ls)

	for _, tax := range ls {
		fmt.Fprintf(c.Stdout(), "%s\n", tax)
	}
	return nil
}
