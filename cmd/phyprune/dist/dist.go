// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dist implements a command to print
// the patristic distances between the terminals
// of the reference tree of a PhyPrune project.
package dist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/project"
	"github.com/js-arias/phyprune/pruning"
	"github.com/js-arias/phyprune/tree"
)

var Command = &command.Command{
	Usage: `dist [--sample <name>] [--id <field>]
	[-o|--output <file>] <project-file>`,
	Short: "print patristic distances between terminals",
	Long: `
Command dist reads the reference tree of a PhyPrune project and prints a
tab-delimited matrix with the patristic distances (the sum of the branch
lengths of the path between two terminals) between all pairs of terminals.

The argument of the command is the name of the project file.

If the flag --sample is set, the tree will be pruned to the taxa present in
the indicated sample. As pruning preserves the distances between the retained
taxa, the values are the same as in the full reference tree.

By default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field.

By default, the matrix is written in the standard output; use the flag
--output, or -o, to write it into a file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var idField string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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
	}

	if output == "" {
		return writeMatrix(c.Stdout(), t)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := writeMatrix(f, t); err != nil {
		f.Close()
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return f.Close()
}

func writeMatrix(w io.Writer, t *tree.Tree) error {
	terms := t.Terms()
	m, err := t.DistMatrix(terms)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'

	row := make([]string, len(terms)+1)
	row[0] = "taxon"
	copy(row[1:], terms)
	if err := tsv.Write(row); err != nil {
		return err
	}
	for i, term := range terms {
		row[0] = term
		for j := range terms {
			row[j+1] = strconv.FormatFloat(m.At(i, j), 'f', 6, 64)
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
