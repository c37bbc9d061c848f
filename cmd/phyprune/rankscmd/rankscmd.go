// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rankscmd implements a command to filter
// the taxonomic ranks table of a PhyPrune project.
package rankscmd

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/project"
	"github.com/js-arias/phyprune/ranks"
)

var Command = &command.Command{
	Usage: `ranks [--sample <name>] [--id <field>]
	[-o|--output <file>] <project-file>`,
	Short: "filter the taxonomic ranks table",
	Long: `
Command ranks reads the taxonomic ranks table of a PhyPrune project, and
writes the header and the rows of the taxa present in the feature table.

The argument of the command is the name of the project file.

If the flag --sample is set, only the taxa present in the indicated sample
will be written.

By default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field.

By default, the filtered table is written in the standard output; use the
flag --output, or -o, to write it into a file. The number of written rows is
printed in the standard error.
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
	name := p.Path(project.Ranks)
	if name == "" {
		return fmt.Errorf("ranks table not defined in project %q", args[0])
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
	ids := make(map[string]bool, len(taxa))
	for _, tax := range taxa {
		ids[tax] = true
	}

	n, err := filter(c.Stdout(), name, ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%d rows\n", n)
	return nil
}

func filter(w io.Writer, name string, ids map[string]bool) (n int, err error) {
	in, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return 0, err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	n, err = ranks.Filter(w, in, ids)
	if err != nil {
		return n, fmt.Errorf("on file %q: %v", name, err)
	}
	return n, nil
}
