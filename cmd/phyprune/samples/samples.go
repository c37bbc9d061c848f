// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package samples implements a command to prune
// the reference tree of a PhyPrune project
// for each sample of a feature table.
package samples

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/batch"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/project"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `samples [--id <field>] [--skip <number>]
	[-o|--output <directory>] [--tsv <file>] [--scale <value>]
	[--cpu <number>] [--timeout <duration>] [--log <file>]
	<project-file>`,
	Short: "prune the reference tree for each sample",
	Long: `
Command samples reads the reference tree and the feature table of a PhyPrune
project, and for each sample, prunes the reference tree to the taxa present in
the sample (i.e., the taxa with a non-zero abundance), preserving the
distances between the retained taxa.

The argument of the command is the name of the project file.

The samples are read from the sample metadata of the project. By default, the
first two lines of the metadata file will be ignored; use the flag --skip to
set a different number of lines. If the project does not have sample metadata,
all samples of the feature table will be used.

By default, the taxon identifiers of the feature table are read from the field
"OTU_ID"; use the flag --id to set a different field.

Each pruned tree will be stored in newick format, in a file named by the
sample name with the suffix "_subset_tree.nwk". By default, the files will be
stored in the current directory; use the flag --output, or -o, to set a
different directory.

If the flag --tsv is defined, all the pruned trees will be also stored in a
single tab-delimited tree file, as used by PhyGeo, with the trees named by the
sample. As these trees are time-calibrated trees, branch lengths are
interpreted as million years; use the flag --scale to multiply the branch
lengths by a given value.

An error in a sample (for example, a taxon not present in the reference tree)
does not stop the processing of other samples. The name of each processed
sample, the number of terminals of the pruned tree, and the output file are
printed in the standard output, and errors are printed in the standard error.
No file is written for a failed sample.

By default, all available CPUs will be used in the calculations. Set the flag
--cpu to use a different number of CPUs. The flag --timeout sets a maximum
time for each sample (for example "30s" or "2m").

If the flag --log is defined, a log record for each sample will be stored in
the indicated file. The log file is rotated when it grows beyond 10 MB.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var idField string
var skipLines int
var outDir string
var tsvFile string
var scale float64
var numCPU int
var timeout time.Duration
var logFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
	c.Flags().IntVar(&skipLines, "skip", 2, "")
	c.Flags().StringVar(&outDir, "output", ".", "")
	c.Flags().StringVar(&outDir, "o", ".", "")
	c.Flags().StringVar(&tsvFile, "tsv", "", "")
	c.Flags().Float64Var(&scale, "scale", 1, "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.GOMAXPROCS(0), "")
	c.Flags().DurationVar(&timeout, "timeout", 0, "")
	c.Flags().StringVar(&logFile, "log", "", "")
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
	tab, err := p.Features(idField)
	if err != nil {
		return err
	}

	names := tab.Samples()
	if p.Path(project.Samples) != "" {
		names, err = p.Samples(skipLines)
		if err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("project %q: no samples defined", args[0])
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("start", "project", args[0], "terms", t.NumTerms(), "samples", len(names))

	var tc *timetree.Collection
	if tsvFile != "" {
		tc = timetree.NewCollection()
	}

	out := &output{
		dir:    outDir,
		stdout: c.Stdout(),
		stderr: c.Stderr(),
		logger: logger,
		tc:     tc,
		scale:  scale,
	}
	param := batch.Param{
		CPU:     numCPU,
		Timeout: timeout,
	}
	if err := batch.Run(context.Background(), t, names, tab, param, out.visit); err != nil {
		return err
	}

	if tc != nil {
		if err := writeCollection(tc); err != nil {
			return err
		}
	}

	logger.Info("end", "samples", len(names), "failed", out.failed)
	return out.err(len(names))
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
