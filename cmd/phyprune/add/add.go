// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add data files
// to a PhyPrune project.
package add

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/feature"
	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/phyprune/project"
)

var Command = &command.Command{
	Usage: `add [--tree <file>] [--features <file>] [--id <field>]
	[--samples <file>] [--ranks <file>]
	<project-file>`,
	Short: "add data files to a PhyPrune project",
	Long: `
Command add sets the data files used by a PhyPrune project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

The flag --tree sets the reference tree, in newick format. The flag
--features sets the feature (abundance) table; by default, the taxon
identifiers are read from the field "OTU_ID", use the flag --id to validate
the table with a different field. The flag --samples sets the sample metadata
file, used as the list of samples. The flag --ranks sets the taxonomic ranks
table. Before adding them, the tree and the feature table are read to check
that they are valid.

If a flag is set with an empty value (for example --ranks ""), the dataset is
removed from the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var featFile string
var idField string
var sampleFile string
var ranksFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "tree", "-", "")
	c.Flags().StringVar(&featFile, "features", "-", "")
	c.Flags().StringVar(&idField, "id", feature.DefaultID, "")
	c.Flags().StringVar(&sampleFile, "samples", "-", "")
	c.Flags().StringVar(&ranksFile, "ranks", "-", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	if treeFile != "-" && treeFile != "" {
		if err := checkTree(treeFile); err != nil {
			return err
		}
	}
	if featFile != "-" && featFile != "" {
		if err := checkFeatures(featFile); err != nil {
			return err
		}
	}

	sets := []struct {
		set  project.Dataset
		path string
	}{
		{project.Tree, treeFile},
		{project.Features, featFile},
		{project.Samples, sampleFile},
		{project.Ranks, ranksFile},
	}
	for _, s := range sets {
		if s.path == "-" {
			continue
		}
		path, err := relPath(pFile, s.path)
		if err != nil {
			return err
		}
		if prev := p.Add(s.set, path); prev != "" && prev != path {
			fmt.Fprintf(c.Stdout(), "%s: %q replaced by %q\n", s.set, prev, path)
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// RelPath returns the path of a file
// relative to the directory of the project.
func relPath(pFile, path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(filepath.Dir(pFile))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return abs, nil
	}
	return rel, nil
}

func checkTree(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := newick.Read(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func checkFeatures(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := feature.ReadTSV(f, idField); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
