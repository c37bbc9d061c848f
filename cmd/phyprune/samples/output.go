// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package samples

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/phyprune/batch"
	"github.com/js-arias/phyprune/export"
	"github.com/js-arias/timetree"
)

// Suffix of the file names of the pruned trees.
const treeSuffix = "_subset_tree.nwk"

// ErrSampleName is returned for a sample name
// that cannot be used as a file name.
var ErrSampleName = errors.New("invalid sample name for a file")

// An output stores the pruned trees of a batch
// and reports each sample.
type output struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	// optional time-tree collection
	tc    *timetree.Collection
	scale float64

	failed int
}

// Visit writes the pruned tree of a sample.
// A failed sample is reported
// and no file is written.
// Only an error when writing a file
// stops the batch.
func (o *output) visit(r batch.Result) error {
	if r.Err == nil {
		if err := checkName(r.Name); err != nil {
			r.Err = err
		}
	}
	if r.Err != nil {
		o.failed++
		o.logger.Error("sample", "sample", r.Name, "taxa", r.Taxa, "elapsed", r.Elapsed, "err", r.Err)
		fmt.Fprintf(o.stderr, "WARNING: sample %q: %v\n", r.Name, r.Err)
		return nil
	}

	name := filepath.Join(o.dir, r.Name+treeSuffix)
	if err := writeFile(name, r.Newick+"\n"); err != nil {
		return err
	}
	o.logger.Info("sample", "sample", r.Name, "taxa", r.Taxa, "terms", r.Tree.NumTerms(), "elapsed", r.Elapsed, "file", name)
	fmt.Fprintf(o.stdout, "%s\t%d\t%s\n", r.Name, r.Tree.NumTerms(), name)

	if o.tc != nil {
		if err := export.Add(o.tc, r.Name, r.Tree, o.scale); err != nil {
			o.logger.Warn("export", "sample", r.Name, "err", err)
			fmt.Fprintf(o.stderr, "WARNING: sample %q: %v\n", r.Name, err)
		}
	}
	return nil
}

// Err returns an error
// if any of the total samples failed.
func (o *output) err(total int) error {
	if o.failed > 0 {
		return fmt.Errorf("%d of %d samples failed", o.failed, total)
	}
	return nil
}

// CheckName returns an error
// if a sample name can not be used
// as the base of a file name in the output directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrSampleName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("%w: %q", ErrSampleName, name)
	}
	return nil
}

// WriteFile writes a file,
// using a temporary file
// so an incomplete file is never left
// with the final name.
func writeFile(name, data string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), ".phyprune-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return os.Rename(tmp, name)
}
