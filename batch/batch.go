// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package batch prunes a reference tree
// for many selections of taxa
// (for example, one selection per sample),
// in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/js-arias/phyprune/newick"
	"github.com/js-arias/phyprune/pruning"
	"github.com/js-arias/phyprune/tree"
)

// ErrTimeout is returned
// when a selection takes more time
// than the allowed by Param.Timeout.
var ErrTimeout = errors.New("selection timeout")

// ErrNoSelection is returned by Sets
// when a selection is not defined.
var ErrNoSelection = errors.New("undefined selection")

// A Selector returns the taxa to be retained
// for a named selection.
// As it is called from many goroutines
// it must be safe for concurrent use.
type Selector interface {
	Select(name string) ([]string, error)
}

// Sets is a Selector
// with a fixed list of taxa for each selection.
type Sets map[string][]string

// Select implements the Selector interface.
func (s Sets) Select(name string) ([]string, error) {
	ls, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSelection, name)
	}
	return ls, nil
}

// Param is a collection of parameters
// for a batch run.
type Param struct {
	// Number of parallel processes.
	// The default (zero) uses all available CPU.
	CPU int

	// Maximum time for a single selection.
	// The default (zero) has no limit.
	// A timed out selection is reported at once,
	// but its pruning is not interrupted:
	// it runs until it ends on its own,
	// so for a while more than CPU selections
	// can be running at the same time.
	Timeout time.Duration
}

// A Result is the outcome of a single selection.
type Result struct {
	// Index of the selection in the input list
	Index int

	// Name of the selection
	Name string

	// Number of requested taxa
	Taxa int

	// The pruned tree and its newick representation.
	// Only defined if Err is nil.
	Tree   *tree.Tree
	Newick string

	Err     error
	Elapsed time.Duration
}

// Run prunes the tree t
// for each selection in names,
// using sel to retrieve the selected taxa.
//
// The results are sent to visit
// in the order of names,
// from a single goroutine.
// An error in a selection is stored in the result
// and does not stop the batch.
// If visit returns an error,
// or the context is canceled,
// the batch is stopped and that error is returned.
func Run(ctx context.Context, t *tree.Tree, names []string, sel Selector, p Param, visit func(Result) error) error {
	cpu := p.CPU
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, cpu*2)
	results := make(chan Result, cpu*2)

	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r := process(cctx, t, names[i], sel, p.Timeout)
				r.Index = i
				select {
				case results <- r:
				case <-cctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range names {
			select {
			case jobs <- i:
			case <-cctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var err error
	next := 0
	pending := make(map[int]Result)
	for r := range results {
		if err != nil {
			continue
		}
		pending[r.Index] = r
		for {
			nr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if e := visit(nr); e != nil {
				err = e
				cancel()
				break
			}
		}
	}

	if err != nil {
		return err
	}
	if e := ctx.Err(); e != nil {
		return e
	}
	if next < len(names) {
		return fmt.Errorf("batch: %d selections without result", len(names)-next)
	}
	return nil
}

func process(ctx context.Context, t *tree.Tree, name string, sel Selector, timeout time.Duration) Result {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Result{Name: name, Err: err}
	}
	if timeout <= 0 {
		r := prune(t, name, sel)
		r.Elapsed = time.Since(start)
		return r
	}

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		done <- prune(t, name, sel)
	}()

	var r Result
	select {
	case r = <-done:
	case <-tctx.Done():
		r = Result{Name: name, Err: tctx.Err()}
		if errors.Is(r.Err, context.DeadlineExceeded) {
			r.Err = fmt.Errorf("%w: after %v", ErrTimeout, timeout)
		}
	}
	r.Elapsed = time.Since(start)
	return r
}

func prune(t *tree.Tree, name string, sel Selector) Result {
	r := Result{Name: name}

	taxa, err := sel.Select(name)
	if err != nil {
		r.Err = err
		return r
	}
	r.Taxa = len(taxa)

	pt, err := pruning.Prune(t, taxa)
	if err != nil {
		r.Err = err
		return r
	}
	s, err := newick.Format(pt)
	if err != nil {
		r.Err = err
		return r
	}
	r.Tree = pt
	r.Newick = s
	return r
}
