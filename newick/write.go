// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/js-arias/phyprune/tree"
)

// Write writes a tree in newick format,
// followed by a new line.
//
// Branch lengths are written
// using the shortest representation
// that reads back to the same value.
// The length of the root is never written.
func Write(w io.Writer, t *tree.Tree) error {
	bw := bufio.NewWriter(w)
	if err := writeNode(bw, t.Root(), true); err != nil {
		return err
	}
	bw.WriteString(";\n")
	return bw.Flush()
}

// Format returns a tree as a newick string.
func Format(t *tree.Tree) (string, error) {
	return FormatNode(t.Root())
}

// FormatNode returns the subtree rooted at n
// as a newick string.
// As n is not required to be part of a valid tree,
// the subtree is checked while it is written,
// and a *SerializationError is returned
// for an unlabeled terminal,
// or a negative or non-finite branch length.
func FormatNode(n *tree.Node) (string, error) {
	var b strings.Builder
	if err := writeNode(&b, n, true); err != nil {
		return "", err
	}
	b.WriteString(";")
	return b.String(), nil
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

func writeNode(w stringWriter, n *tree.Node, isRoot bool) error {
	if !n.IsTerm() {
		w.WriteString("(")
		for i, c := range n.Children() {
			if i > 0 {
				w.WriteString(",")
			}
			if err := writeNode(w, c, false); err != nil {
				return err
			}
		}
		w.WriteString(")")
	}

	if n.Label() != "" {
		w.WriteString(quote(n.Label()))
	} else if n.IsTerm() {
		return &SerializationError{Msg: "terminal without label"}
	}

	if isRoot {
		return nil
	}
	l := n.Length()
	if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
		return &SerializationError{
			Label: n.Label(),
			Msg:   "invalid branch length " + strconv.FormatFloat(l, 'g', -1, 64),
		}
	}
	w.WriteString(":")
	w.WriteString(strconv.FormatFloat(l, 'g', -1, 64))
	return nil
}
