// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick reads and writes phylogenetic trees
// in newick (parenthetical) format.
//
// The recognized grammar is
//
//	tree    = subtree ";"
//	subtree = "(" subtree { "," subtree } ")" [label] [":" length]
//	        | label [":" length]
//
// Blanks between tokens are ignored,
// as well as comments enclosed in square brackets.
// Labels with blanks or reserved characters
// must be enclosed in single quotes;
// a single quote inside a quoted label is written twice.
//
// A missing branch length is read as 0,
// and the length of the root is ignored.
// Terminals must have a label
// and terminal labels must be unique.
package newick

import (
	"fmt"
	"strings"
)

const reserved = " \t\r\n()[]':;,"

// A ParseError is returned
// when reading a malformed newick tree.
type ParseError struct {
	Line int // line of the error (starting at 1)
	Col  int // column of the error, in runes (starting at 1)
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// A SerializationError is returned
// when a tree can not be written
// because it breaks a tree invariant.
// It should never happen with trees built
// with the tree package.
type SerializationError struct {
	Label string
	Msg   string
}

func (e *SerializationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("newick: unlabeled node: %s", e.Msg)
	}
	return fmt.Sprintf("newick: node %q: %s", e.Label, e.Msg)
}

func quote(label string) string {
	if !strings.ContainsAny(label, reserved) {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}
