// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ranks filters taxonomic rank tables.
//
// A rank table is a tab-delimited file
// with a header,
// in which the first field is a taxon identifier
// and the other fields are the ranks
// of the taxon classification.
// For example:
//
//	genome	kingdom	phylum	class
//	G000005825	Bacteria	Firmicutes	Bacilli
//	G000006175	Archaea	Euryarchaeota	Methanococci
package ranks

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Filter writes into w the header of the rank table r
// and the rows whose identifier is in ids.
// It returns the number of written rows
// (without the header).
func Filter(w io.Writer, r io.Reader, ids map[string]bool) (int, error) {
	in := csv.NewReader(r)
	in.Comma = '\t'
	in.FieldsPerRecord = -1
	in.LazyQuotes = true

	out := csv.NewWriter(w)
	out.Comma = '\t'

	head, err := in.Read()
	if err != nil {
		return 0, fmt.Errorf("while reading header: %v", err)
	}
	if err := out.Write(head); err != nil {
		return 0, fmt.Errorf("unable to write header: %v", err)
	}

	n := 0
	for {
		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := in.FieldPos(0)
		if err != nil {
			return n, fmt.Errorf("on row %d: %v", ln, err)
		}
		if !ids[row[0]] {
			continue
		}
		if err := out.Write(row); err != nil {
			return n, fmt.Errorf("when writing data: %v", err)
		}
		n++
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return n, fmt.Errorf("when writing data: %v", err)
	}
	return n, nil
}
