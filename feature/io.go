// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package feature

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ReadTSV reads a feature table from a TSV file.
//
// The field with the taxon identifiers
// is indicated by id
// (if empty, DefaultID will be used);
// the comparison ignores case,
// a leading '#',
// and treats blanks as underscores,
// so "#OTU ID" matches "OTU_ID".
// Any other field is a sample,
// except a "taxonomy" field,
// which is ignored.
// Lines starting with '#' before the header
// are taken as comments.
// Empty cells are read as 0.
//
// Here is an example file:
//
//	# Constructed from biom file
//	#OTU ID	S1	S2	S3
//	G000005825	0	12	3
//	G000006175	4	0	0
//	G000006605	1	1	0
func ReadTSV(r io.Reader, id string) (*Table, error) {
	if id == "" {
		id = DefaultID
	}
	id = fieldName(id)

	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.FieldsPerRecord = -1
	tab.LazyQuotes = true

	var head []string
	idCol := -1
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("expecting field %q", id)
		}
		if err != nil {
			return nil, fmt.Errorf("while reading header: %v", err)
		}
		for i, h := range row {
			if fieldName(h) == id {
				idCol = i
				break
			}
		}
		if idCol >= 0 {
			head = row
			break
		}
		if strings.HasPrefix(row[0], "#") {
			continue
		}
		return nil, fmt.Errorf("expecting field %q", id)
	}

	t := &Table{
		taxIdx: make(map[string]int),
		smpIdx: make(map[string]int),
	}
	var cols []int
	for i, h := range head {
		if i == idCol {
			continue
		}
		h = strings.TrimSpace(h)
		if fieldName(h) == "taxonomy" {
			continue
		}
		if h == "" {
			return nil, fmt.Errorf("header: empty sample name in column %d", i+1)
		}
		if _, dup := t.smpIdx[h]; dup {
			return nil, fmt.Errorf("header: repeated sample %q", h)
		}
		t.smpIdx[h] = len(t.samples)
		t.samples = append(t.samples, h)
		cols = append(cols, i)
	}

	var values []float64
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if idCol >= len(row) {
			continue
		}

		tax := strings.TrimSpace(row[idCol])
		if tax == "" || strings.HasPrefix(tax, "#") {
			continue
		}
		if _, dup := t.taxIdx[tax]; dup {
			return nil, fmt.Errorf("on row %d: repeated taxon %q", ln, tax)
		}

		for _, c := range cols {
			var v float64
			if c < len(row) {
				s := strings.TrimSpace(row[c])
				if s != "" {
					v, err = strconv.ParseFloat(s, 64)
					if err != nil {
						return nil, fmt.Errorf("on row %d: field %q: %v", ln, head[c], err)
					}
				}
			}
			values = append(values, v)
		}
		t.taxIdx[tax] = len(t.taxa)
		t.taxa = append(t.taxa, tax)
	}

	if len(t.taxa) > 0 && len(t.samples) > 0 {
		t.data = mat.NewDense(len(t.taxa), len(t.samples), values)
	}
	return t, nil
}

func fieldName(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(h), "#"))
	h = strings.Join(strings.Fields(strings.ToLower(h)), "_")
	return h
}

// ReadSamples reads a list of sample names
// from a sample metadata file.
//
// The first skip lines
// (usually the header and a types line)
// are ignored.
// The sample name is the first tab-delimited field
// of each line;
// empty lines and repeated samples are ignored.
//
// Here is an example file:
//
//	sample-id	site
//	#q2:types	categorical
//	S1	gut
//	S2	skin
func ReadSamples(r io.Reader, skip int) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var samples []string
	seen := make(map[string]bool)
	for ln := 0; sc.Scan(); ln++ {
		if ln < skip {
			continue
		}
		s, _, _ := strings.Cut(sc.Text(), "\t")
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// ReadList reads a list of taxa,
// one per line.
// Blank lines and lines starting with '#' are ignored.
func ReadList(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var ls []string
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		ls = append(ls, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ls, nil
}
