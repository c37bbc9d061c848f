// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(featureTableGuide)
	app.Add(newickGuide)
	app.Add(projectsGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PhyPrune requires several files to prune trees by sample. To reduce the burden
of keeping track of many files, a single project file is used to hold the
reference of all files required in the analysis. The recommended way to edit
this file is by using the command 'phyprune add'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Relative paths are relative to the directory of the project file.

Here is an example file:

	# phyprune project files
	dataset	path
	features	feature-table.tsv
	ranks	ranks.tsv
	samples	metadata.tsv
	tree	reference.nwk

The valid file types are:

- Reference tree. Defined by the dataset keyword "tree". A single tree in
  newick format. See "phyprune help newick-trees".
- Feature table. Defined by the dataset keyword "features". The abundance of
  each taxon at each sample. See "phyprune help feature-tables".
- Sample metadata. Defined by the dataset keyword "samples". The first
  tab-delimited field of each line is a sample name. By default the first two
  lines (the header and the types line of QIIME 2 metadata files) are
  ignored.
- Taxonomic ranks. Defined by the dataset keyword "ranks". A tab-delimited
  file with a header, in which the first field is the taxon identifier.
	`,
}

var featureTableGuide = &command.Command{
	Usage: "feature-tables",
	Short: "about feature tables",
	Long: `
A feature table (also called an OTU or abundance table) stores the abundance
of each taxon in a set of samples. It is a tab-delimited file in which each row
is a taxon, and each column a sample.

The field with the taxon identifiers is by default "OTU_ID". When comparing
field names, the case is ignored, as well as a leading '#', and blanks are
taken as underscores, so a "#OTU ID" field, as produced when converting BIOM
files, is also valid. Any other field is a sample, except a "taxonomy" field,
which is ignored. Lines starting with '#' before the header are comments.
Empty cells are read as zero.

A taxon is present in a sample if its value in that sample is not zero.

Here is an example file:

	# Constructed from biom file
	#OTU ID	S1	S2	S3
	G000005825	0	12	3
	G000006175	4	0	0
	G000006605	1	1	0

The taxon identifiers must be the same as the terminal names in the reference
tree.
	`,
}

var newickGuide = &command.Command{
	Usage: "newick-trees",
	Short: "about newick trees",
	Long: `
Reference trees are stored in newick (parenthetical) format. The file must
contain a single tree ending in a semicolon, for example:

	((A:1,B:2):3,(C:4,D:5):6);

Blanks between tokens, and comments in square brackets, are ignored. Labels
with blanks or other reserved characters must be single-quoted. Missing branch
lengths are read as zero, and the branch length of the root is ignored.
Branch lengths must not be negative. Every terminal must have a unique name.

When a tree is pruned, the terminals without selected taxa are removed, and any
node left with a single descendant is removed, adding its branch length to the
branch of its descendant, so the distances between the retained terminals are
preserved. For example, pruning the tree above to A and D produces:

	(A:4,D:11);

If a single taxon is selected, the output is a tree with a single terminal,
without branch length:

	A;

Branch lengths are written using the shortest decimal representation that
reads back to the same value, so the output format might differ from the input
format (for example, 0.50 is written as 0.5).
	`,
}
