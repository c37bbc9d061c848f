// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyPrune is a tool to prune a reference phylogenetic tree
// to the taxa present in a sample.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyprune/cmd/phyprune/add"
	"github.com/js-arias/phyprune/cmd/phyprune/dist"
	"github.com/js-arias/phyprune/cmd/phyprune/draw"
	"github.com/js-arias/phyprune/cmd/phyprune/prj"
	"github.com/js-arias/phyprune/cmd/phyprune/prune"
	"github.com/js-arias/phyprune/cmd/phyprune/rankscmd"
	"github.com/js-arias/phyprune/cmd/phyprune/samples"
	"github.com/js-arias/phyprune/cmd/phyprune/terms"
)

var app = &command.Command{
	Usage: "phyprune <command> [<argument>...]",
	Short: "a tool to prune phylogenetic trees by sample",
}

func init() {
	app.Add(add.Command)
	app.Add(dist.Command)
	app.Add(draw.Command)
	app.Add(prj.Command)
	app.Add(prune.Command)
	app.Add(rankscmd.Command)
	app.Add(samples.Command)
	app.Add(terms.Command)
}

func main() {
	app.Main()
}
