// Colourgrid - A browsable colour space partitioner
//
// Colourgrid divides a colour space into nested grids of cells so that any
// colour can be reached in a few clicks from a web page or the terminal.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/colourgrid/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
