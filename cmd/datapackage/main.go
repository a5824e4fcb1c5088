// Package main prints the Nonogram data package as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	datapackagecmd "nonogram.ap/internal/cmd/datapackage"
)

func main() {
	cfg, err := datapackagecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := datapackagecmd.Run(context.Background(), cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
