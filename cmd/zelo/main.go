// Command zelo is the thin executable wrapper around pkg/cli: parse
// os.Args, run, and translate the reported exit code (spec.md §6).
package main

import (
	"os"

	"github.com/zelolang/zelo/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
