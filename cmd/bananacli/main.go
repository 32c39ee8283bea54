// Command bananacli solves Bananagrams hands and inspects dictionaries
// from the command line, without going through the HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/crossplay/banana-engine/cmd/bananacli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
