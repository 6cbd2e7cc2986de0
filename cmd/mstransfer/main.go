// Command mstransfer streams mzML and msz/mszx mass-spectrometry files
// between a sender and a receiver over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/chrisagrams/mstransfer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
