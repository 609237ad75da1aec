// Command quickdef looks up a word or phrase against several reference
// sources and prints the merged result.
//
// Exit codes: 0 = success (including "no matches found"), 1 = invalid
// query or every source failed.
package main

import (
	"os"

	"github.com/heartmarshall/quickdef/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
