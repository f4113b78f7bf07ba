// Command mergebench evaluates automated merge tools by comparing their
// output against human-produced merges.
package main

import (
	"os"

	"github.com/kilupskalvis/mergebench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
