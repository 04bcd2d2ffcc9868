// Command sqlsh is an interactive SQL shell.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlsh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
