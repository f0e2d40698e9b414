// Command controls loads YAML control trees and runs them in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/controls/cmd/controls/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
