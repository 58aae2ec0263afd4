// Command trellis renders the stock widget layouts headlessly.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/trellis/cmd/trellis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
