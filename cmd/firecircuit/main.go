// Command line entry point for FireCircuit-Intelligence.
package main

import (
	"os"

	"github.com/turtacn/FireCircuit-Intelligence/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
