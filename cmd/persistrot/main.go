// Command persistrot inspects and manages persisted vessel rotation state.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/persistrot/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
