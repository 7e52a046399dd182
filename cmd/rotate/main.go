// Command rotate rotates the square matrices in a CSV file.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/rotate/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
