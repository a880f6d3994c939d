// Command algobench generates datasets and benchmarks sorting and matrix
// multiplication strategies over them.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/algobench/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
