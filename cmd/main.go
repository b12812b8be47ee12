package main

import (
	"fmt"
	"os"

	"github.com/constraint-framework/cspy/cmd/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cspy: %s\n", err)
		os.Exit(1)
	}
}
