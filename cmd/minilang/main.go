package main

import (
	"fmt"
	"os"

	"minilang/cmd/minilang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
