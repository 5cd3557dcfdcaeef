package main

import (
	"fmt"
	"os"

	"oee-lab/cmd/oee-lab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
