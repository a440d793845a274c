// Package main is the entry point for the QuantumArb feed agent.
package main

import (
	"fmt"
	"os"

	"github.com/bhanukaranwal/Quantum-Arb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
