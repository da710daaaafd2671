// Package main is the entry point for the voicesort CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "voicesort: %v\n", err)
		os.Exit(1)
	}
}
