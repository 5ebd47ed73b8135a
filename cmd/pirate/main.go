// Command pirate is the CLI entry point for the PirateSpeak toolchain.
//
// Usage:
//
//	pirate tokens <file> [--json]                 Print tokens
//	pirate parse  <file> [--format json|yaml]     Print the AST
//	pirate run    <file> --class C --method m     Invoke a method
//	pirate repl                                   Start interactive REPL
//	pirate version                                Print version information
package main

import (
	"errors"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errReported) {
			reportError(os.Stderr, err)
		}
		os.Exit(1)
	}
}
