// revealctl drives the activation engine from the command line: scan an
// HTML page for activation targets, simulate a scroll through it, or
// toggle the persisted dark-mode preference.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
