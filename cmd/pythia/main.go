// Command pythia inspects Python source through the toolkit's lexer
// and parser: parse trees, token streams, and a watch loop that
// reparses files as they change.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pythia:", err)
		os.Exit(1)
	}
}
