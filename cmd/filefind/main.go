// filefind is a find(1)-like utility for discovering files that satisfy a
// declarative bundle of filter criteria.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
