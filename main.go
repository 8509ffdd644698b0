// cardcrawl imports game catalog items into the card catalog API.
package main

import (
	"fmt"
	"os"

	"github.com/spellforge/cardcrawl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
