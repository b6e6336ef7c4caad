// Command postboard runs the post board in a terminal and serves a local
// posts API for it to talk to.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/postboard/cmd/postboard/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
