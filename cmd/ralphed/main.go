package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erg0nix/ralphed/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		if !errors.Is(err, cli.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
