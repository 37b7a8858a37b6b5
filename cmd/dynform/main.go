package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-dynform/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "dynform:", err)
		os.Exit(1)
	}
}
