package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"regroup/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps classified failures to stable codes so scripts can react
// without parsing stderr.
func exitCode(err error) int {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		return 2
	case errors.Is(err, services.ErrDependency):
		return 3
	case errors.Is(err, services.ErrProbe):
		return 4
	case errors.Is(err, services.ErrAssembly), errors.Is(err, services.ErrExternalTool):
		// External tool failures surface during assembly.
		return 5
	default:
		return 1
	}
}
