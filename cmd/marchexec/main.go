/*
Copyright © 2025 The marchexec authors
SPDX-License-Identifier: Apache-2.0
*/

// marchexec resolves a requested program to its machine-optimised variant,
// when one exists, and replaces itself with it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/machlab/marchexec/pkg/cli"
	"github.com/machlab/marchexec/pkg/launch"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		var exitErr *launch.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "marchexec: %v\n", exitErr)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "marchexec: %v\n", err)
		os.Exit(launch.ExitUsage)
	}
}
