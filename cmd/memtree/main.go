//go:build linux || darwin || freebsd || windows

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pranshuparmar/memtree/internal/app"
	"github.com/pranshuparmar/memtree/internal/scan"
)

func main() {
	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, scan.ErrCancelled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
