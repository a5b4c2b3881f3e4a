package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/farxc/brake_validator/internal/env"
)

const version = "0.1.0"

func main() {
	if err := env.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
