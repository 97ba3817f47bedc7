package main

import (
	"fmt"
	"os"

	"priced/internal/trainer"
)

func main() {
	if err := trainer.BuildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
