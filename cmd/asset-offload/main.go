package main

import (
	"os"

	"github.com/bianoble/asset-offload/cmd/asset-offload/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
