package main

import (
	"os"

	"github.com/causewaylab/crossing/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
