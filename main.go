package main

import (
	"os"

	"github.com/italienapp/italienapp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
