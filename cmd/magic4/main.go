package main

import (
	"os"

	"github.com/frozendustbunny/Magic4/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
