package main

import (
	"os"

	"github.com/delicious-app/delicious/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
