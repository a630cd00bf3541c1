package main

import (
	"os"

	"github.com/ifprefix/ifprefix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
