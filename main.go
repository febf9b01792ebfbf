package main

import (
	"os"

	"github.com/PearCoding/artic/cmd/articcheck"
)

func main() {
	if err := articcheck.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
