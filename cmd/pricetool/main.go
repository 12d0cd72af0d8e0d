// Package main is the entry point for the pricetool CLI.
package main

import (
	"os"

	"geo-pricing-service/cmd/pricetool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
