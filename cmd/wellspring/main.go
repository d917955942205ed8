// Package main is the single-binary entrypoint for Wellspring.
// Wellspring is the simplest way to track wellness locally — one binary,
// zero accounts.
package main

import "github.com/wellspring-app/wellspring/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
