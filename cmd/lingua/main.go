// Package main is the single-binary entrypoint for Lingua.
package main

import "github.com/lingua-network/lingua/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
