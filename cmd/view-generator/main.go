// Package main provides the CLI entrypoint for view-generator.
//
// view-generator is a go generate tool that:
//   - Loads the Go package declaring a source struct
//   - Parses a declaration body of fragments and views over that struct
//   - Generates owned, Ref and Mut view types with their conversions
//   - Generates a tagged union over every view with unified accessors
package main

import (
	"os"

	"view-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
