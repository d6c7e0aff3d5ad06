// Package main provides the dbmeta CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dbmeta/internal/cli"

	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/all"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
