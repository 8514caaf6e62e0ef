// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for NBEConnect.
//
// Usage:
//
//	go run . [flags]
//	./nbeconnect [flags]
//
// Without a subcommand the interactive setup form is shown. See --help.
package main

import (
	"os"

	"github.com/svj/nbeconnect/internal/logging"
	"github.com/svj/nbeconnect/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("NBEConnect CLI error: %v", err)
		os.Exit(1)
	}
}
