// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for NBEConnect using
// Cobra. It wires configuration, logging, translations and the database,
// and drives the setup and options flows either through the terminal form
// or directly from flags.
package cli
