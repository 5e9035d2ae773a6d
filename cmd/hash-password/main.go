// Package main hashes an operator password for credential provisioning.
package main

import (
	"flag"
	"os"

	"github.com/trastiendahq/trastienda/internal/platform/config"
	"github.com/trastiendahq/trastienda/internal/tools/passhash"
)

func main() {
	cfg, err := passhash.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := passhash.Run(cfg, os.Stdout, os.Stdin); err != nil {
		config.Exitf("hash password: %v", err)
	}
}
