// Package main generates the token signing secret for the server.
package main

import (
	"flag"
	"os"

	"github.com/trastiendahq/trastienda/internal/platform/config"
	"github.com/trastiendahq/trastienda/internal/tools/authsecret"
)

func main() {
	cfg, err := authsecret.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := authsecret.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate secret: %v", err)
	}
}
