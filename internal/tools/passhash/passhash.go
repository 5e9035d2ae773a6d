// Package passhash hashes operator passwords for direct credential
// provisioning.
package passhash

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/trastiendahq/trastienda/internal/auth"
)

// Config holds configuration for password hashing.
type Config struct {
	Password string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Password, "password", "", "password to hash (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run hashes the configured password, reading it from in when the flag
// was not given, and writes the hash to out.
func Run(cfg Config, out io.Writer, in io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}

	password := cfg.Password
	if password == "" {
		if in == nil {
			return errors.New("password is required")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(string(data), "\r\n")
	}
	if password == "" {
		return errors.New("password is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
