package passhash

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestParseConfigPasswordFlag(t *testing.T) {
	fs := flag.NewFlagSet("passhash", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-password", "letmein!"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Password != "letmein!" {
		t.Fatalf("password = %q", cfg.Password)
	}
}

func TestRunHashesFlagPassword(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Run(Config{Password: "letmein!"}, buf, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	hash := strings.TrimSpace(buf.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("letmein!")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestRunReadsStdin(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Run(Config{}, buf, strings.NewReader("letmein!\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	hash := strings.TrimSpace(buf.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("letmein!")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestRunRequiresPassword(t *testing.T) {
	if err := Run(Config{}, &bytes.Buffer{}, strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(Config{Password: "letmein!"}, nil, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}
