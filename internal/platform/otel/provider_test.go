package otel

import (
	"context"
	"testing"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("TRASTIENDA_OTEL_ENDPOINT", "")

	shutdown, err := Setup(context.Background(), "trastienda-test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupDisabledExplicitly(t *testing.T) {
	t.Setenv("TRASTIENDA_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("TRASTIENDA_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "trastienda-test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
