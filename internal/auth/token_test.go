package auth

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "trastienda",
		TTL:    time.Hour,
		Now: func() time.Time {
			return time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testTokenConfig()
	actor := requestctx.Actor{
		Kind:      requestctx.ActorKindManager,
		ID:        "m-1",
		CompanyID: "co-1",
		BranchID:  "b-1",
	}

	token, err := IssueToken(actor, cfg)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	got, err := VerifyToken(token, cfg)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got != actor {
		t.Fatalf("expected %+v, got %+v", actor, got)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	cfg := testTokenConfig()
	token, err := IssueToken(requestctx.Actor{Kind: requestctx.ActorKindAdmin, ID: "a-1"}, cfg)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	later := cfg
	later.Now = func() time.Time {
		return time.Date(2026, time.March, 14, 17, 0, 0, 0, time.UTC)
	}
	_, err = VerifyToken(token, later)
	if apperrors.CodeOf(err) != apperrors.CodeTokenExpired {
		t.Fatalf("expected token expired, got %v", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	cfg := testTokenConfig()
	token, err := IssueToken(requestctx.Actor{Kind: requestctx.ActorKindAdmin, ID: "a-1"}, cfg)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := cfg
	other.Secret = []byte("ffffffffffffffffffffffffffffffff")
	_, err = VerifyToken(token, other)
	if apperrors.CodeOf(err) != apperrors.CodeTokenInvalid {
		t.Fatalf("expected token invalid, got %v", err)
	}
}

func TestVerifyTokenIssuerMismatch(t *testing.T) {
	cfg := testTokenConfig()
	token, err := IssueToken(requestctx.Actor{Kind: requestctx.ActorKindAdmin, ID: "a-1"}, cfg)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	_, err = VerifyToken(token, other)
	if apperrors.CodeOf(err) != apperrors.CodeTokenInvalid {
		t.Fatalf("expected token invalid, got %v", err)
	}
}

func TestVerifyTokenEmpty(t *testing.T) {
	_, err := VerifyToken("  ", testTokenConfig())
	if apperrors.CodeOf(err) != apperrors.CodeTokenInvalid {
		t.Fatalf("expected token invalid, got %v", err)
	}
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Secret = nil
	_, err := IssueToken(requestctx.Actor{Kind: "admin", ID: "a-1"}, cfg)
	if err == nil {
		t.Fatal("expected error without a secret")
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		t.Fatal("configuration failures are not domain errors")
	}
}
