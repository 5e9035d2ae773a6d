// Package auth issues and verifies login tokens and password credentials
// for admin and manager actors.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
)

// TokenConfig defines how session tokens are signed and verified.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// tokenClaims is the internal claims type used for JWT parsing. The
// actor ID rides in the registered subject claim.
type tokenClaims struct {
	jwt.RegisteredClaims
	ActorKind string `json:"actor_kind"`
	CompanyID string `json:"company_id,omitempty"`
	BranchID  string `json:"branch_id,omitempty"`
}

// IssueToken signs a session token for the given actor.
func IssueToken(actor requestctx.Actor, cfg TokenConfig) (string, error) {
	if len(cfg.Secret) == 0 {
		return "", errors.New("token signer is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	issuedAt := cfg.Now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		ActorKind: actor.Kind,
		CompanyID: actor.CompanyID,
		BranchID:  actor.BranchID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}

// VerifyToken validates a session token and returns the actor it names.
func VerifyToken(token string, cfg TokenConfig) (requestctx.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return requestctx.Actor{}, apperrors.New(apperrors.CodeTokenInvalid, "session token is required")
	}
	if len(cfg.Secret) == 0 {
		return requestctx.Actor{}, errors.New("token verifier is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(cfg.Now),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return requestctx.Actor{}, mapJWTError(err)
	}
	if parsed.Subject == "" || parsed.ActorKind == "" {
		return requestctx.Actor{}, apperrors.New(apperrors.CodeTokenInvalid, "session token claims are incomplete")
	}

	return requestctx.Actor{
		Kind:      parsed.ActorKind,
		ID:        parsed.Subject,
		CompanyID: parsed.CompanyID,
		BranchID:  parsed.BranchID,
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.New(apperrors.CodeTokenExpired, "session token is expired")
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return apperrors.New(apperrors.CodeTokenInvalid, "session token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeTokenInvalid, "session token alg is invalid")
	}
	return apperrors.New(apperrors.CodeTokenInvalid, "session token is invalid")
}
