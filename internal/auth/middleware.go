package auth

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
)

// Session cookie names. Admin and manager sessions are kept separate so
// an operator can hold both at once.
const (
	AdminCookieName   = "ts_admin_token"
	ManagerCookieName = "ts_manager_token"
)

// SetSessionCookie writes the session cookie for the actor kind.
func SetSessionCookie(w http.ResponseWriter, actorKind, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieNameFor(actorKind),
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie for the actor kind.
func ClearSessionCookie(w http.ResponseWriter, actorKind string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieNameFor(actorKind),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieNameFor(actorKind string) string {
	if actorKind == requestctx.ActorKindAdmin {
		return AdminCookieName
	}
	return ManagerCookieName
}

// Middleware authenticates requests from session cookies. The admin
// cookie wins when both are present. Unauthenticated requests get a
// JSON 401.
func Middleware(cfg TokenConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := actorFromRequest(r, cfg)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithActor(r.Context(), actor)))
		})
	}
}

func actorFromRequest(r *http.Request, cfg TokenConfig) (requestctx.Actor, error) {
	var lastErr error
	for _, name := range []string{AdminCookieName, ManagerCookieName} {
		cookie, err := r.Cookie(name)
		if err != nil || cookie.Value == "" {
			continue
		}
		actor, err := VerifyToken(cookie.Value, cfg)
		if err == nil {
			return actor, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return requestctx.Actor{}, lastErr
	}
	return requestctx.Actor{}, apperrors.New(apperrors.CodeUnauthorized, "sign in to continue")
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		code = apperrors.CodeUnauthorized
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": string(code)},
	})
}
