package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
)

func TestMiddlewareInjectsActor(t *testing.T) {
	cfg := testTokenConfig()
	actor := requestctx.Actor{Kind: requestctx.ActorKindAdmin, ID: "a-1"}
	token, err := IssueToken(actor, cfg)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var seen requestctx.Actor
	handler := Middleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = requestctx.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	request.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if seen != actor {
		t.Fatalf("expected actor %+v, got %+v", actor, seen)
	}
}

func TestMiddlewareRejectsMissingCookie(t *testing.T) {
	handler := Middleware(testTokenConfig())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/companies", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED code in body, got %s", recorder.Body.String())
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	cfg := testTokenConfig()
	token, err := IssueToken(requestctx.Actor{Kind: requestctx.ActorKindManager, ID: "m-1"}, cfg)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	later := cfg
	later.Now = func() time.Time {
		return time.Date(2026, time.March, 15, 15, 0, 0, 0, time.UTC)
	}
	handler := Middleware(later)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	request.AddCookie(&http.Cookie{Name: ManagerCookieName, Value: token})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "TOKEN_EXPIRED") {
		t.Fatalf("expected TOKEN_EXPIRED code in body, got %s", recorder.Body.String())
	}
}

func TestSessionCookieLifecycle(t *testing.T) {
	recorder := httptest.NewRecorder()
	SetSessionCookie(recorder, requestctx.ActorKindAdmin, "token-value", 3600)
	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != AdminCookieName || cookies[0].Value != "token-value" {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}

	recorder = httptest.NewRecorder()
	ClearSessionCookie(recorder, requestctx.ActorKindAdmin)
	cookies = recorder.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}
