package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/retail/service"
	"github.com/trastiendahq/trastienda/internal/storage"
	"github.com/trastiendahq/trastienda/internal/storage/sqlite"
)

const (
	testAdminID       = "admin-1"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "sup3rsecret"
)

type testAPI struct {
	handler http.Handler
	store   *sqlite.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = store.PutCredential(context.Background(), storage.Credential{
		ActorKind:    requestctx.ActorKindAdmin,
		ActorID:      testAdminID,
		Email:        testAdminEmail,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("seed admin credential: %v", err)
	}

	svc := service.New(store, audit.NewRecorder(store), auth.NewAuthenticator(store))
	tokens := auth.TokenConfig{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "trastienda-test",
		TTL:    time.Hour,
	}
	return &testAPI{handler: NewHandler(svc, tokens), store: store}
}

// do issues a JSON request with the given session cookies and decodes
// the response body into out when out is non-nil.
func (a *testAPI) do(t *testing.T, method, path string, body any, cookies []*http.Cookie, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

// loginAdmin performs the admin login flow and returns the session cookie.
func (a *testAPI) loginAdmin(t *testing.T) []*http.Cookie {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/sessions/admin", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	for _, cookie := range cookies {
		if cookie.Name == auth.AdminCookieName && cookie.Value != "" {
			return []*http.Cookie{cookie}
		}
	}
	t.Fatal("admin session cookie not set")
	return nil
}

func (a *testAPI) createCompany(t *testing.T, cookies []*http.Cookie, name, taxID string) string {
	t.Helper()
	var created struct {
		ID string `json:"id"`
	}
	rec := a.do(t, http.MethodPost, "/api/companies", map[string]string{
		"name":  name,
		"taxId": taxID,
		"phone": "555-0100",
	}, cookies, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create company status = %d, body %s", rec.Code, rec.Body.String())
	}
	if created.ID == "" {
		t.Fatal("create company returned no id")
	}
	return created.ID
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	api := newTestAPI(t)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	rec := api.do(t, http.MethodPost, "/api/sessions/admin", map[string]string{
		"email":    testAdminEmail,
		"password": "wrong-password",
	}, nil, &resp)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp.Error.Code != "CREDENTIALS_INVALID" {
		t.Fatalf("error code = %q", resp.Error.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/companies", nil, nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCompanyLifecycle(t *testing.T) {
	api := newTestAPI(t)
	cookies := api.loginAdmin(t)
	companyID := api.createCompany(t, cookies, "Acme Retail", "ACM-001")

	var fetched struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	rec := api.do(t, http.MethodGet, "/api/companies/"+companyID, nil, cookies, &fetched)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if fetched.Name != "Acme Retail" {
		t.Fatalf("name = %q", fetched.Name)
	}

	// A reason shorter than the minimum leaves the record untouched.
	var failed struct {
		FieldErrors map[string]struct {
			Code string `json:"code"`
		} `json:"fieldErrors"`
	}
	rec = api.do(t, http.MethodPut, "/api/companies/"+companyID, map[string]any{
		"fields": map[string]any{"phone": "555-0199"},
		"reason": "too short",
	}, cookies, &failed)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("short reason status = %d, body %s", rec.Code, rec.Body.String())
	}
	if failed.FieldErrors["reason"].Code != "REASON_TOO_SHORT" {
		t.Fatalf("fieldErrors = %+v", failed.FieldErrors)
	}

	var updated struct {
		Company struct {
			Phone string `json:"phone"`
		} `json:"company"`
		Changes []struct {
			Field string `json:"field"`
			Label string `json:"label"`
			Old   string `json:"old"`
			New   string `json:"new"`
		} `json:"changes"`
		Summary string `json:"summary"`
	}
	rec = api.do(t, http.MethodPut, "/api/companies/"+companyID, map[string]any{
		"fields": map[string]any{"phone": "555-0199"},
		"reason": "corrected the front desk phone number",
	}, cookies, &updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	if updated.Company.Phone != "555-0199" {
		t.Fatalf("updated phone = %q", updated.Company.Phone)
	}
	if len(updated.Changes) != 1 || updated.Changes[0].Field != "phone" || updated.Changes[0].Label != "Phone" {
		t.Fatalf("changes = %+v", updated.Changes)
	}
	if !strings.Contains(updated.Summary, "555-0100") || !strings.Contains(updated.Summary, "555-0199") {
		t.Fatalf("summary = %q", updated.Summary)
	}

	var warning struct {
		DisplayName string   `json:"displayName"`
		Notices     []string `json:"notices"`
	}
	rec = api.do(t, http.MethodGet, "/api/companies/"+companyID+"/deletion-warning", nil, cookies, &warning)
	if rec.Code != http.StatusOK {
		t.Fatalf("warning status = %d", rec.Code)
	}
	if warning.DisplayName != "Acme Retail" || len(warning.Notices) == 0 {
		t.Fatalf("warning = %+v", warning)
	}

	// Mistyped name keeps the company.
	rec = api.do(t, http.MethodDelete, "/api/companies/"+companyID, map[string]string{
		"confirmName": "Acme",
		"password":    testAdminPassword,
	}, cookies, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatched name status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodDelete, "/api/companies/"+companyID, map[string]string{
		"confirmName": "Acme Retail",
		"password":    testAdminPassword,
	}, cookies, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/companies/"+companyID, nil, cookies, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestDeletionWarningIsLocalized(t *testing.T) {
	api := newTestAPI(t)
	cookies := api.loginAdmin(t)
	companyID := api.createCompany(t, cookies, "Acme Retail", "ACM-001")

	var warning struct {
		Notices []string `json:"notices"`
	}
	rec := api.do(t, http.MethodGet, "/api/companies/"+companyID+"/deletion-warning?lang=es-MX", nil, cookies, &warning)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(warning.Notices) == 0 || !strings.Contains(warning.Notices[0], "sucursales") {
		t.Fatalf("notices = %+v", warning.Notices)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == LangCookieName && cookie.Value == "es-MX" {
			return
		}
	}
	t.Fatal("language cookie not persisted")
}

func TestAuditListingRecordsEdits(t *testing.T) {
	api := newTestAPI(t)
	cookies := api.loginAdmin(t)
	companyID := api.createCompany(t, cookies, "Acme Retail", "ACM-001")

	rec := api.do(t, http.MethodPut, "/api/companies/"+companyID, map[string]any{
		"fields": map[string]any{"phone": "555-0199"},
		"reason": "corrected the front desk phone number",
	}, cookies, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	var events []struct {
		Action    string `json:"action"`
		ActorKind string `json:"actorKind"`
		Reason    string `json:"reason"`
	}
	rec = api.do(t, http.MethodGet, "/api/audit?filter="+"action+%3D+%22update%22", nil, cookies, &events)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Action != "update" || events[0].ActorKind != requestctx.ActorKindAdmin {
		t.Fatalf("event = %+v", events[0])
	}
	if events[0].Reason != "corrected the front desk phone number" {
		t.Fatalf("reason = %q", events[0].Reason)
	}
}

func TestManagerSessionIsCompanyScoped(t *testing.T) {
	api := newTestAPI(t)
	adminCookies := api.loginAdmin(t)
	ownCompany := api.createCompany(t, adminCookies, "Acme Retail", "ACM-001")
	otherCompany := api.createCompany(t, adminCookies, "Borealis Goods", "BOR-001")

	var branch struct {
		ID string `json:"id"`
	}
	rec := api.do(t, http.MethodPost, "/api/branches", map[string]string{
		"companyId": ownCompany,
		"name":      "Downtown",
	}, adminCookies, &branch)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create branch status = %d", rec.Code)
	}

	var manager struct {
		ID string `json:"id"`
	}
	rec = api.do(t, http.MethodPost, "/api/managers", map[string]string{
		"companyId": ownCompany,
		"branchId":  branch.ID,
		"name":      "Rosa Díaz",
		"email":     "rosa@acme.test",
	}, adminCookies, &manager)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create manager status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, fmt.Sprintf("/api/managers/%s/password", manager.ID), map[string]string{
		"password": "letmein!",
	}, adminCookies, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set password status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/sessions/manager", map[string]string{
		"email":    "rosa@acme.test",
		"password": "letmein!",
	}, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("manager login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var managerCookies []*http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.ManagerCookieName && cookie.Value != "" {
			managerCookies = append(managerCookies, cookie)
		}
	}
	if len(managerCookies) == 0 {
		t.Fatal("manager session cookie not set")
	}

	rec = api.do(t, http.MethodGet, "/api/companies/"+ownCompany, nil, managerCookies, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("own company status = %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/companies/"+otherCompany, nil, managerCookies, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other company status = %d, want 403", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/companies", nil, managerCookies, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("list companies status = %d, want 403", rec.Code)
	}
}

func TestListBranchesRequiresCompanyParam(t *testing.T) {
	api := newTestAPI(t)
	cookies := api.loginAdmin(t)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	rec := api.do(t, http.MethodGet, "/api/branches", nil, cookies, &resp)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error.Code != "REQUEST_INVALID" {
		t.Fatalf("error code = %q", resp.Error.Code)
	}
}
