package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ActorKind string `json:"actorKind"`
	ActorID   string `json:"actorId"`
	CompanyID string `json:"companyId,omitempty"`
	BranchID  string `json:"branchId,omitempty"`
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	actor, err := h.svc.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.startSession(w, actor)
}

func (h *Handler) managerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	actor, err := h.svc.LoginManager(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.startSession(w, actor)
}

func (h *Handler) startSession(w http.ResponseWriter, actor requestctx.Actor) {
	token, err := auth.IssueToken(actor, h.tokens)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]errorPayload{
			"error": {Code: "UNKNOWN", Message: "could not start session"},
		})
		return
	}
	ttl := h.tokens.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	auth.SetSessionCookie(w, actor.Kind, token, int(ttl.Seconds()))
	writeJSON(w, http.StatusOK, loginResponse{
		ActorKind: actor.Kind,
		ActorID:   actor.ID,
		CompanyID: actor.CompanyID,
		BranchID:  actor.BranchID,
	})
}

// logout clears both session cookies so it works for either actor kind
// without requiring a valid token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, requestctx.ActorKindAdmin)
	auth.ClearSessionCookie(w, requestctx.ActorKindManager)
	w.WriteHeader(http.StatusNoContent)
}
