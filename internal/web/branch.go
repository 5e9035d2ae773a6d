package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/retail"
)

type branchView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBranchView(branch retail.Branch) branchView {
	return branchView{
		ID:        branch.ID,
		CompanyID: branch.CompanyID,
		Name:      branch.Name,
		Phone:     branch.Phone,
		Address:   branch.Address,
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}
}

type createBranchRequest struct {
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (h *Handler) createBranch(w http.ResponseWriter, r *http.Request) {
	var req createBranchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	branch, err := h.svc.CreateBranch(r.Context(), retail.CreateBranchInput{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBranchView(branch))
}

func (h *Handler) getBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := h.svc.GetBranch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBranchView(branch))
}

func (h *Handler) listBranches(w http.ResponseWriter, r *http.Request) {
	companyID, err := requiredQuery(r, "companyId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	branches, err := h.svc.ListBranches(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]branchView, len(branches))
	for i, branch := range branches {
		views[i] = toBranchView(branch)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) updateBranch(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	snapshot, err := snapshotFromJSON(req.Fields, branchFields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p := requestLocale(r).printer
	branch, changes, outcome, err := h.svc.UpdateBranch(r.Context(), r.PathValue("id"), snapshot, req.Reason,
		changeset.WithLabels(fieldLabels(p, branchFields)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"branch":  toBranchView(branch),
		"changes": changeViews(p, changes),
		"summary": changes.Summary(p),
	})
}

func (h *Handler) branchDeletionWarning(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.BranchDeletionTarget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, warningView(requestLocale(r).printer, target))
}

func (h *Handler) deleteBranch(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcome, err := h.svc.DeleteBranch(r.Context(), r.PathValue("id"), req.ConfirmName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
