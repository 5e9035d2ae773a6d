package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/retail"
)

type managerView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	BranchID  string    `json:"branchId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	HiredOn   string    `json:"hiredOn"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toManagerView(manager retail.Manager) managerView {
	return managerView{
		ID:        manager.ID,
		CompanyID: manager.CompanyID,
		BranchID:  manager.BranchID,
		Name:      manager.Name,
		Email:     manager.Email,
		Phone:     manager.Phone,
		HiredOn:   manager.HiredOn.Format(editDateLayout),
		CreatedAt: manager.CreatedAt,
		UpdatedAt: manager.UpdatedAt,
	}
}

type createManagerRequest struct {
	CompanyID string `json:"companyId"`
	BranchID  string `json:"branchId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	HiredOn   string `json:"hiredOn"`
}

func (h *Handler) createManager(w http.ResponseWriter, r *http.Request) {
	var req createManagerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var hiredOn time.Time
	if req.HiredOn != "" {
		day, err := time.Parse(editDateLayout, req.HiredOn)
		if err != nil {
			writeError(w, r, invalidField("hiredOn", err))
			return
		}
		hiredOn = day
	}
	manager, err := h.svc.CreateManager(r.Context(), retail.CreateManagerInput{
		CompanyID: req.CompanyID,
		BranchID:  req.BranchID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		HiredOn:   hiredOn,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toManagerView(manager))
}

func (h *Handler) getManager(w http.ResponseWriter, r *http.Request) {
	manager, err := h.svc.GetManager(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toManagerView(manager))
}

func (h *Handler) listManagers(w http.ResponseWriter, r *http.Request) {
	companyID, err := requiredQuery(r, "companyId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	managers, err := h.svc.ListManagers(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]managerView, len(managers))
	for i, manager := range managers {
		views[i] = toManagerView(manager)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) updateManager(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	snapshot, err := snapshotFromJSON(req.Fields, managerFields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p := requestLocale(r).printer
	manager, changes, outcome, err := h.svc.UpdateManager(r.Context(), r.PathValue("id"), snapshot, req.Reason,
		changeset.WithLabels(fieldLabels(p, managerFields)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"manager": toManagerView(manager),
		"changes": changeViews(p, changes),
		"summary": changes.Summary(p),
	})
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) setManagerPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.SetManagerPassword(r.Context(), r.PathValue("id"), req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) managerDeletionWarning(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.ManagerDeletionTarget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, warningView(requestLocale(r).printer, target))
}

func (h *Handler) deleteManager(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcome, err := h.svc.DeleteManager(r.Context(), r.PathValue("id"), req.ConfirmName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
