package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/retail"
)

type companyView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCompanyView(company retail.Company) companyView {
	return companyView{
		ID:        company.ID,
		Name:      company.Name,
		TaxID:     company.TaxID,
		Email:     company.Email,
		Phone:     company.Phone,
		Address:   company.Address,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}

type createCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"taxId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) createCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	company, err := h.svc.CreateCompany(r.Context(), retail.CreateCompanyInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyView(company))
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.svc.GetCompany(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyView(company))
}

func (h *Handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]companyView, len(companies))
	for i, company := range companies {
		views[i] = toCompanyView(company)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) updateCompany(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	snapshot, err := snapshotFromJSON(req.Fields, companyFields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p := requestLocale(r).printer
	company, changes, outcome, err := h.svc.UpdateCompany(r.Context(), r.PathValue("id"), snapshot, req.Reason,
		changeset.WithLabels(fieldLabels(p, companyFields)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"company": toCompanyView(company),
		"changes": changeViews(p, changes),
		"summary": changes.Summary(p),
	})
}

func (h *Handler) companyDeletionWarning(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.CompanyDeletionTarget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, warningView(requestLocale(r).printer, target))
}

func (h *Handler) deleteCompany(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcome, err := h.svc.DeleteCompany(r.Context(), r.PathValue("id"), req.ConfirmName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
