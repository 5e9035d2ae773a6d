package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/retail"
)

type supplierView struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	ContactName string    `json:"contactName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSupplierView(supplier retail.Supplier) supplierView {
	return supplierView{
		ID:          supplier.ID,
		CompanyID:   supplier.CompanyID,
		Name:        supplier.Name,
		ContactName: supplier.ContactName,
		Email:       supplier.Email,
		Phone:       supplier.Phone,
		Categories:  supplier.Categories,
		CreatedAt:   supplier.CreatedAt,
		UpdatedAt:   supplier.UpdatedAt,
	}
}

type createSupplierRequest struct {
	CompanyID   string   `json:"companyId"`
	Name        string   `json:"name"`
	ContactName string   `json:"contactName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Categories  []string `json:"categories"`
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req createSupplierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	supplier, err := h.svc.CreateSupplier(r.Context(), retail.CreateSupplierInput{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Categories:  req.Categories,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSupplierView(supplier))
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.svc.GetSupplier(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSupplierView(supplier))
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	companyID, err := requiredQuery(r, "companyId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	suppliers, err := h.svc.ListSuppliers(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]supplierView, len(suppliers))
	for i, supplier := range suppliers {
		views[i] = toSupplierView(supplier)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	snapshot, err := snapshotFromJSON(req.Fields, supplierFields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p := requestLocale(r).printer
	supplier, changes, outcome, err := h.svc.UpdateSupplier(r.Context(), r.PathValue("id"), snapshot, req.Reason,
		changeset.WithLabels(fieldLabels(p, supplierFields)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"supplier": toSupplierView(supplier),
		"changes":  changeViews(p, changes),
		"summary":  changes.Summary(p),
	})
}

func (h *Handler) supplierDeletionWarning(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.SupplierDeletionTarget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, warningView(requestLocale(r).printer, target))
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcome, err := h.svc.DeleteSupplier(r.Context(), r.PathValue("id"), req.ConfirmName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
