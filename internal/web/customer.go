package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/retail"
)

type customerView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	BornOn    string    `json:"bornOn,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCustomerView(customer retail.Customer) customerView {
	view := customerView{
		ID:        customer.ID,
		CompanyID: customer.CompanyID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Tags:      customer.Tags,
		Notes:     customer.Notes,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
	if customer.BornOn != nil {
		view.BornOn = customer.BornOn.Format(editDateLayout)
	}
	return view
}

type createCustomerRequest struct {
	CompanyID string   `json:"companyId"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	BornOn    string   `json:"bornOn"`
	Tags      []string `json:"tags"`
	Notes     string   `json:"notes"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var bornOn *time.Time
	if req.BornOn != "" {
		day, err := time.Parse(editDateLayout, req.BornOn)
		if err != nil {
			writeError(w, r, invalidField("bornOn", err))
			return
		}
		bornOn = &day
	}
	customer, err := h.svc.CreateCustomer(r.Context(), retail.CreateCustomerInput{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BornOn:    bornOn,
		Tags:      req.Tags,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerView(customer))
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.svc.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerView(customer))
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	companyID, err := requiredQuery(r, "companyId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	customers, err := h.svc.ListCustomers(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]customerView, len(customers))
	for i, customer := range customers {
		views[i] = toCustomerView(customer)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	snapshot, err := snapshotFromJSON(req.Fields, customerFields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p := requestLocale(r).printer
	customer, changes, outcome, err := h.svc.UpdateCustomer(r.Context(), r.PathValue("id"), snapshot, req.Reason,
		changeset.WithLabels(fieldLabels(p, customerFields)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"customer": toCustomerView(customer),
		"changes":  changeViews(p, changes),
		"summary":  changes.Summary(p),
	})
}

func (h *Handler) customerDeletionWarning(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.CustomerDeletionTarget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, warningView(requestLocale(r).printer, target))
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcome, err := h.svc.DeleteCustomer(r.Context(), r.PathValue("id"), req.ConfirmName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
