package web

import (
	"net/http"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/retail"
)

type warehouseView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	BranchID  string    `json:"branchId,omitempty"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toWarehouseView(warehouse retail.Warehouse) warehouseView {
	return warehouseView{
		ID:        warehouse.ID,
		CompanyID: warehouse.CompanyID,
		BranchID:  warehouse.BranchID,
		Name:      warehouse.Name,
		Address:   warehouse.Address,
		Capacity:  warehouse.Capacity,
		CreatedAt: warehouse.CreatedAt,
		UpdatedAt: warehouse.UpdatedAt,
	}
}

type createWarehouseRequest struct {
	CompanyID string `json:"companyId"`
	BranchID  string `json:"branchId"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Capacity  int    `json:"capacity"`
}

func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var req createWarehouseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	warehouse, err := h.svc.CreateWarehouse(r.Context(), retail.CreateWarehouseInput{
		CompanyID: req.CompanyID,
		BranchID:  req.BranchID,
		Name:      req.Name,
		Address:   req.Address,
		Capacity:  req.Capacity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWarehouseView(warehouse))
}

func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	warehouse, err := h.svc.GetWarehouse(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWarehouseView(warehouse))
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	companyID, err := requiredQuery(r, "companyId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	warehouses, err := h.svc.ListWarehouses(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]warehouseView, len(warehouses))
	for i, warehouse := range warehouses {
		views[i] = toWarehouseView(warehouse)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	snapshot, err := snapshotFromJSON(req.Fields, warehouseFields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p := requestLocale(r).printer
	warehouse, changes, outcome, err := h.svc.UpdateWarehouse(r.Context(), r.PathValue("id"), snapshot, req.Reason,
		changeset.WithLabels(fieldLabels(p, warehouseFields)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"warehouse": toWarehouseView(warehouse),
		"changes":   changeViews(p, changes),
		"summary":   changes.Summary(p),
	})
}

func (h *Handler) warehouseDeletionWarning(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.WarehouseDeletionTarget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, warningView(requestLocale(r).printer, target))
}

func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcome, err := h.svc.DeleteWarehouse(r.Context(), r.PathValue("id"), req.ConfirmName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if writeOutcome(w, r, outcome) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
