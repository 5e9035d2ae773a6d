package web

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/retail/service"
)

// Handler routes the back-office HTTP API onto the service layer.
type Handler struct {
	svc    *service.Service
	tokens auth.TokenConfig
}

// NewHandler builds the API handler. Session routes are open; everything
// else under /api/ requires a valid session cookie.
func NewHandler(svc *service.Service, tokens auth.TokenConfig) http.Handler {
	h := &Handler{svc: svc, tokens: tokens}

	api := http.NewServeMux()

	api.HandleFunc("POST /api/companies", h.createCompany)
	api.HandleFunc("GET /api/companies", h.listCompanies)
	api.HandleFunc("GET /api/companies/{id}", h.getCompany)
	api.HandleFunc("PUT /api/companies/{id}", h.updateCompany)
	api.HandleFunc("GET /api/companies/{id}/deletion-warning", h.companyDeletionWarning)
	api.HandleFunc("DELETE /api/companies/{id}", h.deleteCompany)

	api.HandleFunc("POST /api/branches", h.createBranch)
	api.HandleFunc("GET /api/branches", h.listBranches)
	api.HandleFunc("GET /api/branches/{id}", h.getBranch)
	api.HandleFunc("PUT /api/branches/{id}", h.updateBranch)
	api.HandleFunc("GET /api/branches/{id}/deletion-warning", h.branchDeletionWarning)
	api.HandleFunc("DELETE /api/branches/{id}", h.deleteBranch)

	api.HandleFunc("POST /api/warehouses", h.createWarehouse)
	api.HandleFunc("GET /api/warehouses", h.listWarehouses)
	api.HandleFunc("GET /api/warehouses/{id}", h.getWarehouse)
	api.HandleFunc("PUT /api/warehouses/{id}", h.updateWarehouse)
	api.HandleFunc("GET /api/warehouses/{id}/deletion-warning", h.warehouseDeletionWarning)
	api.HandleFunc("DELETE /api/warehouses/{id}", h.deleteWarehouse)

	api.HandleFunc("POST /api/managers", h.createManager)
	api.HandleFunc("GET /api/managers", h.listManagers)
	api.HandleFunc("GET /api/managers/{id}", h.getManager)
	api.HandleFunc("PUT /api/managers/{id}", h.updateManager)
	api.HandleFunc("POST /api/managers/{id}/password", h.setManagerPassword)
	api.HandleFunc("GET /api/managers/{id}/deletion-warning", h.managerDeletionWarning)
	api.HandleFunc("DELETE /api/managers/{id}", h.deleteManager)

	api.HandleFunc("POST /api/suppliers", h.createSupplier)
	api.HandleFunc("GET /api/suppliers", h.listSuppliers)
	api.HandleFunc("GET /api/suppliers/{id}", h.getSupplier)
	api.HandleFunc("PUT /api/suppliers/{id}", h.updateSupplier)
	api.HandleFunc("GET /api/suppliers/{id}/deletion-warning", h.supplierDeletionWarning)
	api.HandleFunc("DELETE /api/suppliers/{id}", h.deleteSupplier)

	api.HandleFunc("POST /api/customers", h.createCustomer)
	api.HandleFunc("GET /api/customers", h.listCustomers)
	api.HandleFunc("GET /api/customers/{id}", h.getCustomer)
	api.HandleFunc("PUT /api/customers/{id}", h.updateCustomer)
	api.HandleFunc("GET /api/customers/{id}/deletion-warning", h.customerDeletionWarning)
	api.HandleFunc("DELETE /api/customers/{id}", h.deleteCustomer)

	api.HandleFunc("GET /api/audit", h.listAuditEvents)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions/admin", h.adminLogin)
	mux.HandleFunc("POST /api/sessions/manager", h.managerLogin)
	mux.HandleFunc("POST /api/sessions/logout", h.logout)
	mux.Handle("/api/", auth.Middleware(tokens)(api))

	return traced(withLocale(mux))
}

// traced opens a server span per request.
func traced(next http.Handler) http.Handler {
	tracer := otel.Tracer("trastienda/web")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
