package web

import (
	"encoding/json"
	"net/http"

	"sales-ledger/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Handler holds the ApplicationService, the chi router, and the request validator.
type Handler struct {
	svc      app.ApplicationService
	validate *validator.Validate
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{
		svc:      svc,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)
	r.Get("/api/products", h.listProducts)
	r.Get("/api/dashboard", h.dashboard)
	r.Get("/api/sales", h.listSales)

	// Mutations: 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))
		r.Post("/api/sales", h.recordSale)
		r.Post("/api/inventory", h.recordInventoryAddition)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// filterFromQuery reads the shared read-query parameters. The product
// parameter may be omitted or "All Products" to disable the name filter.
func filterFromQuery(r *http.Request) app.FilterRequest {
	q := r.URL.Query()
	return app.FilterRequest{
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		ProductName: q.Get("product"),
	}
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboard(r.Context(), filterFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSales(r.Context(), filterFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

type recordSaleRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	SaleDate  string `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "malformed request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, err.Error(), "INVALID_ARGUMENT", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RecordSale(r.Context(), app.RecordSaleRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		SaleDate:  req.SaleDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

type recordAdditionRequest struct {
	ProductID     int64           `json:"product_id" validate:"required,gt=0"`
	QuantityAdded int64           `json:"quantity_added" validate:"required,gt=0"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit" validate:"-"`
	PurchaseDate  string          `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) recordInventoryAddition(w http.ResponseWriter, r *http.Request) {
	var req recordAdditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "malformed request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, err.Error(), "INVALID_ARGUMENT", http.StatusBadRequest)
		return
	}
	if req.CostPerUnit.Sign() <= 0 {
		writeError(w, r, "cost_per_unit must be positive", "INVALID_ARGUMENT", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RecordInventoryAddition(r.Context(), app.RecordAdditionRequest{
		ProductID:     req.ProductID,
		QuantityAdded: req.QuantityAdded,
		CostPerUnit:   req.CostPerUnit,
		PurchaseDate:  req.PurchaseDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
