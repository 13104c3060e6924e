package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/AbaSheger/eventflow/internal/usecase"
)

type Handlers struct {
	placeOrderUC  *usecase.PlaceOrder
	cancelOrderUC *usecase.CancelOrder
	getOrderUC    *usecase.GetOrder
}

func NewHandlers(placeOrderUC *usecase.PlaceOrder, cancelOrderUC *usecase.CancelOrder, getOrderUC *usecase.GetOrder) *Handlers {
	return &Handlers{
		placeOrderUC:  placeOrderUC,
		cancelOrderUC: cancelOrderUC,
		getOrderUC:    getOrderUC,
	}
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerEmail string          `json:"customer_email"`
		ProductName   string          `json:"product_name"`
		Quantity      int             `json:"quantity"`
		TotalPrice    decimal.Decimal `json:"total_price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, Problem{
			Type:   "/errors/validation",
			Title:  "Validation failed",
			Status: http.StatusBadRequest,
			Detail: "invalid request body",
		})
		return
	}

	params := usecase.PlaceOrderParams{
		CustomerEmail: req.CustomerEmail,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		TotalPrice:    req.TotalPrice,
	}

	order, err := h.placeOrderUC.Execute(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.cancelOrderUC.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.getOrderUC.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	json.NewEncoder(w).Encode(order)
}
