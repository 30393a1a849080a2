package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashsale/internal/product/application"
	"flashsale/shared/apperrors"
)

type Handler struct {
	uc *application.ProductUseCase
}

func NewHandler(uc *application.ProductUseCase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/products", h.Create)
	r.Get("/products", h.List)
	r.Get("/products/{id}", h.Get)
}

type createProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.uc.Create(r.Context(), req.Name, req.Price)
	if err != nil {
		apiErr := apperrors.ToAPIError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.uc.Get(r.Context(), id)
	if err != nil {
		apiErr := apperrors.ToAPIError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.List(r.Context())
	if err != nil {
		apiErr := apperrors.ToAPIError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
