// Package http implements the order admission and status-poll HTTP
// endpoints on chi, using its path params instead of manually splitting
// r.URL.Path.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"flashsale/internal/flashsale/application/command"
	"flashsale/internal/flashsale/application/usecase"
	"flashsale/shared/apperrors"
)

var validate = validator.New()

type Handler struct {
	admit  *usecase.AdmitOrderUseCase
	status *usecase.GetOrderStatusUseCase
	log    *zap.Logger
}

func NewHandler(admit *usecase.AdmitOrderUseCase, status *usecase.GetOrderStatusUseCase, log *zap.Logger) *Handler {
	return &Handler{admit: admit, status: status, log: log}
}

// Routes mounts the core pipeline's HTTP surface onto r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/orders", h.SubmitOrder)
	r.Get("/orders/{id}/status", h.GetOrderStatus)
}

type submitOrderRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	FlashSaleID uuid.UUID `json:"flash_sale_id"`
	Quantity    int       `json:"quantity"`
}

type submitOrderResponse struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	StatusURL string `json:"status_url"`
}

// SubmitOrder implements POST /orders.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	idempotencyKey := r.Header.Get("Idempotency-Key")

	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, &apperrors.APIError{Status: http.StatusBadRequest, Code: "MALFORMED_BODY", Message: "request body is not valid JSON"})
		return
	}

	cmd := command.SubmitOrderCommand{
		UserID:         req.UserID,
		FlashSaleID:    req.FlashSaleID,
		Quantity:       req.Quantity,
		IdempotencyKey: idempotencyKey,
	}

	if err := validate.Struct(cmd); err != nil {
		writeAPIError(w, &apperrors.APIError{Status: http.StatusBadRequest, Code: "INVALID_REQUEST_BODY", Message: err.Error()})
		return
	}

	result, err := h.admit.Execute(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	orderIDStr := result.OrderID.String()
	writeJSON(w, http.StatusAccepted, submitOrderResponse{
		OrderID:   orderIDStr,
		Status:    "pending",
		StatusURL: "/orders/" + orderIDStr + "/status",
	})
}

type orderResult struct {
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

type orderStatusResponse struct {
	Status string       `json:"status"`
	Result *orderResult `json:"result,omitempty"`
}

// GetOrderStatus implements GET /orders/{id}/status.
func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	orderID, err := uuid.Parse(idParam)
	if err != nil {
		writeAPIError(w, &apperrors.APIError{Status: http.StatusBadRequest, Code: "INVALID_ORDER_ID", Message: "order id must be a valid uuid"})
		return
	}

	result, err := h.status.Execute(orderID)
	if err != nil {
		if re, ok := apperrors.AsRepoError(err); ok && re.Kind == apperrors.RepoNotFound {
			writeAPIError(w, &apperrors.APIError{Status: http.StatusNotFound, Code: "ORDER_NOT_FOUND", Message: "no order found for this id"})
			return
		}
		h.writeError(w, err)
		return
	}

	resp := orderStatusResponse{Status: result.Status}
	switch result.Status {
	case "completed":
		resp.Result = &orderResult{OrderID: result.OrderID.String(), Status: "CONFIRMED"}
	case "failed":
		resp.Result = &orderResult{Message: result.Message}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	apiErr := apperrors.ToAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		h.log.Error("unhandled error in admission path", zap.Error(err))
	}
	writeAPIError(w, apiErr)
}

func writeAPIError(w http.ResponseWriter, apiErr *apperrors.APIError) {
	writeJSON(w, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
