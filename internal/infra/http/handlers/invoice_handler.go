package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/usecase"
)

type InvoiceHandler struct {
	Invoices        entity.InvoiceRepositoryInterface
	Profiles        entity.ProfileRepositoryInterface
	CreatePaymentUC *usecase.CreatePaymentUseCase
	rateLimiter     *RateLimiter
}

func NewInvoiceHandler(
	invoices entity.InvoiceRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	createPaymentUC *usecase.CreatePaymentUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{
		Invoices:        invoices,
		Profiles:        profiles,
		CreatePaymentUC: createPaymentUC,
		rateLimiter:     NewRateLimiter(20, time.Minute),
	}
}

type CreateInvoiceRequest struct {
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	LineItems     []entity.LineItem `json:"line_items"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	invoice, err := entity.NewInvoice(middleware.UserID(r.Context()), req.CustomerName, req.CustomerEmail, req.LineItems, req.DueDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Invoices.Create(r.Context(), invoice); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create invoice")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"invoice": invoice})
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Invoices.FindByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Invoices.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil || invoice.UserID != middleware.UserID(r.Context()) {
		respondError(w, http.StatusNotFound, "invoice not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"invoice": invoice})
}

// PublicInvoiceView is what the pay page shows a non-user customer. No
// user id, no payment-intent id, no customer email echo.
type PublicInvoiceView struct {
	ID           string            `json:"id"`
	BusinessName string            `json:"business_name"`
	CustomerName string            `json:"customer_name"`
	LineItems    []entity.LineItem `json:"line_items"`
	AmountCents  int64             `json:"amount_cents"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
}

func (h *InvoiceHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		respondError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	invoice, err := h.Invoices.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "invoice not found")
		return
	}

	businessName := ""
	if profile, err := h.Profiles.FindByID(r.Context(), invoice.UserID); err == nil {
		businessName = profile.BusinessName
	}

	respondJSON(w, http.StatusOK, map[string]any{"invoice": PublicInvoiceView{
		ID:           invoice.ID,
		BusinessName: businessName,
		CustomerName: invoice.CustomerName,
		LineItems:    invoice.LineItems,
		AmountCents:  invoice.AmountCents,
		Currency:     invoice.Currency,
		Status:       invoice.Status,
		DueDate:      invoice.DueDate,
	}})
}

// CreatePayment starts checkout for a public invoice link.
func (h *InvoiceHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		respondError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	output, err := h.CreatePaymentUC.Execute(r.Context(), usecase.CreatePaymentInput{
		InvoiceID: chi.URLParam(r, "id"),
	})
	if err != nil {
		respondUseCaseError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, output)
}
