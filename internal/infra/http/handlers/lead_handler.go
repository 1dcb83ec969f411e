package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/infra/queue"
)

type LeadHandler struct {
	Leads       entity.LeadRepositoryInterface
	Messages    entity.LeadMessageRepositoryInterface
	Sites       entity.WebsiteRepositoryInterface
	Profiles    entity.ProfileRepositoryInterface
	Producer    queue.ProducerInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(
	leads entity.LeadRepositoryInterface,
	messages entity.LeadMessageRepositoryInterface,
	sites entity.WebsiteRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	producer queue.ProducerInterface,
) *LeadHandler {
	return &LeadHandler{
		Leads:       leads,
		Messages:    messages,
		Sites:       sites,
		Profiles:    profiles,
		Producer:    producer,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

type CaptureLeadRequest struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service_requested,omitempty"`
	Message string `json:"message,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Capture is the public lead intake endpoint. The caller names the merchant
// by user_id; embedded widgets and third-party forms post here directly.
func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.rateLimiter.Allow(getClientIP(r)) {
		respondError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if _, err := h.Profiles.FindByID(ctx, req.UserID); err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	lead, err := entity.NewLead(req.UserID, req.Name, req.Email, req.Phone, req.Service, req.Message)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Leads.Create(ctx, lead); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to capture lead")
		return
	}

	h.publishCaptured(ctx, lead, "API")

	respondJSON(w, http.StatusCreated, map[string]any{"lead": lead})
}

// CaptureFromSite is the contact form on a published site. The site slug
// identifies whose lead this is; no session is involved.
func (h *LeadHandler) CaptureFromSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		respondJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	site, err := h.Sites.FindSettingsBySlug(ctx, chi.URLParam(r, "siteSlug"))
	if err != nil || !site.Published {
		respondJSON(w, http.StatusNotFound, CaptureLeadResponse{
			Success: false,
			Message: "Site not found",
		})
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	lead, err := entity.NewLead(site.UserID, req.Name, req.Email, req.Phone, req.Service, req.Message)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if err := h.Leads.Create(ctx, lead); err != nil {
		respondJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	h.publishCaptured(ctx, lead, "PUBLIC_SITE")

	respondJSON(w, http.StatusCreated, CaptureLeadResponse{Success: true})
}

// publishCaptured queues the initial AI reply and owner notification. A
// broker outage must not lose the lead, so publish failures only log.
func (h *LeadHandler) publishCaptured(ctx context.Context, lead *entity.Lead, origin string) {
	payload := queue.LeadCapturedPayload{
		LeadID:    lead.ID,
		UserID:    lead.UserID,
		LeadName:  lead.Name,
		LeadEmail: lead.Email,
		Service:   lead.ServiceRequested,
		Origin:    origin,
	}
	if err := h.Producer.PublishLeadCaptured(ctx, payload); err != nil {
		log.Printf("[LEADS] publish failed for lead %s: %v", lead.ID, err)
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.FindByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req UpdateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	switch req.Status {
	case entity.LeadStatusNew, entity.LeadStatusContacted, entity.LeadStatusCompleted, entity.LeadStatusLost:
	default:
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	lead, err := h.findOwnedLead(r, leadID)
	if err != nil {
		respondError(w, http.StatusNotFound, "lead not found")
		return
	}

	if err := h.Leads.UpdateStatus(r.Context(), lead.ID, req.Status); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update lead")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *LeadHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	lead, err := h.findOwnedLead(r, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "lead not found")
		return
	}

	messages, err := h.Messages.FindByLeadID(r.Context(), lead.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

type AddLeadMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AddMessage records a manual conversation turn (owner reply or a lead reply
// pasted in by the owner). AI turns only come from the generator.
func (h *LeadHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	lead, err := h.findOwnedLead(r, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "lead not found")
		return
	}

	var req AddLeadMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Role != entity.MessageRoleOwner && req.Role != entity.MessageRoleLead {
		respondError(w, http.StatusBadRequest, "role must be owner or lead")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	msg := entity.NewLeadMessage(lead.ID, req.Role, req.Content)
	if err := h.Messages.Create(r.Context(), msg); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save message")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *LeadHandler) findOwnedLead(r *http.Request, leadID string) (*entity.Lead, error) {
	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		return nil, err
	}
	if lead.UserID != middleware.UserID(r.Context()) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, nil
}
