package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type WebsiteHandler struct {
	Sites entity.WebsiteRepositoryInterface
}

func NewWebsiteHandler(sites entity.WebsiteRepositoryInterface) *WebsiteHandler {
	return &WebsiteHandler{Sites: sites}
}

func (h *WebsiteHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Sites.FindSettingsByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusNotFound, "website not configured")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

type UpdateWebsiteSettingsRequest struct {
	Slug           string `json:"slug"`
	Published      bool   `json:"published"`
	SiteTitle      string `json:"site_title"`
	Tagline        string `json:"tagline,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`
}

func (h *WebsiteHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateWebsiteSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		respondError(w, http.StatusBadRequest, "slug must be lowercase letters, digits and hyphens")
		return
	}
	if req.SiteTitle == "" {
		respondError(w, http.StatusBadRequest, "site_title is required")
		return
	}

	// The slug must belong to nobody else. The unique index is the real
	// guard; this check just gives a friendlier error.
	userID := middleware.UserID(r.Context())
	if existing, err := h.Sites.FindSettingsBySlug(r.Context(), req.Slug); err == nil && existing.UserID != userID {
		respondError(w, http.StatusConflict, "slug already taken")
		return
	}

	settings := &entity.WebsiteSettings{
		UserID:         userID,
		Slug:           req.Slug,
		Published:      req.Published,
		SiteTitle:      req.SiteTitle,
		Tagline:        req.Tagline,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		FontFamily:     req.FontFamily,
		UpdatedAt:      time.Now(),
	}
	if err := h.Sites.UpsertSettings(r.Context(), settings); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

func (h *WebsiteHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.Sites.FindPagesByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list pages")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

type UpsertPageRequest struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ContentFormat string `json:"content_format,omitempty"`
	SortIndex     int    `json:"sort_index"`
	IsHomepage    bool   `json:"is_homepage"`
}

func (h *WebsiteHandler) UpsertPage(w http.ResponseWriter, r *http.Request) {
	var req UpsertPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		respondError(w, http.StatusBadRequest, "slug must be lowercase letters, digits and hyphens")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.ContentFormat != "" && req.ContentFormat != entity.ContentFormatHTML && req.ContentFormat != entity.ContentFormatText {
		respondError(w, http.StatusBadRequest, "content_format must be html or text")
		return
	}

	page := entity.NewWebsitePage(
		middleware.UserID(r.Context()),
		req.Slug,
		req.Title,
		req.Content,
		req.ContentFormat,
		req.SortIndex,
		req.IsHomepage,
	)
	if err := h.Sites.UpsertPage(r.Context(), page); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save page")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"page": page})
}
