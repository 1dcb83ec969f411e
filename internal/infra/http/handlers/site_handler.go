package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradestack/tradestack-api/internal/infra/website"
)

// SiteHandler serves the published micro-sites as plain HTML.
type SiteHandler struct {
	Renderer *website.Renderer
}

func NewSiteHandler(renderer *website.Renderer) *SiteHandler {
	return &SiteHandler{Renderer: renderer}
}

func (h *SiteHandler) Homepage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(r.Context(), w, chi.URLParam(r, "siteSlug"), "")
}

func (h *SiteHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(r.Context(), w, chi.URLParam(r, "siteSlug"), chi.URLParam(r, "pageSlug"))
}
