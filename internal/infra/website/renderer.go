package website

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tradestack/tradestack-api/internal/entity"
)

// Renderer serves the published micro-sites. Pure read path: settings row by
// slug, page by sub-slug or homepage flag, themed HTML out.
type Renderer struct {
	Sites entity.WebsiteRepositoryInterface
	tmpl  *template.Template
}

type pageView struct {
	SiteTitle      string
	Tagline        string
	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	PageTitle      string
	Content        template.HTML
	Nav            []navItem
}

type navItem struct {
	Title string
	Href  string
}

func NewRenderer(sites entity.WebsiteRepositoryInterface) (*Renderer, error) {
	tmpl, err := template.ParseFiles(filepath.Join("templates", "site_page.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to load site template: %w", err)
	}
	return &Renderer{Sites: sites, tmpl: tmpl}, nil
}

// Render writes the requested page, or a plain 404 when the site is
// unpublished or the page does not exist. pageSlug empty means homepage.
func (r *Renderer) Render(ctx context.Context, w http.ResponseWriter, siteSlug, pageSlug string) {
	settings, err := r.Sites.FindSettingsBySlug(ctx, siteSlug)
	if err != nil || !settings.Published {
		http.NotFound(w, nil)
		return
	}

	var page *entity.WebsitePage
	if pageSlug == "" {
		page, err = r.Sites.FindHomepage(ctx, settings.UserID)
	} else {
		page, err = r.Sites.FindPageBySlug(ctx, settings.UserID, pageSlug)
	}
	if err != nil {
		http.NotFound(w, nil)
		return
	}

	view := pageView{
		SiteTitle:      settings.SiteTitle,
		Tagline:        settings.Tagline,
		PrimaryColor:   orDefault(settings.PrimaryColor, "#1d4ed8"),
		SecondaryColor: orDefault(settings.SecondaryColor, "#f59e0b"),
		FontFamily:     orDefault(settings.FontFamily, "Arial, sans-serif"),
		PageTitle:      page.Title,
		Content:        renderContent(page),
	}

	if pages, err := r.Sites.FindPagesByUserID(ctx, settings.UserID); err == nil {
		for _, p := range pages {
			href := "/site/" + settings.Slug
			if !p.IsHomepage {
				href += "/" + p.Slug
			}
			view.Nav = append(view.Nav, navItem{Title: p.Title, Href: href})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.tmpl.Execute(w, view); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// renderContent trusts stored HTML (sanitized by the editor before it ever
// reaches the table) and converts plain text to paragraphs.
func renderContent(page *entity.WebsitePage) template.HTML {
	if page.ContentFormat == entity.ContentFormatHTML {
		return template.HTML(page.Content)
	}

	var sb strings.Builder
	for _, para := range strings.Split(page.Content, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(template.HTMLEscapeString(para))
		sb.WriteString("</p>\n")
	}
	return template.HTML(sb.String())
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
