// Package web serves the server-rendered portfolio page and its plain HTML
// form posts.
package web

import (
	"bytes"
	"html/template"
	"net/http"

	"portfolio-site/internal/delivery/http/audit"
	"portfolio-site/internal/delivery/http/middleware"
	"portfolio-site/internal/delivery/http/prefstore"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/view"
	"portfolio-site/pkg/apperror"
	"portfolio-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators of the page handler.
type Deps struct {
	Content     domain.ContentRepository
	ContactUC   domain.ContactUsecase
	ThemeUC     domain.ThemeUsecase
	Stores      prefstore.Factory
	Ads         view.AdConfig
	SiteURL     string
	SubmitLimit gin.HandlerFunc
}

type PageHandler struct {
	deps Deps
	tmpl *template.Template
}

// NewPageHandler registers the page, its form posts and the static assets.
func NewPageHandler(r gin.IRouter, deps Deps) (*PageHandler, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	if deps.SubmitLimit == nil {
		deps.SubmitLimit = func(c *gin.Context) { c.Next() }
	}
	h := &PageHandler{deps: deps, tmpl: tmpl}

	r.GET("/", h.Index)
	r.POST("/contact", deps.SubmitLimit, h.SubmitContact)
	r.POST("/theme", h.ToggleTheme)
	r.StaticFS("/static", http.FS(staticFiles()))

	return h, nil
}

// Index renders the whole page for the calling visitor. ?static=1 renders
// every section already revealed and leaves out the script.
func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	content, err := h.deps.Content.Current(ctx)
	if err != nil {
		c.Error(apperror.ServiceUnavailable("Content unavailable", err))
		return
	}

	theme, err := h.deps.ThemeUC.Current(ctx, h.deps.Stores(c))
	if err != nil {
		logger.Log.Warn("theme read failed, using default", "error", err, "request_id", c.GetString(string(domain.KeyRequestID)))
		theme = domain.ThemeDark
	}

	page := view.NewPage(view.PageOptions{
		Theme:     theme,
		Content:   content,
		Contact:   h.deps.ContactUC.Snapshot(ctx, middleware.VisitorID(c)),
		Ads:       h.deps.Ads,
		Static:    c.Query("static") == "1",
		CSRFToken: middleware.CSRFToken(c),
		SiteURL:   h.deps.SiteURL,
	})

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// SubmitContact handles the no-script form post. The outcome is kept in the
// visitor's form and shown on the redirected page.
func (h *PageHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid form submission"))
		return
	}

	_, err := h.deps.ContactUC.SubmitRequest(c.Request.Context(), middleware.VisitorID(c), &req)
	audit.ContactOutcome(c, req.Email, err)

	c.Redirect(http.StatusSeeOther, "/#contact")
}

// ToggleTheme flips the stored theme and redirects back to the page.
func (h *PageHandler) ToggleTheme(c *gin.Context) {
	if _, err := h.deps.ThemeUC.Toggle(c.Request.Context(), h.deps.Stores(c)); err != nil {
		logger.Log.Warn("theme toggle failed", "error", err, "request_id", c.GetString(string(domain.KeyRequestID)))
	}
	c.Redirect(http.StatusSeeOther, "/")
}
