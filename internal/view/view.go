// Package view renders the HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var files embed.FS

// pages lists every renderable page. Each one is parsed together with the
// shared layout at startup so a broken template fails fast.
var pages = []string{
	"login.html",
	"register_company.html",
	"register_customer.html",
	"home_company.html",
	"home_customer.html",
	"home_none.html",
	"company_edit.html",
	"company_complement.html",
	"company_delete.html",
	"customer_edit.html",
	"customer_delete.html",
	"error.html",
}

// Data is the template context shared by all pages.
type Data struct {
	Title string
	Flash string
	Error string

	Authed bool
	Tipo   domain.AccountKind

	Company     *domain.CompanyProfile
	StatusLabel string
	StatusHint  string

	Customer *domain.CustomerProfile

	// Form echoes submitted values back after a rejected submit.
	Form map[string]string

	// From is the protected path to return to after login.
	From string

	Busy bool
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

// New parses all pages.
func New(logger *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template, len(pages)),
		logger:    logger,
	}
	funcs := template.FuncMap{
		"maskCNPJ":  maskCNPJ,
		"maskPhone": maskPhone,
	}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Render writes a page. Render failures fall back to a plain 500 since the
// response may be partially written already.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data *Data) {
	t, ok := r.templates[page]
	if !ok {
		r.logger.Error("unknown page requested", zap.String("page", page))
		http.Error(w, "página não encontrada", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = &Data{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		r.logger.Error("render failed", zap.String("page", page), zap.Error(err))
	}
}
