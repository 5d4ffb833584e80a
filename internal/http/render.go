package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/middleware/trace"
)

const layoutTemplate = "layout.html"

// pageData is what every page template receives.
type pageData struct {
	Title     string
	Session   auth.Session
	SignedIn  bool
	CSRFToken string
	Errors    *core.ValidationErrors
	Message   string
	Data      any
}

var templateFuncs = template.FuncMap{
	"money": func(m core.Money) string { return m.String() },
	"date":  func(d core.Date) string { return d.String() },
	"fieldError": func(v *core.ValidationErrors, field string) string {
		return v.For(field)
	},
	"isNegative": func(m core.Money) bool { return m.Cents < 0 },
}

// loadTemplates pairs the layout with each page so every page can define its
// own "content" block.
func loadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(fsys, "templates/"+layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		name := path.Base(p)
		if name == layoutTemplate {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(fsys, p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".html")] = t
	}
	return out, nil
}

func (s *Server) page(r *http.Request, title string, data any) pageData {
	sess, ok := auth.SessionFrom(r.Context())
	return pageData{
		Title:     title,
		Session:   sess,
		SignedIn:  ok,
		CSRFToken: csrfToken(r.Context()),
		Data:      data,
	}
}

// render executes the named page into a buffer first so a template failure
// never leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	t, ok := s.templates[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("template %q not found", name), applog.OpRender)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		s.serverError(w, r, fmt.Errorf("execute %s: %w", name, err), applog.OpRender)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "The page you requested could not be found.")
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error, op string) {
	s.log.LogError(r.Context(), "Request failed", err, applog.ComponentHTTP, op, applog.NewFields().
		WithRequestID(trace.GetRequestID(r.Context())).
		WithUser(auth.UserID(r.Context())).
		WithHTTPRequest(r.Method, r.URL.Path, "", r.UserAgent(), r.Referer()))
	s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// renderError writes the error page, or plain text when the error template
// itself is unavailable.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	t, ok := s.templates["error"]
	if ok {
		data := s.page(r, http.StatusText(status), nil)
		data.Message = message
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			_, _ = buf.WriteTo(w)
			return
		}
	}
	http.Error(w, message, status)
}

// fail maps a service error to a response. Validation errors are handled by
// the caller, which still has the form to re-render.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, core.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	s.serverError(w, r, err, op)
}
