package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"expensetracker/internal/auth"
)

const (
	sessionCookieName = "et_session"
	csrfCookieName    = "et_csrf"

	maxFormBytes = 1 << 20
)

type ctxKey int

const csrfTokenKey ctxKey = iota

// withCSRF issues the double-submit token and rejects POSTs whose form field or
// header does not match the cookie.
func (s *Server) withCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := ""
		if c, err := r.Cookie(csrfCookieName); err == nil {
			expected = c.Value
		}

		if r.Method == http.MethodPost {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			submitted := r.PostForm.Get(auth.CSRFFieldName)
			if submitted == "" {
				submitted = r.Header.Get(auth.CSRFHeaderName)
			}
			if !auth.ValidCSRFToken(expected, submitted) {
				s.logger.WarnContext(r.Context(), "Rejected request with invalid anti-forgery token", "path", r.URL.Path)
				http.Error(w, "Invalid anti-forgery token", http.StatusBadRequest)
				return
			}
		}

		token := expected
		if token == "" {
			token = auth.NewCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.deps.CookieSecure,
				SameSite: http.SameSiteStrictMode,
			})
		}
		ctx := context.WithValue(r.Context(), csrfTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func csrfToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}

// withSession loads the signed-in user from the session cookie. An invalid or
// expired token is cleared and the request continues anonymously.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := s.deps.Sessions.Parse(c.Value)
		if err != nil {
			s.logger.DebugContext(r.Context(), "Discarding invalid session", "error", err)
			s.clearSession(w)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
	})
}

// requireAuth redirects anonymous requests to the login page with a ReturnUrl.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.SessionFrom(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		status := http.StatusFound
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			status = http.StatusSeeOther
		}
		http.Redirect(w, r, "/Account/Login?ReturnUrl="+url.QueryEscape(r.URL.RequestURI()), status)
	})
}

func (s *Server) setSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.deps.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.deps.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
