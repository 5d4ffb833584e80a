package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// pathID parses the {id} wildcard. ok is false for a non-numeric or negative id.
// An absent wildcard yields 0.
func pathID(r *http.Request) (id int64, ok bool) {
	return parseOptionalID(r.PathValue("id"))
}

// parseOptionalID parses a hidden id field. Blank means 0.
func parseOptionalID(v string) (int64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// sanitizeInput removes control characters other than tab and newlines, then trims.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// safeReturnURL accepts only local absolute paths, falling back to "/".
func safeReturnURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return raw
}

func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
