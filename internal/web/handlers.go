package web

import (
	"net/http"

	"github.com/tably/tably/internal/logging"
	mw "github.com/tably/tably/internal/web/middleware"
	"github.com/tably/tably/internal/web/templates"
)

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// handleIndex renders the table view. HTMX requests get just the table
// section so search, sort, and paging swap in place.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	vs, result, _, loadedAt := s.applyView(r)

	params := templates.TablePageParams{
		SourceName:  s.loader.Location(),
		State:       vs,
		Result:      result,
		PageSizes:   s.cfg.Table.PageSizeOptions,
		GateEnabled: s.cfg.Auth.GateEnabled(),
		LoadedAt:    loadedAt,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		templates.TableSection(params).Render(r.Context(), w)
		return
	}
	templates.TablePage(params).Render(r.Context(), w)
}

// handleLoginPage renders the gate form.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.LoginPage("").Render(r.Context(), w)
}

// handleLogin checks the submitted secret and starts a session. The
// comparison is constant time, but the gate itself is cosmetic: anyone
// with the shared secret is "everyone".
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_FORM", "could not parse login form")
		return
	}

	if !mw.SecretMatches(r.PostFormValue("password"), s.cfg.Auth.Password) {
		logging.FromContext(r.Context()).Warn("gate: wrong password", "ip", r.RemoteAddr)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		templates.LoginPage("That password is not right.").Render(r.Context(), w)
		return
	}

	token := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.Auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout ends the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(mw.SessionCookie); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
