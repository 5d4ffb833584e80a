package http

import (
	"errors"
	"net/http"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", s.page(r, "Register", accountForm{}))
}

// handleRegister creates the account and signs the new user in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	reg := parseRegistration(r.PostForm)
	u, err := s.deps.Accounts.Register(r.Context(), reg)
	if v, ok := core.AsValidation(err); ok {
		data := s.page(r, "Register", accountForm{FullName: reg.FullName, Email: reg.Email})
		data.Errors = v
		s.render(w, r, http.StatusUnprocessableEntity, "register", data)
		return
	}
	if err != nil {
		s.serverError(w, r, err, applog.OpRegister)
		return
	}

	if err := s.signIn(w, u); err != nil {
		s.serverError(w, r, err, applog.OpRegister)
		return
	}
	s.logger.InfoContext(r.Context(), "User registered", applog.FieldUserID, u.ID)
	seeOther(w, r, "/")
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	form := accountForm{ReturnURL: safeReturnURL(r.URL.Query().Get("ReturnUrl"))}
	s.render(w, r, http.StatusOK, "login", s.page(r, "Log in", form))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := accountForm{
		Email:     r.PostForm.Get("Email"),
		ReturnURL: safeReturnURL(r.PostForm.Get("ReturnUrl")),
	}

	u, err := s.deps.Accounts.Login(r.Context(), form.Email, r.PostForm.Get("Password"))
	if errors.Is(err, core.ErrInvalidCredentials) {
		data := s.page(r, "Log in", form)
		data.Message = "Invalid email or password."
		s.render(w, r, http.StatusUnauthorized, "login", data)
		return
	}
	if err != nil {
		s.serverError(w, r, err, applog.OpLogin)
		return
	}

	if err := s.signIn(w, u); err != nil {
		s.serverError(w, r, err, applog.OpLogin)
		return
	}
	seeOther(w, r, form.ReturnURL)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	seeOther(w, r, "/Account/Login")
}

func (s *Server) signIn(w http.ResponseWriter, u core.User) error {
	token, expires, err := s.deps.Sessions.Issue(u)
	if err != nil {
		return err
	}
	s.setSession(w, token, expires)
	return nil
}
