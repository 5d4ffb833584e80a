package http

import (
	"net/http"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

// The /Expenses pages are the unscoped legacy list. They need no sign-in
// but still go through the anti-forgery check.

func (s *Server) handleExpenseIndex(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Expenses.List(r.Context())
	if err != nil {
		s.serverError(w, r, err, applog.OpList)
		return
	}
	s.render(w, r, http.StatusOK, "expenses_index", s.page(r, "Expenses", list))
}

func (s *Server) handleExpenseForm(w http.ResponseWriter, r *http.Request) {
	form := expenseForm{Date: core.Today().String()}
	s.render(w, r, http.StatusOK, "expenses_create", s.page(r, "New expense", form))
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	e, form, verr := parseExpenseForm(r.PostForm)
	if verr.Empty() {
		created, err := s.deps.Expenses.Append(r.Context(), e)
		if err == nil {
			s.logger.DebugContext(r.Context(), "Expense appended", applog.FieldEntityID, created.ID)
			seeOther(w, r, "/Expenses")
			return
		}
		v, ok := core.AsValidation(err)
		if !ok {
			s.serverError(w, r, err, applog.OpCreate)
			return
		}
		verr = v
	}

	data := s.page(r, "New expense", form)
	data.Errors = verr
	s.render(w, r, http.StatusUnprocessableEntity, "expenses_create", data)
}
