package http

import (
	"net/http"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

func (s *Server) handleTransactionIndex(w http.ResponseWriter, r *http.Request) {
	txs, err := s.deps.Transactions.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.serverError(w, r, err, applog.OpList)
		return
	}
	s.render(w, r, http.StatusOK, "transaction_index", s.page(r, "Transactions", txs))
}

func (s *Server) handleTransactionForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	form := transactionForm{Date: core.Today().String()}
	if id != 0 {
		t, err := s.deps.Transactions.Get(r.Context(), auth.UserID(r.Context()), id)
		if err != nil {
			s.fail(w, r, err, applog.OpRead)
			return
		}
		form = transactionForm{Transaction: t, Amount: t.Amount.String(), Date: t.Date.String()}
	}
	s.renderTransactionForm(w, r, http.StatusOK, form, nil)
}

// handleTransactionSave creates or fully replaces a transaction. An edit of
// a row the caller does not own is not found, whatever else is wrong with
// the form.
func (s *Server) handleTransactionSave(w http.ResponseWriter, r *http.Request) {
	t, form, verr := parseTransactionForm(r.PostForm)
	if t.ID != 0 {
		if _, err := s.deps.Transactions.Get(r.Context(), auth.UserID(r.Context()), t.ID); err != nil {
			s.fail(w, r, err, applog.OpRead)
			return
		}
	}
	if !verr.Empty() {
		s.renderTransactionForm(w, r, http.StatusUnprocessableEntity, form, verr)
		return
	}

	_, err := s.deps.Transactions.Save(r.Context(), auth.UserID(r.Context()), t)
	if v, ok := core.AsValidation(err); ok {
		s.renderTransactionForm(w, r, http.StatusUnprocessableEntity, form, v)
		return
	}
	if err != nil {
		s.fail(w, r, err, applog.OpUpdate)
		return
	}
	seeOther(w, r, "/Transaction")
}

func (s *Server) renderTransactionForm(w http.ResponseWriter, r *http.Request, status int, form transactionForm, verr *core.ValidationErrors) {
	cats, err := s.deps.Transactions.CategoryOptions(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.serverError(w, r, err, applog.OpRead)
		return
	}
	form.Categories = cats

	title := "Create a new transaction"
	if form.Transaction.ID != 0 {
		title = "Edit transaction"
	}
	data := s.page(r, title, form)
	data.Errors = verr
	s.render(w, r, status, "transaction_form", data)
}

func (s *Server) handleTransactionDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || id == 0 {
		s.notFound(w, r)
		return
	}
	t, err := s.deps.Transactions.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		s.fail(w, r, err, applog.OpRead)
		return
	}
	s.render(w, r, http.StatusOK, "transaction_delete", s.page(r, "Delete transaction", t))
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	if err := s.deps.Transactions.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		s.fail(w, r, err, applog.OpDelete)
		return
	}
	seeOther(w, r, "/Transaction")
}
