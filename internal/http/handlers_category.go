package http

import (
	"errors"
	"net/http"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

func (s *Server) handleCategoryIndex(w http.ResponseWriter, r *http.Request) {
	cats, err := s.deps.Categories.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.serverError(w, r, err, applog.OpList)
		return
	}
	s.render(w, r, http.StatusOK, "category_index", s.page(r, "Categories", cats))
}

// handleCategoryForm shows the add form for id 0 or no id, otherwise the edit form of an owned category.
func (s *Server) handleCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	c := core.Category{Type: core.CategoryExpense}
	if id != 0 {
		var err error
		if c, err = s.deps.Categories.Get(r.Context(), auth.UserID(r.Context()), id); err != nil {
			s.fail(w, r, err, applog.OpRead)
			return
		}
	}
	s.renderCategoryForm(w, r, http.StatusOK, c, nil)
}

func (s *Server) handleCategorySave(w http.ResponseWriter, r *http.Request) {
	c, verr := parseCategoryForm(r.PostForm)
	if c.ID != 0 {
		if _, err := s.deps.Categories.Get(r.Context(), auth.UserID(r.Context()), c.ID); err != nil {
			s.fail(w, r, err, applog.OpRead)
			return
		}
	}
	if !verr.Empty() {
		s.renderCategoryForm(w, r, http.StatusUnprocessableEntity, c, verr)
		return
	}

	_, err := s.deps.Categories.Save(r.Context(), auth.UserID(r.Context()), c)
	if v, ok := core.AsValidation(err); ok {
		s.renderCategoryForm(w, r, http.StatusUnprocessableEntity, c, v)
		return
	}
	if err != nil {
		s.fail(w, r, err, applog.OpUpdate)
		return
	}
	seeOther(w, r, "/Category")
}

func (s *Server) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, c core.Category, verr *core.ValidationErrors) {
	title := "Create a new category"
	if c.ID != 0 {
		title = "Edit category"
	}
	data := s.page(r, title, categoryForm{Category: c, Types: core.CategoryTypes()})
	data.Errors = verr
	s.render(w, r, status, "category_form", data)
}

func (s *Server) handleCategoryDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || id == 0 {
		s.notFound(w, r)
		return
	}
	c, err := s.deps.Categories.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		s.fail(w, r, err, applog.OpRead)
		return
	}
	s.render(w, r, http.StatusOK, "category_delete", s.page(r, "Delete category", c))
}

// handleCategoryDelete removes an owned category. Missing and foreign ids
// redirect without change; a category still in use is refused with 409.
func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	userID := auth.UserID(r.Context())

	err := s.deps.Categories.Delete(r.Context(), userID, id)
	if errors.Is(err, core.ErrCategoryInUse) {
		c, getErr := s.deps.Categories.Get(r.Context(), userID, id)
		if getErr != nil {
			s.fail(w, r, getErr, applog.OpDelete)
			return
		}
		data := s.page(r, "Delete category", c)
		data.Message = "This category is used by one or more transactions. Delete or move them first."
		s.render(w, r, http.StatusConflict, "category_delete", data)
		return
	}
	if err != nil {
		s.fail(w, r, err, applog.OpDelete)
		return
	}
	seeOther(w, r, "/Category")
}
