package http

import (
	"net/url"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

// categoryForm is the add/edit page model.
type categoryForm struct {
	Category core.Category
	Types    []core.CategoryType
}

// transactionForm keeps the raw amount and date so rejected input is shown back verbatim.
type transactionForm struct {
	Transaction core.Transaction
	Amount      string
	Date        string
	Categories  []core.Category
}

type expenseForm struct {
	Title  string
	Amount string
	Date   string
}

type accountForm struct {
	FullName  string
	Email     string
	ReturnURL string
}

// parseCategoryForm binds CategoryId, Title, Icon and Type. Any owner field is ignored.
func parseCategoryForm(form url.Values) (core.Category, *core.ValidationErrors) {
	v := &core.ValidationErrors{}
	id, ok := parseOptionalID(form.Get("CategoryId"))
	if !ok {
		v.Add("CategoryId", "Invalid category.")
	}
	return core.Category{
		ID:    id,
		Title: sanitizeInput(form.Get("Title")),
		Icon:  sanitizeInput(form.Get("Icon")),
		Type:  core.CategoryType(strings.TrimSpace(form.Get("Type"))),
	}, v
}

// parseTransactionForm binds TransactionId, CategoryId, Amount, Note and Date.
// A blank amount or date is left zero for the service to judge.
func parseTransactionForm(form url.Values) (core.Transaction, transactionForm, *core.ValidationErrors) {
	v := &core.ValidationErrors{}
	raw := transactionForm{
		Amount: strings.TrimSpace(form.Get("Amount")),
		Date:   strings.TrimSpace(form.Get("Date")),
	}

	var t core.Transaction
	var ok bool
	if t.ID, ok = parseOptionalID(form.Get("TransactionId")); !ok {
		v.Add("TransactionId", "Invalid transaction.")
	}
	if t.CategoryID, ok = parseOptionalID(form.Get("CategoryId")); !ok {
		v.Add("CategoryId", "Please select a category.")
	}
	if raw.Amount != "" {
		cents, err := core.ParseSignedCents(raw.Amount)
		if err != nil {
			v.Add("Amount", "Amount must be a number.")
		}
		t.Amount = core.Money{Cents: cents}
	}
	if raw.Date != "" {
		d, err := core.ParseDate(raw.Date)
		if err != nil {
			v.Add("Date", "Date must be in YYYY-MM-DD format.")
		}
		t.Date = d
	}
	t.Note = sanitizeInput(form.Get("Note"))

	raw.Transaction = t
	return t, raw, v
}

// parseExpenseForm binds Title, Amount and Date. A blank date means today.
func parseExpenseForm(form url.Values) (core.Expense, expenseForm, *core.ValidationErrors) {
	v := &core.ValidationErrors{}
	raw := expenseForm{
		Title:  sanitizeInput(form.Get("Title")),
		Amount: strings.TrimSpace(form.Get("Amount")),
		Date:   strings.TrimSpace(form.Get("Date")),
	}

	e := core.Expense{Title: raw.Title, Date: core.Today()}
	if raw.Amount == "" {
		v.Add("Amount", "Amount is required.")
	} else if cents, err := core.ParseDecimalToCents(raw.Amount); err != nil {
		v.Add("Amount", "Amount must be between 0.01 and 1000000.")
	} else {
		e.Amount = core.Money{Cents: cents}
	}
	if raw.Date != "" {
		d, err := core.ParseDate(raw.Date)
		if err != nil {
			v.Add("Date", "Date must be in YYYY-MM-DD format.")
		} else {
			e.Date = d
		}
	}
	if strings.TrimSpace(e.Title) == "" {
		v.Add("Title", "Title is required.")
	}
	return e, raw, v
}

func parseRegistration(form url.Values) services.Registration {
	return services.Registration{
		FullName:        sanitizeInput(form.Get("FullName")),
		Email:           strings.TrimSpace(form.Get("Email")),
		Password:        form.Get("Password"),
		ConfirmPassword: form.Get("ConfirmPassword"),
	}
}
