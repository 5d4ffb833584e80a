package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	CategoryExpense CategoryType = "Expense"
	CategoryIncome  CategoryType = "Income"
)

const (
	MaxTitleLen = 50
	MaxIconLen  = 50
	MaxNoteLen  = 250

	// Legacy expense amount bounds, in cents.
	MinExpenseCents int64 = 1
	MaxExpenseCents int64 = 100_000_000

	// MaxTransactionCents bounds the magnitude of a transaction amount so
	// per-user totals stay far from int64 overflow.
	MaxTransactionCents int64 = 1_000_000_000_000
)

const dateLayout = "2006-01-02"

type (
	CategoryType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	User struct {
		ID           string
		FullName     string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}

	// Category groups transactions for a single owner.
	Category struct {
		ID        int64
		UserID    string
		Title     string
		Icon      string
		Type      CategoryType
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Transaction struct {
		ID         int64
		UserID     string
		CategoryID int64
		Amount     Money
		Note       string
		Date       Date
		CreatedAt  time.Time
		UpdatedAt  time.Time

		// Category is populated by list queries that join categories.
		Category *Category
	}

	// Expense is the unscoped, process-lifetime record behind /Expenses.
	Expense struct {
		ID     int64
		Title  string
		Amount Money
		Date   Date
	}

	ActivityEntry struct {
		ID         int64
		EventID    string
		UserID     string
		Entity     string
		EntityID   int64
		Action     string
		Summary    string
		OccurredAt time.Time
	}
)

// CategoryTypes lists the accepted category types in display order.
func CategoryTypes() []CategoryType {
	return []CategoryType{CategoryExpense, CategoryIncome}
}

func (t CategoryType) Valid() bool {
	return t == CategoryExpense || t == CategoryIncome
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Label renders the category as "icon title", used in select options.
func (c Category) Label() string {
	return strings.TrimSpace(c.Icon + " " + c.Title)
}

// Validate checks the user-editable fields. Owner and id are not validated.
func (c Category) Validate() error {
	v := &ValidationErrors{}
	title := strings.TrimSpace(c.Title)
	switch {
	case title == "":
		v.Add("Title", "Title is required.")
	case utf8.RuneCountInString(title) > MaxTitleLen:
		v.Add("Title", "Title must be at most 50 characters.")
	}
	if utf8.RuneCountInString(c.Icon) > MaxIconLen {
		v.Add("Icon", "Icon must be at most 50 characters.")
	}
	if c.Type == "" {
		v.Add("Type", "Type is required.")
	} else if !c.Type.Valid() {
		v.Add("Type", "Type must be Expense or Income.")
	}
	return v.OrNil()
}

func (t Transaction) Validate() error {
	v := &ValidationErrors{}
	if t.CategoryID <= 0 {
		v.Add("CategoryId", "Please select a category.")
	}
	switch {
	case t.Amount.Cents == 0:
		v.Add("Amount", "Amount is required and cannot be zero.")
	case t.Amount.Cents > MaxTransactionCents || t.Amount.Cents < -MaxTransactionCents:
		v.Add("Amount", "Amount must be between -10000000000 and 10000000000.")
	}
	if err := t.Date.Validate(); err != nil {
		v.Add("Date", "Date is required.")
	}
	if utf8.RuneCountInString(t.Note) > MaxNoteLen {
		v.Add("Note", "Note must be at most 250 characters.")
	}
	return v.OrNil()
}

func (e Expense) Validate() error {
	v := &ValidationErrors{}
	if strings.TrimSpace(e.Title) == "" {
		v.Add("Title", "Title is required.")
	}
	if e.Amount.Cents < MinExpenseCents || e.Amount.Cents > MaxExpenseCents {
		v.Add("Amount", "Amount must be between 0.01 and 1000000.")
	}
	if err := e.Date.Validate(); err != nil {
		v.Add("Date", "Date is required.")
	}
	return v.OrNil()
}
