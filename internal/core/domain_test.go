package core

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("unexpected date %s", d)
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if (Date{}).String() != "" {
		t.Fatalf("zero date should format empty")
	}
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name   string
		cat    Category
		fields []string
	}{
		{"valid", Category{Title: "Food", Icon: "🍔", Type: CategoryExpense}, nil},
		{"empty title", Category{Title: "  ", Type: CategoryExpense}, []string{"Title"}},
		{"long title", Category{Title: strings.Repeat("a", 51), Type: CategoryIncome}, []string{"Title"}},
		{"missing type", Category{Title: "Salary"}, []string{"Type"}},
		{"unknown type", Category{Title: "Salary", Type: "Transfer"}, []string{"Type"}},
		{"everything wrong", Category{Icon: strings.Repeat("x", 51)}, []string{"Title", "Icon", "Type"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			v, ok := AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			for _, f := range tt.fields {
				if v.For(f) == "" {
					t.Errorf("expected message for %s in %v", f, v)
				}
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := (Category{Icon: "🍔", Title: "Food"}).Label(); got != "🍔 Food" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := (Category{Title: "Food"}).Label(); got != "Food" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{CategoryID: 1, Amount: Money{Cents: -4200}, Date: NewDate(2025, 1, 1), Note: "lunch"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, cents := range []int64{MaxTransactionCents, -MaxTransactionCents} {
		edge := Transaction{CategoryID: 1, Amount: Money{Cents: cents}, Date: NewDate(2025, 1, 1)}
		if err := edge.Validate(); err != nil {
			t.Fatalf("amount %d: expected ok, got %v", cents, err)
		}
	}

	bads := []Transaction{
		{Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{CategoryID: 1, Date: NewDate(2025, 1, 1)},
		{CategoryID: 1, Amount: Money{Cents: 1}},
		{CategoryID: 1, Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1), Note: strings.Repeat("n", 251)},
		{CategoryID: 1, Amount: Money{Cents: MaxTransactionCents + 1}, Date: NewDate(2025, 1, 1)},
		{CategoryID: 1, Amount: Money{Cents: -MaxTransactionCents - 1}, Date: NewDate(2025, 1, 1)},
		{CategoryID: 1, Amount: Money{Cents: math.MaxInt64}, Date: NewDate(2025, 1, 1)},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Title: "ok", Amount: Money{Cents: 100}, Date: NewDate(2025, 1, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Title: "", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{Title: "a", Amount: Money{Cents: 0}, Date: NewDate(2025, 1, 1)},
		{Title: "a", Amount: Money{Cents: MaxExpenseCents + 1}, Date: NewDate(2025, 1, 1)},
		{Title: "a", Amount: Money{Cents: 1}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	food := &Category{ID: 1, Type: CategoryExpense}
	salary := &Category{ID: 2, Type: CategoryIncome}
	s := Summarize([]Transaction{
		{Amount: Money{Cents: 1200}, Category: food},
		{Amount: Money{Cents: 300}, Category: food},
		{Amount: Money{Cents: 100000}, Category: salary},
		{Amount: Money{Cents: 999}},
	})
	if s.Expense.Cents != 1500 || s.Income.Cents != 100000 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.Balance().Cents != 98500 {
		t.Fatalf("unexpected balance %d", s.Balance().Cents)
	}
	if len(s.Transactions) != 4 {
		t.Fatalf("expected all transactions listed")
	}
}

func TestValidationErrors(t *testing.T) {
	var v ValidationErrors
	if v.OrNil() != nil {
		t.Fatalf("empty errors should be nil")
	}
	v.Add("Title", "required")
	other := &ValidationErrors{}
	other.Add("Type", "bad")
	v.Merge(other)
	v.Merge(nil)
	if len(v.Fields) != 2 || v.For("Type") != "bad" || v.For("Missing") != "" {
		t.Fatalf("unexpected fields %+v", v.Fields)
	}
	if !strings.Contains(v.Error(), "Title: required") {
		t.Fatalf("unexpected message %q", v.Error())
	}
}
