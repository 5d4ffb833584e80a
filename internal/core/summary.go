package core

// Summary is the home page view of a user's money.
type Summary struct {
	Income       Money
	Expense      Money
	Transactions []Transaction
	Activity     []ActivityEntry
}

// Balance is income minus expense.
func (s Summary) Balance() Money {
	return Money{Cents: s.Income.Cents - s.Expense.Cents}
}

// Summarize totals transactions by the type of their category. Transactions
// without a joined category are listed but not counted.
func Summarize(txs []Transaction) Summary {
	s := Summary{Transactions: txs}
	for _, t := range txs {
		if t.Category == nil {
			continue
		}
		switch t.Category.Type {
		case CategoryIncome:
			s.Income.Cents += t.Amount.Cents
		case CategoryExpense:
			s.Expense.Cents += t.Amount.Cents
		}
	}
	return s
}
