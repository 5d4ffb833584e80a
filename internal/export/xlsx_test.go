package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
)

func TestWriteTransactions(t *testing.T) {
	food := &core.Category{Title: "Food", Icon: "🍔", Type: core.CategoryExpense}
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 1250}, Note: "lunch", Date: core.NewDate(2024, 3, 2), Category: food},
		{Amount: core.Money{Cents: -75}, Date: core.NewDate(2024, 3, 1), Category: food},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Category", "Type", "Amount", "Note"}, rows[0])
	assert.Equal(t, []string{"2024-03-02", "🍔 Food", "Expense", "12.5", "lunch"}, rows[1])
	assert.Equal(t, "2024-03-01", rows[2][0])
	assert.Equal(t, "-0.75", rows[2][3])
}

func TestWriteTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
