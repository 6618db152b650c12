package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionID_Deterministic(t *testing.T) {
	a := TransactionID("cnab", "2026-01-02", 1, "SALARY")
	b := TransactionID("cnab", "2026-01-02", 1, "SALARY")
	assert.Equal(t, a, b)
	assert.Len(t, a, 12)

	// Different sequence keeps ids unique within one run.
	c := TransactionID("cnab", "2026-01-02", 2, "SALARY")
	assert.NotEqual(t, a, c)

	// Different source tag separates parser families.
	d := TransactionID("pdf", "2026-01-02", 1, "SALARY")
	assert.NotEqual(t, a, d)
}

func TestSignedAmount(t *testing.T) {
	credit := BankTransaction{Type: TransactionTypeCredit, Amount: decimal.RequireFromString("50")}
	debit := BankTransaction{Type: TransactionTypeDebit, Amount: decimal.RequireFromString("20")}

	assert.Equal(t, "50", credit.SignedAmount().String())
	assert.Equal(t, "-20", debit.SignedAmount().String())
}

func TestFinalize(t *testing.T) {
	r := NewBankReconciliation("extrato.txt", "user-1", "banco")
	r.Transactions = []BankTransaction{
		{Date: "2026-01-10", Type: TransactionTypeCredit, Amount: decimal.RequireFromString("100")},
		{Date: "2026-01-02", Type: TransactionTypeDebit, Amount: decimal.RequireFromString("30")},
		{Date: "2026-02-01", Type: TransactionTypeCredit, Amount: decimal.RequireFromString("5.50")},
	}
	r.Finalize()

	assert.Equal(t, "2026-01-02", r.StartDate)
	assert.Equal(t, "2026-02-01", r.EndDate)
	assert.Equal(t, 3, r.TotalTransactions)
	assert.Equal(t, "75.50", r.FinalBalance.StringFixed(2))
	assert.Equal(t, StatusPending, r.Status)

	// Balance identity: finalBalance == credits - debits.
	assert.True(t, r.FinalBalance.Equal(r.CreditTotal().Sub(r.DebitTotal())))
}

func TestFinalize_EmptyBatch(t *testing.T) {
	r := NewBankReconciliation("extrato.txt", "user-1", "banco")
	r.Finalize()

	assert.Empty(t, r.StartDate)
	assert.Empty(t, r.EndDate)
	assert.Equal(t, 0, r.TotalTransactions)
	assert.True(t, r.FinalBalance.IsZero())
	assert.Equal(t, StatusPending, r.Status)
}

func TestStatusProgression(t *testing.T) {
	r := NewBankReconciliation("extrato.txt", "user-1", "banco")
	r.Transactions = []BankTransaction{
		{Date: "2026-01-01", Type: TransactionTypeDebit, Amount: decimal.NewFromInt(1)},
		{Date: "2026-01-02", Type: TransactionTypeDebit, Amount: decimal.NewFromInt(2)},
	}

	r.ReconciledTransactions = 0
	r.Finalize()
	assert.Equal(t, StatusPending, r.Status)

	r.ReconciledTransactions = 1
	r.Finalize()
	assert.Equal(t, StatusPartial, r.Status)

	r.ReconciledTransactions = 2
	r.Finalize()
	assert.Equal(t, StatusComplete, r.Status)
}

func TestPaidRecord_EffectiveFields(t *testing.T) {
	paid := decimal.RequireFromString("99.90")
	rec := PaidRecord{
		ID:       "bill-1",
		Amount:   decimal.RequireFromString("100.00"),
		DueDate:  "2026-02-10",
		PaidDate: "2026-02-12",
	}

	assert.True(t, rec.EffectiveAmount().Equal(rec.Amount))
	rec.PaidAmount = &paid
	assert.True(t, rec.EffectiveAmount().Equal(paid))

	assert.Equal(t, "2026-02-12", rec.EffectiveDate().Format("2006-01-02"))
	rec.PaidDate = ""
	assert.Equal(t, "2026-02-10", rec.EffectiveDate().Format("2006-01-02"))

	rec.DueDate = ""
	assert.True(t, rec.EffectiveDate().IsZero())
}

func TestTransactionBuilder(t *testing.T) {
	tx, err := NewTransactionBuilder("cnab", 3).
		WithDate("02/01/2026").
		AsCredit().
		WithAmountFromString("50,00").
		WithDescription("  SALARY   PAYMENT ").
		WithReference("000003").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "2026-01-02", tx.Date)
	assert.Equal(t, TransactionTypeCredit, tx.Type)
	assert.Equal(t, "50.00", tx.Amount.StringFixed(2))
	assert.Equal(t, "SALARY PAYMENT", tx.Description)
	assert.Equal(t, "000003", tx.Reference)
	assert.NotEmpty(t, tx.ID)
}

func TestTransactionBuilder_Errors(t *testing.T) {
	_, err := NewTransactionBuilder("cnab", 0).WithDate("").Build()
	assert.Error(t, err)

	_, err = NewTransactionBuilder("cnab", 0).
		WithDate("02/01/2026").
		WithAmount(decimal.RequireFromString("-5")).
		Build()
	assert.Error(t, err)

	_, err = NewTransactionBuilder("cnab", 0).Build()
	assert.Error(t, err, "date is required")
}

func TestTransactionBuilder_EmptyDescriptionPlaceholder(t *testing.T) {
	tx, err := NewTransactionBuilder("cnab", 0).
		WithDate("2026-01-02").
		WithAmount(decimal.NewFromInt(10)).
		WithDescription("   ").
		Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultDescription, tx.Description)
}
