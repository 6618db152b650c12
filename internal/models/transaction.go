// Package models defines the shared data model produced by the statement
// parsers and consumed by the matcher.
package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a bank transaction. Amounts are always
// positive magnitudes; direction is carried exclusively here.
type TransactionType string

const (
	// TransactionTypeCredit marks money entering the account.
	TransactionTypeCredit TransactionType = "CREDIT"
	// TransactionTypeDebit marks money leaving the account.
	TransactionTypeDebit TransactionType = "DEBIT"
)

// BankTransaction is one transaction extracted from a bank statement export.
// It is immutable once produced by a parser; downstream consumers annotate
// match state in their own records.
type BankTransaction struct {
	ID          string          `csv:"id" json:"id"`
	Date        string          `csv:"date" json:"date"` // ISO YYYY-MM-DD
	Type        TransactionType `csv:"type" json:"type"`
	Amount      decimal.Decimal `csv:"amount" json:"amount"`
	Description string          `csv:"description" json:"description"`
	Reference   string          `csv:"reference" json:"reference"`
	Reconciled  bool            `csv:"reconciled" json:"reconciled"`
}

// IsCredit reports whether the transaction is a credit.
func (t BankTransaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// IsDebit reports whether the transaction is a debit.
func (t BankTransaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

// SignedAmount returns the amount with direction applied: positive for
// credits, negative for debits. Used for balance computation only; the
// Amount field itself never carries a sign.
func (t BankTransaction) SignedAmount() decimal.Decimal {
	if t.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}
