package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationStatus tracks how much of a batch has been externally confirmed.
type ReconciliationStatus string

const (
	StatusPending  ReconciliationStatus = "pending"
	StatusPartial  ReconciliationStatus = "partial"
	StatusComplete ReconciliationStatus = "complete"
)

// BankReconciliation is the batch container produced by one parse run.
// A batch is created fresh on each upload and is immutable once produced.
type BankReconciliation struct {
	ID                     string               `json:"id"`
	UploadedAt             time.Time            `json:"uploadedAt"`
	UploadedBy             string               `json:"uploadedBy"`
	FileName               string               `json:"fileName"`
	BankName               string               `json:"bankName"`
	AccountNumber          string               `json:"accountNumber"`
	StartDate              string               `json:"startDate"` // "" when no transactions
	EndDate                string               `json:"endDate"`   // "" when no transactions
	FinalBalance           decimal.Decimal      `json:"finalBalance"`
	TotalTransactions      int                  `json:"totalTransactions"`
	ReconciledTransactions int                  `json:"reconciledTransactions"`
	Transactions           []BankTransaction    `json:"transactions"`
	Status                 ReconciliationStatus `json:"status"`
}

// NewBankReconciliation creates an empty batch with provenance filled in.
// AccountNumber defaults to "unknown" until a parser recovers it.
func NewBankReconciliation(fileName, uploadedBy, bankName string) *BankReconciliation {
	return &BankReconciliation{
		ID:            uuid.NewString(),
		UploadedAt:    time.Now().UTC(),
		UploadedBy:    uploadedBy,
		FileName:      fileName,
		BankName:      bankName,
		AccountNumber: "unknown",
		FinalBalance:  decimal.Zero,
		Transactions:  []BankTransaction{},
		Status:        StatusPending,
	}
}

// Finalize computes the derived batch fields from the transaction list:
// date bounds, final balance (sum credits minus sum debits), totals and
// status. Parsers call this once after the last transaction is appended.
func (r *BankReconciliation) Finalize() {
	balance := decimal.Zero
	start, end := "", ""
	for _, tx := range r.Transactions {
		balance = balance.Add(tx.SignedAmount())
		if tx.Date == "" {
			continue
		}
		if start == "" || tx.Date < start {
			start = tx.Date
		}
		if end == "" || tx.Date > end {
			end = tx.Date
		}
	}
	r.FinalBalance = balance
	r.StartDate = start
	r.EndDate = end
	r.TotalTransactions = len(r.Transactions)
	r.Status = r.computeStatus()
}

func (r *BankReconciliation) computeStatus() ReconciliationStatus {
	switch {
	case r.TotalTransactions == 0 || r.ReconciledTransactions == 0:
		return StatusPending
	case r.ReconciledTransactions < r.TotalTransactions:
		return StatusPartial
	default:
		return StatusComplete
	}
}

// CreditTotal returns the sum of all credit amounts in the batch.
func (r *BankReconciliation) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range r.Transactions {
		if tx.IsCredit() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// DebitTotal returns the sum of all debit amounts in the batch.
func (r *BankReconciliation) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range r.Transactions {
		if tx.IsDebit() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Debits returns the debit transactions in batch order.
func (r *BankReconciliation) Debits() []BankTransaction {
	var debits []BankTransaction
	for _, tx := range r.Transactions {
		if tx.IsDebit() {
			debits = append(debits, tx)
		}
	}
	return debits
}
