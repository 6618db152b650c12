package models

import (
	"time"

	"github.com/shopspring/decimal"

	"concilia/extrato-match/internal/dateutils"
)

// PaidRecord is an externally-owned payable entry the matcher compares debits
// against. The matcher never mutates these; the surrounding application owns
// their persistence.
type PaidRecord struct {
	ID          string           `csv:"id"`
	Amount      decimal.Decimal  `csv:"amount"`
	PaidAmount  *decimal.Decimal `csv:"paid_amount,omitempty"`
	DueDate     string           `csv:"due_date"`            // ISO YYYY-MM-DD
	PaidDate    string           `csv:"paid_date,omitempty"` // ISO YYYY-MM-DD
	Description string           `csv:"description"`
}

// EffectiveAmount returns the paid amount when known, falling back to the
// billed amount.
func (p PaidRecord) EffectiveAmount() decimal.Decimal {
	if p.PaidAmount != nil {
		return *p.PaidAmount
	}
	return p.Amount
}

// EffectiveDate returns the paid date when known, falling back to the due
// date. The zero time is returned when neither parses.
func (p PaidRecord) EffectiveDate() time.Time {
	for _, candidate := range []string{p.PaidDate, p.DueDate} {
		if candidate == "" {
			continue
		}
		if t, _, err := dateutils.ParseDate(candidate); err == nil {
			return t
		}
	}
	return time.Time{}
}

// MatchCandidate is one scored pairing between a statement debit and a paid
// record. Produced by the matcher, never persisted.
type MatchCandidate struct {
	BillID string `json:"billId"`
	Score  int    `json:"score"`
}
