package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/dateutils"
	"concilia/extrato-match/internal/textutils"
)

// DefaultDescription is used when a statement line carries no usable
// description text.
const DefaultDescription = "LANCAMENTO SEM DESCRICAO"

// TransactionBuilder provides a fluent API for constructing bank transactions.
// The first error sticks and is returned by Build.
type TransactionBuilder struct {
	tx        BankTransaction
	sourceTag string
	sequence  int
	err       error
}

// NewTransactionBuilder creates a TransactionBuilder with default values.
func NewTransactionBuilder(sourceTag string, sequence int) *TransactionBuilder {
	return &TransactionBuilder{
		tx: BankTransaction{
			Type:        TransactionTypeDebit,
			Amount:      decimal.Zero,
			Description: DefaultDescription,
		},
		sourceTag: sourceTag,
		sequence:  sequence,
	}
}

// WithDate sets the transaction date from any of the common statement formats,
// normalizing to ISO YYYY-MM-DD.
func (b *TransactionBuilder) WithDate(dateStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if dateStr == "" {
		b.err = errors.New("date cannot be empty")
		return b
	}
	iso, err := dateutils.ToISODateString(dateStr)
	if err != nil {
		b.err = err
		return b
	}
	b.tx.Date = iso
	return b
}

// WithType sets the transaction direction.
func (b *TransactionBuilder) WithType(t TransactionType) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = t
	return b
}

// AsCredit marks the transaction as money entering the account.
func (b *TransactionBuilder) AsCredit() *TransactionBuilder {
	return b.WithType(TransactionTypeCredit)
}

// AsDebit marks the transaction as money leaving the account.
func (b *TransactionBuilder) AsDebit() *TransactionBuilder {
	return b.WithType(TransactionTypeDebit)
}

// WithAmount sets the transaction amount. Negative magnitudes are rejected;
// direction never travels in the amount.
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.err = fmt.Errorf("amount must be a positive magnitude, got %s", amount)
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithAmountFromString parses and sets the amount from a statement string.
func (b *TransactionBuilder) WithAmountFromString(amountStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	amount, err := amountutils.ParseAmount(amountStr)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithAmount(amount)
}

// WithDescription sets the description, collapsing whitespace. Empty text
// falls back to the default placeholder.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	normalized := textutils.NormalizeWhitespace(description)
	if normalized == "" {
		normalized = DefaultDescription
	}
	b.tx.Description = normalized
	return b
}

// WithReference sets the traceability reference.
func (b *TransactionBuilder) WithReference(reference string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Reference = textutils.NormalizeWhitespace(reference)
	return b
}

// Build validates and returns the transaction, deriving its deterministic id.
func (b *TransactionBuilder) Build() (BankTransaction, error) {
	if b.err != nil {
		return BankTransaction{}, b.err
	}
	if b.tx.Date == "" {
		return BankTransaction{}, errors.New("transaction date is required")
	}
	b.tx.ID = TransactionID(b.sourceTag, b.tx.Date, b.sequence, b.tx.Description)
	return b.tx, nil
}
