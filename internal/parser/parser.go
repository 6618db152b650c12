package parser

import (
	"concilia/extrato-match/internal/models"
)

// Parser is the strategy interface implemented by every statement format.
// Detect is a cheap structural check used by the orchestrator to route input;
// Parse transforms the statement into the standardized reconciliation batch.
// Implementations return *parsererror.InvalidFormatError when the content is
// fundamentally not theirs, and recover per-line failures by skipping the
// line.
type Parser interface {
	// Name identifies the parser in logs and detection results.
	Name() string

	// Detect reports whether this parser recognizes the statement's structure.
	// It must be pure: no side effects, no I/O, deterministic for same input.
	Detect(stmt *Statement) bool

	// Parse extracts the transactions and returns the assembled batch.
	Parse(stmt *Statement) (*models.BankReconciliation, error)
}
