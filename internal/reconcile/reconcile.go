// Package reconcile routes raw statement content to the parser that can read
// it. Parsers are strategies behind parser.Parser; the service walks an
// ordered registry asking each one to recognize the input, with a last-resort
// fallback chain for content nothing claims.
package reconcile

import (
	"concilia/extrato-match/internal/cnabparser"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
	"concilia/extrato-match/internal/parser"
	"concilia/extrato-match/internal/pdfparser"
	"concilia/extrato-match/internal/textparser"
)

// Service owns the parser registry and dispatches statements to it.
type Service struct {
	log  logging.Logger
	pdf  parser.Parser
	text parser.Parser
	cnab parser.Parser
}

// New creates a Service with the production parsers: the built-in fixed-width
// layout profile, the delimited text parser, and the PDF parser with the
// default heuristics.
func New(logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return NewWithParsers(logger,
		pdfparser.New(logger, nil),
		textparser.New(logger),
		cnabparser.NewWithDefaultProfile(logger),
	)
}

// NewWithParsers creates a Service over explicit parser implementations.
// Used by tests and by callers carrying non-default layout profiles.
func NewWithParsers(logger logging.Logger, pdf, text, cnab parser.Parser) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{log: logger, pdf: pdf, text: text, cnab: cnab}
}

// registry returns the parsers in recognition priority order. PDF first: the
// magic-byte check is the cheapest and most reliable. Delimited before
// fixed-width so a pipe-separated .txt is never swallowed by the ledger
// marker scan.
func (s *Service) registry() []parser.Parser {
	return []parser.Parser{s.pdf, s.text, s.cnab}
}

// Reconcile parses raw content into a BankReconciliation. The first parser
// recognizing the input wins. Content nothing recognizes runs through the
// fallback chain: binary is handed to the PDF parser; text is tried as a
// fixed-width ledger first and as delimited text if that fails. An error here
// means the content was structurally unreadable by every applicable parser.
func (s *Service) Reconcile(data []byte, fileName, uploadedBy string) (*models.BankReconciliation, error) {
	return s.ReconcileStatement(parser.NewStatement(data, fileName, uploadedBy))
}

// ReconcileStatement is Reconcile over an already-built statement.
func (s *Service) ReconcileStatement(stmt *parser.Statement) (*models.BankReconciliation, error) {
	log := s.log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: stmt.FileName},
	)

	for _, p := range s.registry() {
		if !p.Detect(stmt) {
			continue
		}
		log.Info("Statement format recognized",
			logging.Field{Key: logging.FieldParser, Value: p.Name()})
		return p.Parse(stmt)
	}

	if !stmt.IsText() {
		log.Info("Unrecognized binary content, attempting PDF decode")
		return s.pdf.Parse(stmt)
	}

	log.Info("Unrecognized text content, attempting fixed-width parse")
	batch, err := s.cnab.Parse(stmt)
	if err != nil {
		log.WithError(err).Warn("Fixed-width parse failed, falling back to delimited text")
		return s.text.Parse(stmt)
	}
	return batch, nil
}
