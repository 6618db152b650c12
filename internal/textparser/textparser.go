// Package textparser extracts transactions from simple pipe or tab separated
// statement exports: one transaction per line, at least four fields
// (date, description, type flag, amount).
package textparser

import (
	"fmt"

	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/detect"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
	"concilia/extrato-match/internal/parser"
	"concilia/extrato-match/internal/parsererror"
	"concilia/extrato-match/internal/textutils"
)

const (
	sourceTag = "text"

	// BankLabel marks batches coming from the delimited text variant.
	BankLabel = "Extrato texto delimitado"
)

// TextParser implements parser.Parser for delimited text statements.
type TextParser struct {
	parser.BaseParser
}

// New creates a TextParser.
func New(logger logging.Logger) *TextParser {
	return &TextParser{BaseParser: parser.NewBaseParser(logger)}
}

// Name implements parser.Parser.
func (p *TextParser) Name() string { return sourceTag }

// Detect reports whether the statement is textual and its data lines split
// into at least four fields on '|' or tab.
func (p *TextParser) Detect(stmt *parser.Statement) bool {
	return stmt.IsText() && detect.LooksDelimited(stmt.Text())
}

// Parse extracts one transaction per valid delimited line. Header rows,
// separator runs and malformed lines are skipped; binary content is a hard
// format mismatch.
func (p *TextParser) Parse(stmt *parser.Statement) (*models.BankReconciliation, error) {
	if !stmt.IsText() {
		return nil, &parsererror.InvalidFormatError{
			FileName:       stmt.FileName,
			ExpectedFormat: "delimited text",
			Msg:            "content is binary",
		}
	}

	log := p.Logger().WithFields(
		logging.Field{Key: logging.FieldParser, Value: sourceTag},
		logging.Field{Key: logging.FieldFile, Value: stmt.FileName},
	)
	log.Info("Parsing delimited text statement")

	batch := models.NewBankReconciliation(stmt.FileName, stmt.UploadedBy, BankLabel)

	for index, line := range textutils.NonBlankLines(stmt.Text()) {
		if detect.IsHeaderOrSeparator(line) {
			continue
		}

		tx, ok := p.parseLine(line, index, log)
		if !ok {
			continue
		}
		batch.Transactions = append(batch.Transactions, tx)
	}

	batch.Finalize()
	log.Info("Parsed delimited text statement",
		logging.Field{Key: logging.FieldCount, Value: batch.TotalTransactions})
	return batch, nil
}

// parseLine extracts one transaction from a delimited line: date,
// description, type flag and amount, extra trailing fields ignored.
func (p *TextParser) parseLine(line string, index int, log logging.Logger) (models.BankTransaction, bool) {
	fields := detect.SplitDelimited(line)
	if len(fields) < 4 {
		log.Debug("Skipping line with too few fields",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}

	dateStr := textutils.NormalizeWhitespace(fields[0])
	description := fields[1]
	typeFlag := textutils.NormalizeWhitespace(fields[2])
	amountStr := textutils.NormalizeWhitespace(fields[3])

	amount, err := amountutils.ParseAmount(amountStr)
	if err != nil || !amountutils.IsPositive(amount) {
		log.Debug("Skipping line without a positive amount",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}

	builder := models.NewTransactionBuilder(sourceTag, index).
		WithDate(dateStr).
		WithAmount(amount).
		WithDescription(description).
		WithReference(fmt.Sprintf("line-%d", index+1))
	if typeFlag == "C" {
		builder = builder.AsCredit()
	} else {
		builder = builder.AsDebit()
	}

	tx, err := builder.Build()
	if err != nil {
		log.WithError(err).Debug("Skipping malformed delimited line",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}
	return tx, true
}
