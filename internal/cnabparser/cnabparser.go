// Package cnabparser extracts transactions from positional-field bank export
// lines (CNAB-style fixed-width records). The layout is best-effort for the
// exporters described by its profiles, not a general CNAB implementation.
package cnabparser

import (
	"regexp"
	"strconv"
	"strings"

	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
	"concilia/extrato-match/internal/parser"
	"concilia/extrato-match/internal/parsererror"
	"concilia/extrato-match/internal/textutils"
)

const sourceTag = "cnab"

// CNABParser implements parser.Parser for fixed-width ledger exports.
type CNABParser struct {
	parser.BaseParser
	profile Profile
	marker  *regexp.Regexp
}

// New creates a CNABParser for the given layout profile.
func New(logger logging.Logger, profile Profile) *CNABParser {
	return &CNABParser{
		BaseParser: parser.NewBaseParser(logger),
		profile:    profile,
		marker:     profile.Detail.markerPattern(),
	}
}

// NewWithDefaultProfile creates a CNABParser using the built-in default layout.
func NewWithDefaultProfile(logger logging.Logger) *CNABParser {
	return New(logger, DefaultProfile())
}

// Name implements parser.Parser.
func (p *CNABParser) Name() string { return sourceTag }

// Detect reports whether the statement looks like a fixed-width ledger export:
// textual content whose lines carry the profile's detail marker, or a .ret
// file, which is always this format.
func (p *CNABParser) Detect(stmt *parser.Statement) bool {
	if !stmt.IsText() {
		return false
	}
	if stmt.Ext() == "ret" {
		return true
	}
	return p.marker.MatchString(stmt.Text())
}

// Parse extracts every ledger detail row into a BankReconciliation.
// Individual malformed lines are skipped and logged, never fatal; binary
// content is a hard format mismatch.
func (p *CNABParser) Parse(stmt *parser.Statement) (*models.BankReconciliation, error) {
	if !stmt.IsText() {
		return nil, &parsererror.InvalidFormatError{
			FileName:       stmt.FileName,
			ExpectedFormat: "CNAB fixed-width text",
			Msg:            "content is binary",
		}
	}

	log := p.Logger().WithFields(
		logging.Field{Key: logging.FieldParser, Value: sourceTag},
		logging.Field{Key: logging.FieldFile, Value: stmt.FileName},
		logging.Field{Key: logging.FieldProfile, Value: p.profile.Name},
	)
	log.Info("Parsing fixed-width ledger statement")

	batch := models.NewBankReconciliation(stmt.FileName, stmt.UploadedBy, p.profile.BankLabel)

	headerFound := false
	for index, line := range textutils.NonBlankLines(stmt.Text()) {
		if !headerFound && p.extractHeader(line, batch) {
			headerFound = true
			continue
		}

		if !strings.HasPrefix(line, p.profile.Detail.Prefix) {
			continue
		}

		tx, ok := p.parseDetailLine(line, index, log)
		if !ok {
			continue
		}
		batch.Transactions = append(batch.Transactions, tx)
	}

	batch.Finalize()
	log.Info("Parsed fixed-width ledger statement",
		logging.Field{Key: logging.FieldCount, Value: batch.TotalTransactions})
	return batch, nil
}

// extractHeader recovers bank code, account number and company name from the
// one-time header record. Only the first successful match is kept.
func (p *CNABParser) extractHeader(line string, batch *models.BankReconciliation) bool {
	h := p.profile.Header
	if h.RecordTypePos >= len(line) {
		return false
	}
	if string(line[h.RecordTypePos]) != h.RecordTypeValue {
		return false
	}

	account := textutils.NormalizeWhitespace(textutils.SafeSlice(line, h.AccountStart, h.AccountEnd))
	if account != "" {
		batch.AccountNumber = account
	}
	company := textutils.NormalizeWhitespace(textutils.SafeSlice(line, h.CompanyStart, h.CompanyEnd))
	bankCode := textutils.NormalizeWhitespace(textutils.SafeSlice(line, h.BankCodeStart, h.BankCodeEnd))
	if company != "" {
		batch.BankName = p.profile.BankLabel + " - " + company
	} else if bankCode != "" {
		batch.BankName = p.profile.BankLabel
	}
	return true
}

// parseDetailLine extracts one transaction from a ledger detail row.
// Lines without the marker block or with malformed fields report false.
func (p *CNABParser) parseDetailLine(line string, index int, log logging.Logger) (models.BankTransaction, bool) {
	d := p.profile.Detail

	loc := p.marker.FindStringSubmatchIndex(line)
	if loc == nil {
		log.Debug("Skipping line without ledger marker",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}

	// Submatches: 1 movement date, 2 transaction date (DDMMYYYY),
	// 3 amount in minor units, 4 type flag.
	txDate := line[loc[4]:loc[5]]
	amountDigits := line[loc[6]:loc[7]]
	typeFlag := line[loc[8]:loc[9]]

	sequence := index
	if seqStr := textutils.NormalizeWhitespace(textutils.SafeSlice(line, d.SequenceStart, d.SequenceEnd)); seqStr != "" {
		if n, err := strconv.Atoi(seqStr); err == nil {
			sequence = n
		}
	}

	cents, err := strconv.ParseInt(amountDigits, 10, 64)
	if err != nil {
		log.WithError(err).Warn("Skipping line with non-numeric amount",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}

	descStart := loc[1] + d.BankCodeDigits
	description := textutils.SafeSlice(line, descStart, descStart+d.DescriptionLength)
	reference := textutils.SafeSlice(line, d.ReferenceStart, d.ReferenceEnd)

	builder := models.NewTransactionBuilder(sourceTag, sequence).
		WithDate(txDate).
		WithAmount(amountutils.FromCentavos(cents)).
		WithDescription(description).
		WithReference(reference)
	if typeFlag == "C" {
		builder = builder.AsCredit()
	} else {
		builder = builder.AsDebit()
	}

	tx, err := builder.Build()
	if err != nil {
		log.WithError(err).Warn("Skipping malformed ledger detail line",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}
	return tx, true
}
