// Package pdfparser extracts transactions from PDF bank statements. The
// document is decoded into positioned text runs, the visual lines are
// reconstructed from the run coordinates, and transactions are then pulled
// out of the lines by date/amount/keyword heuristics. The whole pass is
// best-effort: a line the heuristics cannot read is skipped, never fatal.
package pdfparser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/dateutils"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
	"concilia/extrato-match/internal/parser"
	"concilia/extrato-match/internal/parsererror"
	"concilia/extrato-match/internal/textutils"
)

const (
	sourceTag = "pdf"

	// BankLabel marks batches coming from PDF statements.
	BankLabel = "Extrato PDF"
)

var (
	fullDateRe  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	dateTokenRe = regexp.MustCompile(`\d{2}/\d{2}(?:/\d{4})?`)
	// Amount tokens: dot-thousands with comma decimals, plain comma
	// decimals, or plain dot decimals; optional leading minus.
	amountTokenRe = regexp.MustCompile(`-?\d{1,3}(?:\.\d{3})+,\d{2}|-?\d+,\d{2}|-?\d+\.\d{2}`)
	accountRe     = regexp.MustCompile(`(?i)conta(?:\s+corrente)?[:\s]+([\d./-]+)`)
)

// structuralKeywords blacklists header/footer lines: statement title, period
// and balance labels, totals, agency/account labels and column headers.
var structuralKeywords = []string{
	"EXTRATO", "PERIODO", "PERÍODO", "SALDO", "TOTAL",
	"AGENCIA", "AGÊNCIA", "CONTA CORRENTE", "HISTORICO", "HISTÓRICO", "DOCUMENTO",
}

var debitKeywords = []string{
	"DEBITO", "DÉBITO", "PAGAMENTO", "PGTO", "TARIFA", "TAXA", "SAQUE",
	"PIX ENVIADO", "ENVIADO", "TRANSFERENCIA", "TRANSFERÊNCIA", "BOLETO",
}

var creditKeywords = []string{
	"CREDITO", "CRÉDITO", "RECEBIDO", "RECEBIDA", "RECEBIMENTO",
	"DEPOSITO", "DEPÓSITO", "PIX RECEBIDO",
}

// directionMarkers are stray column tokens removed from descriptions.
var directionMarkers = map[string]bool{
	"C": true, "D": true,
	"CREDITO": true, "CRÉDITO": true, "DEBITO": true, "DÉBITO": true,
	"CREDIT": true, "DEBIT": true,
}

// Options tune the layout and extraction heuristics.
type Options struct {
	// LineTolerance is the vertical grouping tolerance in PDF points.
	LineTolerance float64
	// TrailingBalanceColumn indicates statements print a running balance
	// as the last column; when set, the second-to-last amount token on a
	// line is taken as the transaction amount.
	TrailingBalanceColumn bool
}

// DefaultOptions returns the options matching the common statement layout.
func DefaultOptions() Options {
	return Options{
		LineTolerance:         DefaultLineTolerance,
		TrailingBalanceColumn: true,
	}
}

// PDFParser implements parser.Parser for PDF statements.
type PDFParser struct {
	parser.BaseParser
	extractor RunExtractor
	opts      Options
}

// New creates a PDFParser. A nil extractor falls back to the production
// decoder.
func New(logger logging.Logger, extractor RunExtractor) *PDFParser {
	return NewWithOptions(logger, extractor, DefaultOptions())
}

// NewWithOptions creates a PDFParser with explicit heuristic options.
func NewWithOptions(logger logging.Logger, extractor RunExtractor, opts Options) *PDFParser {
	if extractor == nil {
		extractor = NewPDFRunExtractor()
	}
	return &PDFParser{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
		opts:       opts,
	}
}

// Name implements parser.Parser.
func (p *PDFParser) Name() string { return sourceTag }

// Detect recognizes PDF input by extension or by the document magic bytes.
func (p *PDFParser) Detect(stmt *parser.Statement) bool {
	return stmt.Ext() == "pdf" || bytes.HasPrefix(stmt.Data, []byte("%PDF"))
}

// Parse decodes the document, reconstructs its lines and extracts
// transactions from them.
func (p *PDFParser) Parse(stmt *parser.Statement) (*models.BankReconciliation, error) {
	log := p.Logger().WithFields(
		logging.Field{Key: logging.FieldParser, Value: sourceTag},
		logging.Field{Key: logging.FieldFile, Value: stmt.FileName},
	)
	log.Info("Parsing PDF statement")

	pages, err := p.extractor.ExtractRuns(stmt.Data)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FileName:       stmt.FileName,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}

	lines := ReconstructLines(pages, p.opts.LineTolerance)
	batch := models.NewBankReconciliation(stmt.FileName, stmt.UploadedBy, BankLabel)

	periodStart, periodEnd := findStatementPeriod(lines)

	for index, line := range lines {
		line = textutils.NormalizeWhitespace(line)

		if textutils.ContainsAnyFold(line, structuralKeywords) {
			p.extractAccount(line, batch)
			continue
		}

		tx, ok := p.parseLine(line, index, periodStart, periodEnd, log)
		if !ok {
			continue
		}
		batch.Transactions = append(batch.Transactions, tx)
	}

	batch.Finalize()
	log.Info("Parsed PDF statement",
		logging.Field{Key: logging.FieldCount, Value: batch.TotalTransactions})
	return batch, nil
}

// findStatementPeriod scans for a line carrying two full dates: the first is
// the period start, the second the period end. Used only as a fallback to
// recover the year of day/month-only date tokens.
func findStatementPeriod(lines []string) (time.Time, time.Time) {
	for _, line := range lines {
		dates := fullDateRe.FindAllString(line, -1)
		if len(dates) < 2 {
			continue
		}
		start, _, errStart := dateutils.ParseDate(dates[0])
		end, _, errEnd := dateutils.ParseDate(dates[1])
		if errStart == nil && errEnd == nil {
			return start, end
		}
	}
	return time.Time{}, time.Time{}
}

// parseLine extracts one transaction from a reconstructed statement line.
func (p *PDFParser) parseLine(line string, index int, periodStart, periodEnd time.Time, log logging.Logger) (models.BankTransaction, bool) {
	dateToken := dateTokenRe.FindString(line)
	if dateToken == "" {
		return models.BankTransaction{}, false
	}
	dateStr, ok := p.resolveDate(dateToken, periodStart, periodEnd)
	if !ok {
		log.Debug("Skipping line with unresolvable date",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}

	amounts := amountTokenRe.FindAllString(line, -1)
	if len(amounts) == 0 {
		return models.BankTransaction{}, false
	}
	rawAmount := p.chooseAmount(amounts)

	amount, err := amountutils.ParseAmount(rawAmount)
	if err != nil {
		log.WithError(err).Debug("Skipping line with unparsable amount",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}

	description := deriveDescription(line)
	if description == "" {
		return models.BankTransaction{}, false
	}

	builder := models.NewTransactionBuilder(sourceTag, index).
		WithDate(dateStr).
		WithAmount(amount.Abs()).
		WithDescription(description).
		WithReference("line-" + strconv.Itoa(index+1)).
		WithType(direction(rawAmount, line))

	tx, err := builder.Build()
	if err != nil {
		log.WithError(err).Debug("Skipping malformed statement line",
			logging.Field{Key: logging.FieldLine, Value: index + 1})
		return models.BankTransaction{}, false
	}
	return tx, true
}

// resolveDate turns a DD/MM/YYYY or DD/MM token into an ISO date. Day/month
// tokens borrow the year recovered from the statement period line.
func (p *PDFParser) resolveDate(token string, periodStart, periodEnd time.Time) (string, bool) {
	if len(token) == len("02/01/2006") {
		iso, err := dateutils.ToISODateString(token)
		return iso, err == nil
	}
	if periodStart.IsZero() {
		return "", false
	}

	month, err := strconv.Atoi(token[3:5])
	if err != nil {
		return "", false
	}
	year := periodStart.Year()
	if !periodEnd.IsZero() && month < int(periodStart.Month()) {
		// Statement period crosses a year boundary.
		year = periodEnd.Year()
	}

	iso, err := dateutils.ToISODateString(token + "/" + strconv.Itoa(year))
	return iso, err == nil
}

// chooseAmount picks the transaction amount among the line's amount tokens.
// Statements commonly print a running balance as the last column, so with
// the trailing-balance hint enabled the second-to-last token wins.
func (p *PDFParser) chooseAmount(amounts []string) string {
	if p.opts.TrailingBalanceColumn && len(amounts) > 1 {
		return amounts[len(amounts)-2]
	}
	return amounts[len(amounts)-1]
}

// direction decides CREDIT/DEBIT: an explicit minus sign wins, then debit
// keywords, then credit keywords; the default is CREDIT.
func direction(rawAmount, line string) models.TransactionType {
	if strings.HasPrefix(rawAmount, "-") {
		return models.TransactionTypeDebit
	}
	if textutils.ContainsAnyFold(line, debitKeywords) {
		return models.TransactionTypeDebit
	}
	if textutils.ContainsAnyFold(line, creditKeywords) {
		return models.TransactionTypeCredit
	}
	return models.TransactionTypeCredit
}

// deriveDescription strips date tokens, amount tokens and stray direction
// markers from the line, keeping the free text.
func deriveDescription(line string) string {
	var kept []string
	for _, token := range strings.Fields(line) {
		switch {
		case dateTokenRe.FindString(token) == token:
		case amountTokenRe.FindString(token) == token:
		case directionMarkers[strings.ToUpper(token)]:
		default:
			kept = append(kept, token)
		}
	}
	return textutils.NormalizeWhitespace(strings.Join(kept, " "))
}

// extractAccount opportunistically recovers the account number from a
// structural header line.
func (p *PDFParser) extractAccount(line string, batch *models.BankReconciliation) {
	if batch.AccountNumber != "unknown" {
		return
	}
	if m := accountRe.FindStringSubmatch(line); len(m) > 1 {
		batch.AccountNumber = strings.Trim(m[1], "./-")
	}
}
