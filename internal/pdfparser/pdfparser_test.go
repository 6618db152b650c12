package pdfparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
	"concilia/extrato-match/internal/parser"
)

// statementPage lays plain-text lines out top-to-bottom as one run each.
func statementPage(lines ...string) []PageRuns {
	runs := make([]TextRun, 0, len(lines))
	y := 800.0
	for _, line := range lines {
		runs = append(runs, TextRun{X: 40, Y: y, Text: line})
		y -= 20
	}
	return []PageRuns{{Number: 1, Runs: runs}}
}

func parseLines(t *testing.T, lines ...string) *models.BankReconciliation {
	t.Helper()
	p := New(logging.NewMockLogger(), NewMockRunExtractor(statementPage(lines...), nil))
	batch, err := p.Parse(parser.NewStatement([]byte("%PDF-1.4"), "extrato.pdf", "user-1"))
	require.NoError(t, err)
	return batch
}

func TestParse_DebitWithTrailingBalanceColumn(t *testing.T) {
	batch := parseLines(t, "05/02/2026 PIX ENVIADO FORNECEDOR X -150,00 850,00")

	require.Len(t, batch.Transactions, 1)
	tx := batch.Transactions[0]
	assert.Equal(t, "2026-02-05", tx.Date)
	assert.Equal(t, models.TransactionTypeDebit, tx.Type)
	assert.Equal(t, "150.00", tx.Amount.StringFixed(2))
	assert.Equal(t, "PIX ENVIADO FORNECEDOR X", tx.Description)
}

func TestParse_KeywordDirection(t *testing.T) {
	batch := parseLines(t,
		"10/02/2026 PIX RECEBIDO CLIENTE Y 1.200,00 2.050,00",
		"11/02/2026 TARIFA MANUTENCAO 25,50 2.024,50",
		"12/02/2026 TED AVULSA 100,00 2.124,50",
	)

	require.Len(t, batch.Transactions, 3)
	assert.Equal(t, models.TransactionTypeCredit, batch.Transactions[0].Type)
	assert.Equal(t, "1200.00", batch.Transactions[0].Amount.StringFixed(2))
	// TARIFA is a debit keyword.
	assert.Equal(t, models.TransactionTypeDebit, batch.Transactions[1].Type)
	// No keyword, no sign: default credit.
	assert.Equal(t, models.TransactionTypeCredit, batch.Transactions[2].Type)
}

func TestParse_StructuralLinesSkippedAndAccountRecovered(t *testing.T) {
	batch := parseLines(t,
		"Extrato de Conta Corrente",
		"Agência: 0123 Conta: 45678-9",
		"Período: 01/02/2026 a 28/02/2026",
		"Data Histórico Valor Saldo",
		"05/02/2026 PIX ENVIADO FORNECEDOR X -150,00 850,00",
		"Saldo final 850,00",
	)

	require.Len(t, batch.Transactions, 1)
	assert.Equal(t, "45678-9", batch.AccountNumber)
	assert.Equal(t, "2026-02-05", batch.StartDate)
	assert.Equal(t, "2026-02-05", batch.EndDate)
}

func TestParse_ShortDateBorrowsPeriodYear(t *testing.T) {
	batch := parseLines(t,
		"Período: 01/02/2026 a 28/02/2026",
		"05/02 PIX ENVIADO FORNECEDOR X -150,00 850,00",
	)

	require.Len(t, batch.Transactions, 1)
	assert.Equal(t, "2026-02-05", batch.Transactions[0].Date)
}

func TestParse_ShortDateAcrossYearBoundary(t *testing.T) {
	batch := parseLines(t,
		"Período: 15/12/2025 a 15/01/2026",
		"20/12 PGTO FORNECEDOR -100,00 900,00",
		"05/01 PGTO FORNECEDOR -50,00 850,00",
	)

	require.Len(t, batch.Transactions, 2)
	assert.Equal(t, "2025-12-20", batch.Transactions[0].Date)
	assert.Equal(t, "2026-01-05", batch.Transactions[1].Date)
}

func TestParse_ShortDateWithoutPeriodIsSkipped(t *testing.T) {
	batch := parseLines(t, "05/02 PIX ENVIADO -150,00 850,00")
	assert.Empty(t, batch.Transactions)
}

func TestParse_LinesWithoutDateOrAmountAreSkipped(t *testing.T) {
	batch := parseLines(t,
		"algum texto sem data nem valor",
		"05/02/2026 sem valor nessa linha",
		"1.000,00 sem data nessa linha",
	)
	assert.Empty(t, batch.Transactions)
	assert.Equal(t, models.StatusPending, batch.Status)
}

func TestParse_EmptyDescriptionIsSkipped(t *testing.T) {
	// Only a date, a C marker and amounts: nothing left to describe.
	batch := parseLines(t, "05/02/2026 C 150,00 850,00")
	assert.Empty(t, batch.Transactions)
}

func TestParse_SingleAmountWithoutBalanceColumn(t *testing.T) {
	p := NewWithOptions(logging.NewMockLogger(),
		NewMockRunExtractor(statementPage("05/02/2026 PGTO BOLETO 150,00"), nil),
		Options{LineTolerance: DefaultLineTolerance, TrailingBalanceColumn: true})
	batch, err := p.Parse(parser.NewStatement([]byte("%PDF-1.4"), "extrato.pdf", "user-1"))
	require.NoError(t, err)

	require.Len(t, batch.Transactions, 1)
	assert.Equal(t, "150.00", batch.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, models.TransactionTypeDebit, batch.Transactions[0].Type)
}

func TestParse_ExtractorFailureIsHardError(t *testing.T) {
	p := New(logging.NewMockLogger(), NewMockRunExtractor(nil, errors.New("not a pdf")))
	_, err := p.Parse(parser.NewStatement([]byte("garbage"), "extrato.pdf", "user-1"))
	assert.Error(t, err)
}

func TestParse_AmountMagnitudeIsAlwaysPositive(t *testing.T) {
	batch := parseLines(t,
		"Período: 01/02/2026 a 28/02/2026",
		"05/02/2026 PIX ENVIADO FORNECEDOR -150,00 850,00",
		"06/02/2026 PIX RECEBIDO CLIENTE 300,00 1.150,00",
	)
	for _, tx := range batch.Transactions {
		assert.True(t, tx.Amount.Sign() >= 0)
	}
}

func TestDetect(t *testing.T) {
	p := New(logging.NewMockLogger(), NewMockRunExtractor(nil, nil))
	assert.True(t, p.Detect(parser.NewStatement([]byte("x"), "extrato.pdf", "u")))
	assert.True(t, p.Detect(parser.NewStatement([]byte("%PDF-1.7 binary"), "blob.bin", "u")))
	assert.False(t, p.Detect(parser.NewTextStatement("25/01/2026|PIX|C|10,00", "extrato.txt", "u")))
}
