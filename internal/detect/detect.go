// Package detect classifies raw statement input into one of the supported
// formats. Detection is pure and deterministic: same input, same answer; no
// side effects, no I/O.
package detect

import (
	"regexp"
	"strings"

	"concilia/extrato-match/internal/parser"
	"concilia/extrato-match/internal/textutils"
)

// Format identifies a supported statement layout.
type Format string

const (
	FormatFixedWidthLedger Format = "fixed-width-ledger"
	FormatDelimitedText    Format = "delimited-text"
	FormatPdfText          Format = "pdf-text"
	FormatUnknown          Format = "unknown"
)

// ledgerMarker is the embedded date marker of a fixed-width ledger detail row:
// a literal segment character followed by two 8-digit groups.
var ledgerMarker = regexp.MustCompile(`S\d{8}\d{8}`)

// Both markers have to appear for the PIX-receipt variant of the
// fixed-width export.
var (
	pixMarker      = []string{"PIX"}
	receivedMarker = []string{"RECEBID"}
)

// DetectFormat classifies a statement. Priority order, first match wins:
//
//  1. .pdf extension
//  2. .ret extension -> fixed-width ledger
//  3. .txt extension -> content sniffed: data lines splitting into 4+
//     fields on '|' or tab route to the delimited parser, everything else
//     to the fixed-width parser
//  4. textual content carrying the fixed-width ledger marker
//  5. textual content carrying both a PIX marker and a received marker
//  6. unknown
func DetectFormat(stmt *parser.Statement) Format {
	switch stmt.Ext() {
	case "pdf":
		return FormatPdfText
	case "ret":
		return FormatFixedWidthLedger
	case "txt":
		if stmt.IsText() && LooksDelimited(stmt.Text()) {
			return FormatDelimitedText
		}
		return FormatFixedWidthLedger
	}

	if stmt.IsText() {
		text := stmt.Text()
		if ledgerMarker.MatchString(text) {
			return FormatFixedWidthLedger
		}
		if textutils.ContainsAnyFold(text, pixMarker) && textutils.ContainsAnyFold(text, receivedMarker) {
			return FormatFixedWidthLedger
		}
	}

	return FormatUnknown
}

// LooksDelimited reports whether the first data line of the text splits into
// at least four fields on '|' or tab. Header and dashed separator lines are
// ignored before sniffing.
func LooksDelimited(text string) bool {
	for _, line := range textutils.NonBlankLines(text) {
		if IsHeaderOrSeparator(line) {
			continue
		}
		return delimitedFieldCount(line) >= 4
	}
	return false
}

// IsHeaderOrSeparator recognizes column-title rows and dashed separator runs
// that delimited exports put above the data.
func IsHeaderOrSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.Count(trimmed, "-") >= 4 && strings.Trim(trimmed, "-| ") == "" {
		return true
	}
	return textutils.ContainsAnyFold(trimmed, []string{"DATA", "DESCRICAO", "DESCRIÇÃO", "HISTORICO", "HISTÓRICO", "VALOR", "TIPO"}) &&
		!strings.ContainsAny(trimmed, "0123456789")
}

// SplitDelimited splits a delimited line on '|' when present, else on tab.
func SplitDelimited(line string) []string {
	if strings.Contains(line, "|") {
		return strings.Split(line, "|")
	}
	return strings.Split(line, "\t")
}

func delimitedFieldCount(line string) int {
	if !strings.ContainsAny(line, "|\t") {
		return 1
	}
	return len(SplitDelimited(line))
}
