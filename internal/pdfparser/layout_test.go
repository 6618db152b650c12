package pdfparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructLines_GroupsRunsByVerticalPosition(t *testing.T) {
	pages := []PageRuns{{
		Number: 1,
		Runs: []TextRun{
			// Second visual line, runs given out of horizontal order.
			{X: 120, Y: 700, Text: "PIX ENVIADO"},
			{X: 40, Y: 700.8, Text: "05/02/2026"},
			{X: 300, Y: 699.5, Text: "-150,00"},
			// First visual line (higher on the page).
			{X: 40, Y: 750, Text: "Extrato"},
			{X: 110, Y: 750, Text: "Conta Corrente"},
			// Whitespace-only runs are dropped.
			{X: 10, Y: 700, Text: "   "},
		},
	}}

	lines := ReconstructLines(pages, DefaultLineTolerance)
	assert.Equal(t, []string{
		"Extrato Conta Corrente",
		"05/02/2026 PIX ENVIADO -150,00",
	}, lines)
}

func TestReconstructLines_PagesConcatenateInOrder(t *testing.T) {
	pages := []PageRuns{
		{Number: 1, Runs: []TextRun{{X: 0, Y: 100, Text: "page one"}}},
		{Number: 2, Runs: []TextRun{{X: 0, Y: 800, Text: "page two"}}},
	}

	lines := ReconstructLines(pages, 0)
	assert.Equal(t, []string{"page one", "page two"}, lines)
}

func TestReconstructLines_Empty(t *testing.T) {
	assert.Empty(t, ReconstructLines(nil, DefaultLineTolerance))
	assert.Empty(t, ReconstructLines([]PageRuns{{Number: 1}}, DefaultLineTolerance))
}
