// Package batch parses every statement file in a directory and aggregates
// the results into one summary. Individual file failures are recorded and
// reported, never fatal for the run.
package batch

import (
	"github.com/shopspring/decimal"

	"concilia/extrato-match/internal/dateutils"
	"concilia/extrato-match/internal/fileutils"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
	"concilia/extrato-match/internal/reconcile"
)

// FileResult is the outcome of parsing one statement file.
type FileResult struct {
	FileName string
	Batch    *models.BankReconciliation
	Err      error
}

// Summary aggregates a directory run.
type Summary struct {
	Results           []FileResult
	FilesProcessed    int
	FilesFailed       int
	TotalTransactions int
	StartDate         string
	EndDate           string
	CreditTotal       decimal.Decimal
	DebitTotal        decimal.Decimal
}

// Processor runs the reconciliation service over directories of statements.
type Processor struct {
	svc *reconcile.Service
	log logging.Logger
}

// NewProcessor creates a Processor over the given reconciliation service.
func NewProcessor(svc *reconcile.Service, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Processor{svc: svc, log: logger}
}

// ProcessDirectory parses every statement file in the directory and folds the
// batches into a Summary. An error is returned only when the directory itself
// cannot be listed; unparsable files show up as failed results.
func (p *Processor) ProcessDirectory(dirPath, uploadedBy string) (*Summary, error) {
	files, err := fileutils.ListStatementFiles(dirPath)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		CreditTotal: decimal.Zero,
		DebitTotal:  decimal.Zero,
	}

	for _, file := range files {
		result := FileResult{FileName: file}

		data, err := fileutils.ReadFile(file)
		if err == nil {
			result.Batch, err = p.svc.Reconcile(data, file, uploadedBy)
		}
		result.Err = err

		if err != nil {
			p.log.WithError(err).Warn("Skipping unreadable statement file",
				logging.Field{Key: logging.FieldFile, Value: file})
			summary.FilesFailed++
			summary.Results = append(summary.Results, result)
			continue
		}

		summary.FilesProcessed++
		summary.fold(result.Batch)
		summary.Results = append(summary.Results, result)
	}

	p.log.Info("Processed statement directory",
		logging.Field{Key: logging.FieldFile, Value: dirPath},
		logging.Field{Key: logging.FieldCount, Value: summary.FilesProcessed})
	return summary, nil
}

// fold merges one parsed batch into the aggregate totals.
func (s *Summary) fold(batch *models.BankReconciliation) {
	s.TotalTransactions += batch.TotalTransactions
	s.CreditTotal = s.CreditTotal.Add(batch.CreditTotal())
	s.DebitTotal = s.DebitTotal.Add(batch.DebitTotal())
	s.StartDate, s.EndDate = dateutils.MinMaxISO(s.StartDate, s.EndDate, batch.StartDate)
	s.StartDate, s.EndDate = dateutils.MinMaxISO(s.StartDate, s.EndDate, batch.EndDate)
}

// FinalBalance returns the aggregate balance across every parsed file.
func (s *Summary) FinalBalance() decimal.Decimal {
	return s.CreditTotal.Sub(s.DebitTotal)
}
