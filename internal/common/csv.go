// Package common provides the CSV surfaces shared by the CLI commands:
// exporting parsed transaction batches and ingesting paid-record lists for
// matching.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the rune separating CSV fields on both read and write.
var Delimiter = ','

// SetDelimiter configures the CSV delimiter for all subsequent reads and
// writes.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = delim
		return gocsv.NewSafeCSVWriter(w)
	})
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})
}

// SetLogger replaces the package logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// WriteTransactionsToCSV writes a parsed batch's transactions to a CSV file,
// creating the target directory when needed.
func WriteTransactionsToCSV(transactions []models.BankTransaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&transactions, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// ReadCSVFile reads a CSV file into a slice of row structs.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.Info("Reading CSV file",
		logging.Field{Key: logging.FieldInputFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Info("Read CSV data",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadPaidRecordsCSV loads the paid-record list the matcher compares debits
// against (columns: id, amount, paid_amount, due_date, paid_date,
// description).
func ReadPaidRecordsCSV(filePath string) ([]models.PaidRecord, error) {
	return ReadCSVFile[models.PaidRecord](filePath)
}
