// Package batch handles the directory batch-parsing command
package batch

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"concilia/extrato-match/cmd/root"
	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/batch"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every statement file in a directory",
	Long: `Parse every statement file (.ret, .txt, .pdf) in a directory and print an
aggregate summary. Files that cannot be parsed are reported and skipped.`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	if root.SharedFlags.Input == "" {
		logger.Fatal("No input directory specified, use --input")
	}

	svc, err := root.Service()
	if err != nil {
		logger.Fatalf("Error building reconciliation service: %v", err)
	}

	processor := batch.NewProcessor(svc, logger)
	summary, err := processor.ProcessDirectory(root.SharedFlags.Input, root.SharedFlags.Uploader)
	if err != nil {
		logger.Fatalf("Error processing directory: %v", err)
	}

	for _, result := range summary.Results {
		name := filepath.Base(result.FileName)
		if result.Err != nil {
			fmt.Printf("%-30s FAILED: %v\n", name, result.Err)
			continue
		}
		fmt.Printf("%-30s %4d transactions  %s\n",
			name, result.Batch.TotalTransactions, amountutils.FormatBRL(result.Batch.FinalBalance))
	}

	fmt.Println()
	fmt.Printf("Files:        %d parsed, %d failed\n", summary.FilesProcessed, summary.FilesFailed)
	if summary.StartDate != "" {
		fmt.Printf("Period:       %s to %s\n", summary.StartDate, summary.EndDate)
	}
	fmt.Printf("Transactions: %d\n", summary.TotalTransactions)
	fmt.Printf("Credits:      %s\n", amountutils.FormatBRL(summary.CreditTotal))
	fmt.Printf("Debits:       %s\n", amountutils.FormatBRL(summary.DebitTotal))
	fmt.Printf("Balance:      %s\n", amountutils.FormatBRL(summary.FinalBalance()))
}
