// Package parse handles the statement parsing command
package parse

import (
	"fmt"

	"github.com/spf13/cobra"

	"concilia/extrato-match/cmd/root"
	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/common"
	"concilia/extrato-match/internal/fileutils"
	"concilia/extrato-match/internal/models"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a statement file into a transaction batch",
	Long: `Parse a statement file (fixed-width ledger, delimited text or PDF) into a
normalized transaction batch, print its summary and optionally export the
transactions to CSV.`,
	Run: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	if root.SharedFlags.Input == "" {
		logger.Fatal("No input file specified, use --input")
	}

	data, err := fileutils.ReadFile(root.SharedFlags.Input)
	if err != nil {
		logger.Fatalf("Error reading input file: %v", err)
	}

	svc, err := root.Service()
	if err != nil {
		logger.Fatalf("Error building reconciliation service: %v", err)
	}

	batch, err := svc.Reconcile(data, root.SharedFlags.Input, root.SharedFlags.Uploader)
	if err != nil {
		logger.Fatalf("Error parsing statement: %v", err)
	}

	printSummary(batch)

	if root.SharedFlags.Output != "" {
		if err := common.WriteTransactionsToCSV(batch.Transactions, root.SharedFlags.Output); err != nil {
			logger.Fatalf("Error writing CSV: %v", err)
		}
		root.Log.Infof("Wrote %d transactions to %s", len(batch.Transactions), root.SharedFlags.Output)
	}
}

func printSummary(batch *models.BankReconciliation) {
	fmt.Printf("Batch:        %s\n", batch.ID)
	fmt.Printf("Bank:         %s\n", batch.BankName)
	fmt.Printf("Account:      %s\n", batch.AccountNumber)
	if batch.StartDate != "" {
		fmt.Printf("Period:       %s to %s\n", batch.StartDate, batch.EndDate)
	} else {
		fmt.Printf("Period:       (no transactions)\n")
	}
	fmt.Printf("Transactions: %d\n", batch.TotalTransactions)
	fmt.Printf("Credits:      %s\n", amountutils.FormatBRL(batch.CreditTotal()))
	fmt.Printf("Debits:       %s\n", amountutils.FormatBRL(batch.DebitTotal()))
	fmt.Printf("Balance:      %s\n", amountutils.FormatBRL(batch.FinalBalance))
	fmt.Printf("Status:       %s\n", batch.Status)
}
