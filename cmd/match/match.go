// Package match handles the debit-to-payable matching command
package match

import (
	"fmt"

	"github.com/spf13/cobra"

	"concilia/extrato-match/cmd/root"
	"concilia/extrato-match/internal/amountutils"
	"concilia/extrato-match/internal/common"
	"concilia/extrato-match/internal/config"
	"concilia/extrato-match/internal/fileutils"
	"concilia/extrato-match/internal/matcher"
	"concilia/extrato-match/internal/models"
)

// Cmd represents the match command
var Cmd = &cobra.Command{
	Use:   "match",
	Short: "Match statement debits against paid payable records",
	Long: `Parse a statement file and score every debit against a CSV of paid
payable records. Candidates above the configured threshold are reported as
auto-confirmed; the rest need human review.`,
	Run: matchFunc,
}

var billsFile string

func init() {
	Cmd.Flags().StringVarP(&billsFile, "bills", "b", "", "CSV file with paid payable records")
}

func matchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	if root.SharedFlags.Input == "" {
		logger.Fatal("No input file specified, use --input")
	}
	if billsFile == "" {
		logger.Fatal("No bills file specified, use --bills")
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

	bills, err := common.ReadPaidRecordsCSV(billsFile)
	if err != nil {
		logger.Fatalf("Error reading bills file: %v", err)
	}

	threshold := config.GetGlobalConfig().Matcher.AutoConfirmThreshold
	m := matcher.New(logger)

	debits := batch.Debits()
	fmt.Printf("Matching %d debits against %d paid records (auto-confirm > %d)\n\n",
		len(debits), len(bills), threshold)

	for _, debit := range debits {
		candidates := m.Match(debit, bills)
		printDebitReport(debit, candidates, bills, threshold)
	}
}

func printDebitReport(debit models.BankTransaction, candidates []models.MatchCandidate, bills []models.PaidRecord, threshold int) {
	fmt.Printf("%s  %s  %s\n", debit.Date, amountutils.FormatBRL(debit.Amount), debit.Description)
	if len(candidates) == 0 {
		fmt.Printf("  no viable matches\n\n")
		return
	}

	for _, candidate := range candidates {
		verdict := "needs review"
		if candidate.Score > threshold {
			verdict = "auto-confirmed"
		}
		fmt.Printf("  [%3d] %-14s %s", candidate.Score, verdict, candidate.BillID)
		if bill, ok := billByID(bills, candidate.BillID); ok && bill.Description != "" {
			similarity := matcher.DescriptionSimilarity(debit.Description, bill.Description)
			fmt.Printf("  %s (description similarity %.0f%%)", bill.Description, similarity*100)
		}
		fmt.Println()
	}
	fmt.Println()
}

func billByID(bills []models.PaidRecord, id string) (models.PaidRecord, bool) {
	for _, bill := range bills {
		if bill.ID == id {
			return bill, true
		}
	}
	return models.PaidRecord{}, false
}
