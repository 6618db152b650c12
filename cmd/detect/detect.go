// Package detect handles the statement format detection command
package detect

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"concilia/extrato-match/cmd/root"
	"concilia/extrato-match/internal/detect"
	"concilia/extrato-match/internal/fileutils"
	"concilia/extrato-match/internal/parser"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the format of a statement file",
	Long:  `Classify a statement file as fixed-width ledger, delimited text or PDF without parsing it.`,
	Run:   detectFunc,
}

func detectFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	if root.SharedFlags.Input == "" {
		logger.Fatal("No input file specified, use --input")
	}

	data, err := fileutils.ReadFile(root.SharedFlags.Input)
	if err != nil {
		logger.Fatalf("Error reading input file: %v", err)
	}

	stmt := parser.NewStatement(data, root.SharedFlags.Input, root.SharedFlags.Uploader)
	format := detect.DetectFormat(stmt)

	fmt.Printf("%s: %s\n", root.SharedFlags.Input, format)
	if format == detect.FormatUnknown {
		// Unknown is not fatal: the parse command still runs the
		// fallback chain over this content.
		os.Exit(1)
	}
}
