// Package root contains the root command for the application
package root

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concilia/extrato-match/internal/cnabparser"
	"concilia/extrato-match/internal/common"
	"concilia/extrato-match/internal/config"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/pdfparser"
	"concilia/extrato-match/internal/reconcile"
	"concilia/extrato-match/internal/textparser"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Uploader string
	Profile  string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "extrato-match",
		Short: "Parse Brazilian bank statement exports and match debits against payables.",
		Long: `extrato-match ingests bank statement exports (fixed-width CNAB-style
ledgers, delimited text, PDF), normalizes them into transaction batches and
matches statement debits against externally supplied paid payable records.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to extrato-match!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			logging.SetDefaultLogger(logging.NewLogrusAdapterFromLogger(Log))
			common.SetLogger(logging.GetLogger())

			// The CSV delimiter has to be updated after env variables load.
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Uploader, "uploader", "u", "cli", "Uploader identity recorded on the batch")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Profile, "profile", "", "Fixed-width layout profile (built-in name or path to a YAML file)")
}

// GetLogrusAdapter returns the shared command logger behind the Logger interface.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Service builds the reconciliation service from configuration and flags.
func Service() (*reconcile.Service, error) {
	logger := GetLogrusAdapter()
	cfg := config.GetGlobalConfig()

	profile, err := resolveProfile(cfg)
	if err != nil {
		return nil, err
	}

	pdfOpts := pdfparser.Options{
		LineTolerance:         cfg.Parsers.PDF.LineTolerance,
		TrailingBalanceColumn: cfg.Parsers.PDF.TrailingBalanceColumn,
	}

	return reconcile.NewWithParsers(logger,
		pdfparser.NewWithOptions(logger, nil, pdfOpts),
		textparser.New(logger),
		cnabparser.New(logger, profile),
	), nil
}

// resolveProfile picks the fixed-width layout: the --profile flag wins over
// configuration; a value ending in .yaml/.yml is treated as a file path,
// anything else as a built-in profile name.
func resolveProfile(cfg *config.Config) (cnabparser.Profile, error) {
	name := SharedFlags.Profile
	if name == "" {
		if cfg.Parsers.CNAB.ProfilePath != "" {
			return cnabparser.LoadProfileFile(cfg.Parsers.CNAB.ProfilePath)
		}
		name = cfg.Parsers.CNAB.Profile
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return cnabparser.LoadProfileFile(name)
	}
	return cnabparser.ProfileByName(name)
}
