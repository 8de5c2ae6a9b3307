// =============================================================================
// Gift Aid Schedule Builder - Build Command
// =============================================================================
//
// This file defines the 'build' command, which runs the whole pipeline:
//
//   1. Load configuration
//   2. Parse and validate the transactions and declarations CSVs
//   3. Allocate a fresh, date-stamped run directory
//   4. Match transactions to declarations and filter for eligibility,
//      writing the audit and manual-review logs as it goes
//   5. Fill in the schedule spreadsheet from the blank template
//   6. Copy both input files into the run directory for auditability
//
// Any structural or row-level input error aborts the run before the run
// directory is allocated, so a failed run leaves no partial output behind.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/panthas05/gift-aid-schedule-builder/internal/config"
	"github.com/panthas05/gift-aid-schedule-builder/internal/logger"
	"github.com/panthas05/gift-aid-schedule-builder/internal/parsing"
	"github.com/panthas05/gift-aid-schedule-builder/internal/rundir"
	"github.com/panthas05/gift-aid-schedule-builder/internal/schedule"
	"github.com/panthas05/gift-aid-schedule-builder/internal/xlsx"
)

// Flags overriding the corresponding config file settings.
var (
	spreadsheetType  string
	transactionsFile string
	declarationsFile string
)

// buildCmd represents the 'build' command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a gift aid schedule from the transactions and declarations CSVs",
	Long: `The build command reads the bank transactions CSV and the donor
declarations CSV, decides which transactions are claimable under gift aid,
and writes a completed HMRC schedule spreadsheet - together with a per-row
audit log, a manual-review log, and copies of both inputs - into a fresh
output directory named after today's date.

A declaration matches a transaction when the declaration's identifier appears
in the transaction's bank reference, ignoring case, spacing, and punctuation.
A matched transaction is claimable when it falls inside the time windows the
declaration covers.`,

	// SilenceUsage: a failed run is an input problem, not a usage problem.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(
		&spreadsheetType,
		"spreadsheet",
		"",
		"The type of spreadsheet to produce: \"excel\" or \"libre\"",
	)
	buildCmd.Flags().StringVar(
		&transactionsFile,
		"transactions",
		"",
		"Path to the bank transactions CSV (overrides the config file)",
	)
	buildCmd.Flags().StringVar(
		&declarationsFile,
		"declarations",
		"",
		"Path to the donor declarations CSV (overrides the config file)",
	)
}

// runBuild orchestrates one schedule-building run.
func runBuild() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if transactionsFile != "" {
		cfg.TransactionsFile = transactionsFile
	}
	if declarationsFile != "" {
		cfg.DeclarationsFile = declarationsFile
	}
	if spreadsheetType != "" {
		cfg.Spreadsheet = spreadsheetType
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg.LogLevel)
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	if cfg.Spreadsheet == "" {
		return fmt.Errorf(
			"please specify the type of spreadsheet you wish to be output " +
				"(hint: use --spreadsheet=excel if you use Excel or " +
				"--spreadsheet=libre if you use LibreOffice)",
		)
	}
	flavour, err := xlsx.ParseFlavour(cfg.Spreadsheet)
	if err != nil {
		return err
	}

	// Parse both inputs up front: input errors are fatal and must abort
	// the run before any output directory is allocated.
	log.Info().Str("file", cfg.TransactionsFile).Msg("parsing transactions file")
	transactionRows, err := parsing.ParseTransactionsFile(cfg.TransactionsFile)
	if err != nil {
		return err
	}
	log.Info().
		Int("rows", len(transactionRows)).
		Msg("transactions file parsed")

	log.Info().Str("file", cfg.DeclarationsFile).Msg("parsing declarations file")
	declarationRows, err := parsing.ParseDeclarationsFile(cfg.DeclarationsFile)
	if err != nil {
		return err
	}
	declarations := make([]schedule.DonorDeclaration, len(declarationRows))
	for i, row := range declarationRows {
		declarations[i] = schedule.NewDonorDeclaration(row)
	}
	log.Info().
		Int("declarations", len(declarations)).
		Msg("declarations file parsed")

	manager := rundir.NewManager(cfg.OutputsDir)
	runDirectory, err := manager.Dir()
	if err != nil {
		return err
	}
	log.Info().Str("dir", runDirectory).Msg("allocated run directory")

	auditLog, err := manager.CreateLogFile("transactions_log.txt")
	if err != nil {
		return err
	}
	defer auditLog.Close()
	reviewLog, err := manager.CreateLogFile("transactions_that_need_manual_handling.txt")
	if err != nil {
		return err
	}
	defer reviewLog.Close()

	log.Info().Msg("finding gift-aidable transactions")
	result, err := schedule.FilterGiftAidable(
		transactionRows,
		declarations,
		auditLog,
		reviewLog,
		xlsx.FirstTableRow,
	)
	if err != nil {
		return err
	}
	if result.CapReached {
		log.Warn().Msgf(
			"%d gift-aidable transactions detected, but each schedule can "+
				"only hold at most %d transactions - only processed up to row "+
				"%d of %s. To process further transactions from the file, "+
				"delete rows 2-%d of the file once this run has completed "+
				"successfully, then rerun the build.",
			schedule.MaxScheduleRows, schedule.MaxScheduleRows,
			result.LastProcessedRow, filepath.Base(cfg.TransactionsFile),
			result.LastProcessedRow,
		)
	}

	log.Info().
		Int("donations", len(result.Donations)).
		Msg("writing gift-aidable transactions to schedule")
	scheduleFileName := flavour.TemplateFileName()
	err = xlsx.WriteSchedule(
		filepath.Join(cfg.TemplatesDir, scheduleFileName),
		filepath.Join(runDirectory, scheduleFileName),
		result.Donations,
	)
	if err != nil {
		return err
	}

	// Copy in both inputs for ease of auditing what the run actually saw.
	for _, inputPath := range []string{cfg.TransactionsFile, cfg.DeclarationsFile} {
		if err := manager.CopyIn(inputPath); err != nil {
			return err
		}
	}

	printRunSummary(runDirectory, scheduleFileName, cfg)
	return nil
}

// printRunSummary tells the operator what was produced and what to do next.
func printRunSummary(runDirectory, scheduleFileName string, cfg config.Config) {
	files := []string{
		fmt.Sprintf("A completed gift aid schedule (%s)", scheduleFileName),
		"A list of transactions that may be gift aidable, but require " +
			"attention (transactions_that_need_manual_handling.txt)",
		fmt.Sprintf(
			"A log, detailing what was done with each row of %s (transactions_log.txt)",
			filepath.Base(cfg.TransactionsFile),
		),
		fmt.Sprintf("A copy of %s", filepath.Base(cfg.TransactionsFile)),
		fmt.Sprintf("A copy of %s", filepath.Base(cfg.DeclarationsFile)),
	}

	fmt.Printf("Done. Files written to:\n%s\nPlease find within that folder:\n", runDirectory)
	for _, f := range files {
		fmt.Printf("\t- %s\n", f)
	}
	fmt.Println(
		"After you've checked that the schedule looks okay, and resolved any " +
			"transactions listed in transactions_that_need_manual_handling.txt, " +
			"you can upload the schedule to make a gift aid claim here: " +
			"https://www.gov.uk/claim-gift-aid-online",
	)
}
