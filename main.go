// =============================================================================
// Gift Aid Schedule Builder - Main Entry Point
// =============================================================================
//
// This is the entry point for the gift aid schedule builder CLI. It reads a
// bank transactions CSV and a donor declarations CSV, works out which
// transactions can be claimed under gift aid, and writes a completed HMRC
// schedule spreadsheet (plus audit logs and copies of the inputs) into a
// fresh, date-stamped output directory.
//
// USAGE:
//   schedule-builder build --spreadsheet=libre   - Build a schedule for LibreOffice
//   schedule-builder build --spreadsheet=excel   - Build a schedule for Excel
//   schedule-builder version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core business logic (not for external import)
//   - pkg/       : Shared utilities
//   - templates/ : Blank HMRC schedule spreadsheets, one per flavour
//
// =============================================================================

package main

import (
	"github.com/panthas05/gift-aid-schedule-builder/cmd"
)

func main() {
	cmd.Execute()
}
