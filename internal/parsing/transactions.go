// =============================================================================
// Gift Aid Schedule Builder - Transactions CSV Parsing
// =============================================================================
//
// This module parses the bank transactions export. The file must be a UTF-8
// comma-separated file with the exact headers "Date", "Reference", "Amount"
// (case-insensitive). Each data row becomes a TransactionRow or a located
// RowError; a bad row aborts the whole run, because the pipeline feeds legal
// donor records and must never work from partially parsed input.
//
// Amount values are free-form currency text as exported by banks: they may
// carry a currency symbol, a true minus sign, thousands separators, or be
// entirely dashed out for value-less rows.
//
// =============================================================================

package parsing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panthas05/gift-aid-schedule-builder/internal/keys"
)

// TransactionRow is a single validated row of the transactions file. It is
// never mutated after parsing.
type TransactionRow struct {
	TransactionDate time.Time
	Reference       string

	// Amount is nil when the source row carried no monetary value (some
	// statements render value-less transactions as e.g. "--").
	Amount *decimal.Decimal

	// RowIndex is the 1-based position of the row in the source file,
	// kept for diagnostics and the audit trail. The first data row is 2.
	RowIndex int
}

// CleanedReference is the letters-only form of the reference used for
// matching against declaration identifiers.
func (r TransactionRow) CleanedReference() string {
	return keys.Clean(r.Reference)
}

// cleanAmountString strips everything from an amount value that is not part
// of a decimal number. Any usage of "true minus" (U+2212) is mapped to an
// ASCII hyphen first.
func cleanAmountString(amountString string) string {
	amountString = strings.ReplaceAll(amountString, "−", "-")
	var b strings.Builder
	b.Grow(len(amountString))
	for _, r := range amountString {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// ParseAmount parses a free-form currency string into an exact decimal. A
// cleaned string with no digits at all means the row has no monetary value,
// reported as a nil amount rather than an error.
func ParseAmount(amountString string) (*decimal.Decimal, error) {
	cleaned := cleanAmountString(amountString)
	if !containsDigit(cleaned) {
		return nil, nil
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("parsing amount %q as a decimal: %w", amountString, err)
	}
	return &amount, nil
}

const transactionFieldCount = 3

// ParseTransactionRow validates one data row of the transactions file.
// Failures are reported as a *RowError: a wrong field count carries no
// column locator, a bad date locates column 1, and a bad amount locates
// column 3.
func ParseTransactionRow(fields []string, rowIndex int) (TransactionRow, error) {
	if len(fields) != transactionFieldCount {
		return TransactionRow{}, NewRowShapeError(
			"Expected each transaction to be represented by a row with three "+
				"items - row had %d items: %s.",
			len(fields), summarizeFields(fields),
		)
	}

	transactionDate, err := ParseUKDate(strings.TrimSpace(fields[0]))
	if err != nil {
		return TransactionRow{}, NewRowError(
			1,
			"Error parsing date %q, expected date of the form dd/mm/yyyy or dd/mm/yy.",
			fields[0],
		)
	}

	amount, err := ParseAmount(fields[2])
	if err != nil {
		return TransactionRow{}, NewRowError(
			3, "Error parsing amount %q to a decimal.", fields[2],
		)
	}

	return TransactionRow{
		TransactionDate: transactionDate,
		Reference:       fields[1],
		Amount:          amount,
		RowIndex:        rowIndex,
	}, nil
}

var expectedTransactionHeaders = []string{"Date", "Reference", "Amount"}

// ParseTransactionsFile reads and validates the whole transactions file.
// Structural problems (missing file, wrong headers) and row-level problems
// are both fatal; row-level errors leave the function with row, column, and
// file name attached.
func ParseTransactionsFile(path string) ([]TransactionRow, error) {
	records, err := readCSVFile(path, "transactions")
	if err != nil {
		return nil, err
	}

	if err := checkHeaderRow(records[0], expectedTransactionHeaders, path); err != nil {
		return nil, err
	}

	var transactions []TransactionRow
	// Row 1 is the header, so data rows are numbered from 2.
	for i, fields := range records[1:] {
		rowIndex := i + 2
		row, err := ParseTransactionRow(fields, rowIndex)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				return nil, rowErr.Locate(rowIndex, filepath.Base(path))
			}
			return nil, err
		}
		transactions = append(transactions, row)
	}
	return transactions, nil
}

// readCSVFile opens and fully reads a CSV input, confirming the mandatory
// header row is present. kind names the input in error messages.
func readCSVFile(path, kind string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"there is no file named %q in %s",
				filepath.Base(path), filepath.Dir(path),
			)
		}
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Shape errors are reported per-row with our own diagnostics.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf(
			"%s file %s is empty - expected at least a header row", kind, path,
		)
	}
	return records, nil
}

// checkHeaderRow verifies the mandatory header row matches the expected
// headers exactly, ignoring case and surrounding whitespace.
func checkHeaderRow(headerRow, expected []string, path string) error {
	matches := len(headerRow) == len(expected)
	if matches {
		for i, h := range headerRow {
			if !strings.EqualFold(strings.TrimSpace(h), expected[i]) {
				matches = false
				break
			}
		}
	}
	if matches {
		return nil
	}
	return fmt.Errorf(
		"expected %s to have %d columns with headers %s, instead got headers %s",
		filepath.Base(path), len(expected),
		summarizeFields(expected), summarizeFields(headerRow),
	)
}

// summarizeFields renders row contents for error messages, each value quoted.
func summarizeFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return strings.Join(quoted, ", ")
}
