// =============================================================================
// Gift Aid Schedule Builder - Matching & Filtering Pipeline
// =============================================================================
//
// The pipeline walks the transaction rows in input order and classifies each
// one into exactly one outcome: skipped (no amount / negative amount), not
// gift-aidable (no matching declaration), accepted, declared-but-excluded
// (matched but outside the declaration's coverage), or ambiguous (multiple
// matching declarations). Every row produces exactly one audit line - the
// audit trail is the reviewer's only way to confirm completeness, so it is a
// hard requirement, not a diagnostic nicety.
//
// =============================================================================

package schedule

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/panthas05/gift-aid-schedule-builder/internal/parsing"
)

// MaxScheduleRows is the hard cap on accepted donations per run: the HMRC
// schedule spreadsheet can hold at most 1000 claim rows.
const MaxScheduleRows = 1000

// FilterResult is what the pipeline produced and where it stopped.
type FilterResult struct {
	// Donations are the accepted claimable transactions, in input order.
	Donations []GiftAidableTransaction

	// CapReached is true when the run stopped at MaxScheduleRows with
	// input rows left unprocessed.
	CapReached bool

	// LastProcessedRow is the 1-based source row index of the final row
	// the pipeline looked at. When CapReached is set, the operator should
	// delete rows 2..LastProcessedRow from the transactions file and
	// rerun to process the remainder.
	LastProcessedRow int
}

// logWriter wraps an io.Writer with a sticky error, so the pipeline can log
// unconditionally and surface the first write failure at the end.
type logWriter struct {
	w   io.Writer
	err error
}

func (lw *logWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

// FilterGiftAidable runs the matching and filtering pipeline. Each processed
// row gets one line in auditLog; each ambiguous match additionally gets a
// line in reviewLog naming the colliding donors and the schedule row the
// donation will occupy (firstScheduleRow being the spreadsheet row of the
// first claim-table entry).
func FilterGiftAidable(
	transactionRows []parsing.TransactionRow,
	declarations []DonorDeclaration,
	auditLog io.Writer,
	reviewLog io.Writer,
	firstScheduleRow int,
) (FilterResult, error) {
	audit := &logWriter{w: auditLog}
	review := &logWriter{w: reviewLog}

	var result FilterResult
	for _, row := range transactionRows {
		result.LastProcessedRow = row.RowIndex
		prefix := fmt.Sprintf("Row %d, reference %q:", row.RowIndex, row.Reference)

		if row.Amount == nil {
			audit.printf("%s skipping as transaction has no associated amount\n", prefix)
			continue
		}
		if row.Amount.IsNegative() {
			audit.printf("%s skipping as transaction amount is negative\n", prefix)
			continue
		}

		match := MatchDeclarations(row.CleanedReference(), declarations)
		switch match.Outcome {
		case MatchNone:
			audit.printf("%s not detected as gift-aidable transaction\n", prefix)
			continue

		case MatchUnique:
			declaration := match.Declaration
			eligibility := EvaluateEligibility(row.TransactionDate, *declaration)
			if eligibility != Eligible {
				logExcludedTransaction(audit, prefix, row, *declaration, eligibility)
				continue
			}

			audit.printf(
				"%s detected as gift-aidable transaction from %s\n",
				prefix, declaration.DonorName(),
			)
			donation, err := NewGiftAidableTransaction(row, declaration)
			if err != nil {
				return result, err
			}
			result.Donations = append(result.Donations, donation)

		case MatchAmbiguous:
			donors := donorNamesSummary(match.Candidates)
			audit.printf(
				"%s detected as gift-aidable transaction, but found multiple "+
					"possible donors: %s\n",
				prefix, donors,
			)
			// The donation is still claimed, occupying the next free
			// schedule row, but without donor details filled in.
			scheduleRow := firstScheduleRow + len(result.Donations)
			review.printf(
				"Transaction on row %d of xlsx schedule, from row %d of "+
					"transactions.csv, possible donors were %s\n",
				scheduleRow, row.RowIndex, donors,
			)
			donation, err := NewGiftAidableTransaction(row, nil)
			if err != nil {
				return result, err
			}
			result.Donations = append(result.Donations, donation)
		}

		if len(result.Donations) == MaxScheduleRows {
			result.CapReached = true
			break
		}
	}

	if audit.err != nil {
		return result, fmt.Errorf("writing audit log: %w", audit.err)
	}
	if review.err != nil {
		return result, fmt.Errorf("writing manual-review log: %w", review.err)
	}
	return result, nil
}

// logExcludedTransaction writes the audit line for a transaction that
// matched a declaration but fell outside its coverage, naming the specific
// exclusion.
func logExcludedTransaction(
	audit *logWriter,
	prefix string,
	row parsing.TransactionRow,
	declaration DonorDeclaration,
	eligibility Eligibility,
) {
	prefix = fmt.Sprintf(
		"%s had declaration from %s, however", prefix, declaration.DonorName(),
	)
	declarationDate := declaration.DeclarationDate.Format(time.DateOnly)
	transactionDate := row.TransactionDate.Format(time.DateOnly)

	switch eligibility {
	case TooOld:
		audit.printf(
			"%s transaction occurred more than four years before declaration "+
				"date of %s\n",
			prefix, declarationDate,
		)
	case PreDeclarationNotCovered:
		audit.printf(
			"%s transaction occurred less than four years before declaration "+
				"date, but declaration wasn't stated to cover donations made in "+
				"the four years before it was signed (declaration date: %s, "+
				"transaction date: %s)\n",
			prefix, declarationDate, transactionDate,
		)
	case DeclarationDayNotCovered:
		audit.printf(
			"%s transaction occurred on declaration date, but declaration "+
				"wasn't stated to cover donations made on the day it was signed "+
				"(declaration/transaction date: %s)\n",
			prefix, declarationDate,
		)
	case PostDeclarationNotCovered:
		audit.printf(
			"%s transaction occurred after declaration date, but declaration "+
				"wasn't stated to cover donations made after the day it was "+
				"signed (declaration date: %s, transaction date: %s)\n",
			prefix, declarationDate, transactionDate,
		)
	}
}

func donorNamesSummary(declarations []*DonorDeclaration) string {
	names := make([]string, len(declarations))
	for i, d := range declarations {
		names[i] = d.DonorName()
	}
	return strings.Join(names, ", ")
}
