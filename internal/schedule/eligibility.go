package schedule

import "time"

// Eligibility is the outcome of evaluating a transaction against a matched
// declaration under HMRC's date rules.
type Eligibility int

const (
	// Eligible: the transaction can be claimed under the declaration.
	Eligible Eligibility = iota

	// TooOld: the transaction predates the declaration by more than four
	// calendar years. This applies regardless of the declaration's flags.
	TooOld

	// PreDeclarationNotCovered: the transaction falls within the four
	// years before the declaration date, but the declaration doesn't
	// cover that window.
	PreDeclarationNotCovered

	// DeclarationDayNotCovered: the transaction is dated on the
	// declaration date itself, which the declaration doesn't cover.
	DeclarationDayNotCovered

	// PostDeclarationNotCovered: the transaction postdates the
	// declaration, and the declaration doesn't cover subsequent days.
	PostDeclarationNotCovered
)

// fourYearsBefore computes the earliest date a declaration can reach back
// to: the same month and day, four years earlier. A 29 February declaration
// clamps to 28 February when the earlier year is not a leap year.
func fourYearsBefore(d time.Time) time.Time {
	year, month, day := d.Date()
	year -= 4
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// EvaluateEligibility decides whether a transaction dated transactionDate is
// claimable under declaration. The four-year cutoff is checked first, since
// it is the earliest possible eligible date; otherwise exactly one of the
// three temporal bands (before, on, after the declaration date) applies, and
// its coverage flag gates the result.
func EvaluateEligibility(
	transactionDate time.Time,
	declaration DonorDeclaration,
) Eligibility {
	transactionDate = dateOnly(transactionDate)
	declarationDate := dateOnly(declaration.DeclarationDate)

	switch {
	case transactionDate.Before(fourYearsBefore(declarationDate)):
		return TooOld
	case transactionDate.Before(declarationDate):
		if !declaration.ValidFourYearsBeforeDeclaration {
			return PreDeclarationNotCovered
		}
	case transactionDate.Equal(declarationDate):
		if !declaration.ValidDayOfDeclaration {
			return DeclarationDayNotCovered
		}
	default:
		if !declaration.ValidAfterDayOfDeclaration {
			return PostDeclarationNotCovered
		}
	}
	return Eligible
}

// dateOnly truncates a time to its calendar date, so values parsed from
// different sources compare as dates.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
