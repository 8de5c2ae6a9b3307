package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestEvaluateEligibility(t *testing.T) {
	fullyCovered := DonorDeclaration{
		DeclarationDate:                 date(1993, time.October, 8),
		ValidFourYearsBeforeDeclaration: true,
		ValidDayOfDeclaration:           true,
		ValidAfterDayOfDeclaration:      true,
	}

	tests := []struct {
		name            string
		transactionDate time.Time
		declaration     DonorDeclaration
		expected        Eligibility
	}{
		{
			name:            "exactly four years before is eligible",
			transactionDate: date(1989, time.October, 8),
			declaration:     fullyCovered,
			expected:        Eligible,
		},
		{
			name:            "one day beyond four years is too old",
			transactionDate: date(1989, time.October, 7),
			declaration:     fullyCovered,
			expected:        TooOld,
		},
		{
			name:            "day before declaration is eligible when covered",
			transactionDate: date(1993, time.October, 7),
			declaration:     fullyCovered,
			expected:        Eligible,
		},
		{
			name:            "declaration day is eligible when covered",
			transactionDate: date(1993, time.October, 8),
			declaration:     fullyCovered,
			expected:        Eligible,
		},
		{
			name:            "day after declaration is eligible when covered",
			transactionDate: date(1993, time.October, 9),
			declaration:     fullyCovered,
			expected:        Eligible,
		},
		{
			name:            "pre-declaration window not covered",
			transactionDate: date(1993, time.October, 7),
			declaration: DonorDeclaration{
				DeclarationDate:       date(1993, time.October, 8),
				ValidDayOfDeclaration: true,
			},
			expected: PreDeclarationNotCovered,
		},
		{
			name:            "declaration day not covered",
			transactionDate: date(1993, time.October, 8),
			declaration: DonorDeclaration{
				DeclarationDate:                 date(1993, time.October, 8),
				ValidFourYearsBeforeDeclaration: true,
			},
			expected: DeclarationDayNotCovered,
		},
		{
			name:            "post-declaration window not covered",
			transactionDate: date(1993, time.October, 9),
			declaration: DonorDeclaration{
				DeclarationDate:                 date(1993, time.October, 8),
				ValidFourYearsBeforeDeclaration: true,
				ValidDayOfDeclaration:           true,
			},
			expected: PostDeclarationNotCovered,
		},
		{
			name:            "too old wins even with no coverage flags",
			transactionDate: date(1989, time.October, 7),
			declaration: DonorDeclaration{
				DeclarationDate: date(1993, time.October, 8),
			},
			expected: TooOld,
		},
		{
			name:            "time-of-day components are ignored",
			transactionDate: time.Date(1993, time.October, 9, 23, 59, 59, 0, time.UTC),
			declaration:     fullyCovered,
			expected:        Eligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateEligibility(tt.transactionDate, tt.declaration))
		})
	}
}

func TestFourYearsBefore(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		assert.Equal(t, date(1989, time.October, 8), fourYearsBefore(date(1993, time.October, 8)))
	})

	t.Run("leap day maps to leap day when the earlier year is a leap year", func(t *testing.T) {
		assert.Equal(t, date(2020, time.February, 29), fourYearsBefore(date(2024, time.February, 29)))
	})

	t.Run("leap day clamps to 28 February otherwise", func(t *testing.T) {
		// 2100 is not a leap year.
		assert.Equal(t, date(2100, time.February, 28), fourYearsBefore(date(2104, time.February, 29)))
	})
}
