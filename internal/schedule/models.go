// =============================================================================
// Gift Aid Schedule Builder - Domain Models
// =============================================================================
//
// This package holds the core domain logic: the donor declaration and
// claimable transaction models, the eligibility rules that decide whether a
// transaction is covered by a declaration, and the filtering pipeline that
// classifies every transaction row into exactly one outcome.
//
// =============================================================================

package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panthas05/gift-aid-schedule-builder/internal/keys"
	"github.com/panthas05/gift-aid-schedule-builder/internal/parsing"
)

// DonorDeclaration is a donor's signed gift aid declaration, held for the
// lifetime of a single run and never mutated.
type DonorDeclaration struct {
	Title             string
	FirstName         string
	LastName          string
	HouseNumberOrName string
	Postcode          string

	DeclarationDate time.Time

	ValidFourYearsBeforeDeclaration bool
	ValidDayOfDeclaration           bool
	ValidAfterDayOfDeclaration      bool

	// Identifier is the cleaned (letters-only) form of the declaration's
	// identifier, matched by containment against cleaned bank references.
	// Parsing guarantees the raw identifier is non-empty.
	Identifier string
}

// NewDonorDeclaration builds a DonorDeclaration from a validated declarations
// row, deriving the cleaned identifier.
func NewDonorDeclaration(row parsing.DeclarationRow) DonorDeclaration {
	return DonorDeclaration{
		Title:                           row.Title,
		FirstName:                       row.FirstName,
		LastName:                        row.LastName,
		HouseNumberOrName:               row.HouseNumberOrName,
		Postcode:                        row.Postcode,
		DeclarationDate:                 row.DeclarationDate,
		ValidFourYearsBeforeDeclaration: row.ValidFourYearsBeforeDeclaration,
		ValidDayOfDeclaration:           row.ValidDayOfDeclaration,
		ValidAfterDayOfDeclaration:      row.ValidAfterDayOfDeclaration,
		Identifier:                      keys.Clean(row.Identifier),
	}
}

// DonorName joins the non-empty parts of the donor's title, first name, and
// last name for log messages.
func (d DonorDeclaration) DonorName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Title, d.FirstName, d.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// ErrUnclaimableAmount marks a programming error: building a claimable
// transaction from a row with no amount or a negative amount. The pipeline
// filters those rows out before construction, so hitting this means a bug,
// not bad input.
var ErrUnclaimableAmount = errors.New(
	"can only build a GiftAidableTransaction from a transaction row with a " +
		"non-negative amount",
)

// GiftAidableTransaction is a transaction accepted into the claim. Amount is
// always present and never negative. Declaration is nil when multiple
// declarations matched and the donor must be resolved by hand.
type GiftAidableTransaction struct {
	TransactionDate time.Time
	Amount          decimal.Decimal
	Declaration     *DonorDeclaration
}

// NewGiftAidableTransaction builds a claimable transaction from a validated
// transactions row. A row with an absent or negative amount is rejected with
// ErrUnclaimableAmount.
func NewGiftAidableTransaction(
	row parsing.TransactionRow,
	declaration *DonorDeclaration,
) (GiftAidableTransaction, error) {
	if row.Amount == nil || row.Amount.IsNegative() {
		return GiftAidableTransaction{}, fmt.Errorf(
			"row %d: %w", row.RowIndex, ErrUnclaimableAmount,
		)
	}
	return GiftAidableTransaction{
		TransactionDate: row.TransactionDate,
		Amount:          *row.Amount,
		Declaration:     declaration,
	}, nil
}
