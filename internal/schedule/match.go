package schedule

import "strings"

// MatchOutcome discriminates the three possible results of matching a
// transaction reference against the declarations: zero, one, or many
// declarations may match, and each case is handled differently by the
// pipeline, so the possibility space is carried explicitly rather than as a
// nullable declaration plus a count.
type MatchOutcome int

const (
	// MatchNone: no declaration's identifier appears in the reference.
	MatchNone MatchOutcome = iota

	// MatchUnique: exactly one declaration matched.
	MatchUnique

	// MatchAmbiguous: more than one declaration matched and the donor
	// cannot be determined automatically.
	MatchAmbiguous
)

// Match is the result of matching one transaction against the declarations.
type Match struct {
	Outcome MatchOutcome

	// Declaration is set only for MatchUnique.
	Declaration *DonorDeclaration

	// Candidates holds every matching declaration for MatchAmbiguous, in
	// declarations-file order.
	Candidates []*DonorDeclaration
}

// MatchDeclarations finds every declaration whose cleaned identifier is a
// substring of the transaction's cleaned reference.
func MatchDeclarations(
	cleanedReference string,
	declarations []DonorDeclaration,
) Match {
	var matching []*DonorDeclaration
	for i := range declarations {
		// Parsing rejects empty raw identifiers, so the cleaned
		// identifier is non-empty and containment is meaningful.
		if strings.Contains(cleanedReference, declarations[i].Identifier) {
			matching = append(matching, &declarations[i])
		}
	}

	switch len(matching) {
	case 0:
		return Match{Outcome: MatchNone}
	case 1:
		return Match{Outcome: MatchUnique, Declaration: matching[0]}
	}
	return Match{Outcome: MatchAmbiguous, Candidates: matching}
}
