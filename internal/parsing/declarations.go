// =============================================================================
// Gift Aid Schedule Builder - Declarations CSV Parsing
// =============================================================================
//
// This module parses the donor declarations file. Each row holds a donor's
// personal details, the date their gift aid declaration was signed, three
// flags stating which time windows the declaration covers, and the
// identifier used to recognise that donor's transactions in bank references.
//
// Validation follows the HMRC schedule spreadsheet rules: the schedule
// rejects titles over four characters, names over thirty-five, house values
// over forty, hyphenated surnames, and malformed postcodes, so those rows
// are rejected here with a precise locator rather than discovered after
// submission. Checks run in a fixed order and the first violation wins.
//
// =============================================================================

package parsing

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DeclarationRow is a single validated row of the declarations file.
type DeclarationRow struct {
	Title             string
	FirstName         string
	LastName          string
	HouseNumberOrName string

	// Postcode is stored in cleaned form: uppercased, stripped of stray
	// characters, with the single space in the right place - or the "X"
	// sentinel for donors without a UK postcode.
	Postcode string

	DeclarationDate time.Time

	ValidFourYearsBeforeDeclaration bool
	ValidDayOfDeclaration           bool
	ValidAfterDayOfDeclaration      bool

	// Identifier is the raw identifier as provided; it is guaranteed
	// non-empty, so its cleaned form is non-empty too.
	Identifier string
}

// CleanPostcode normalises a raw postcode value: uppercase and trim, pass the
// "X" sentinel (non-UK donor) through unchanged, otherwise strip leading and
// trailing non-letters plus any other stray characters, and insert the single
// space three characters from the end.
func CleanPostcode(postcode string) string {
	postcode = strings.ToUpper(strings.TrimSpace(postcode))
	if postcode == nonUKPostcodeSentinel {
		return postcode
	}
	postcode = leadingNonLettersRegex.ReplaceAllString(postcode, "")
	postcode = trailingNonLettersRegex.ReplaceAllString(postcode, "")
	postcode = nonAlphanumericRegex.ReplaceAllString(postcode, "")
	if len(postcode) > 2 {
		postcode = postcode[:len(postcode)-3] + " " + postcode[len(postcode)-3:]
	}
	return postcode
}

// nonUKPostcodeSentinel marks donors with no UK postcode; HMRC's schedule
// expects an "X" in the postcode column for them.
const nonUKPostcodeSentinel = "X"

var (
	leadingNonLettersRegex  = regexp.MustCompile(`^[^A-Z]+`)
	trailingNonLettersRegex = regexp.MustCompile(`[^A-Z]+$`)
	nonAlphanumericRegex    = regexp.MustCompile(`[^A-Z0-9]`)

	// I assume you're not receiving donations from girobank :P
	validUKPostcodeRegex = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2}[A-Z]? [0-9][A-Z]{2}$`)
)

// ValidatePostcode reports whether a cleaned postcode has a valid UK postcode
// shape. The "X" sentinel is always valid.
func ValidatePostcode(cleanedPostcode string) bool {
	if cleanedPostcode == nonUKPostcodeSentinel {
		return true
	}
	return validUKPostcodeRegex.MatchString(cleanedPostcode)
}

// parseScheduleBoolean parses the schedule's boolean representation: the
// literal "0" or "1", nothing else.
func parseScheduleBoolean(booleanString string) (bool, error) {
	switch booleanString {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, errors.New("not a \"0\" or a \"1\"")
}

// Field length limits imposed by the HMRC schedule spreadsheet.
const (
	maxTitleLength = 4
	maxNameLength  = 35
	maxHouseLength = 40
)

const declarationFieldCount = 10

// ParseDeclarationRow validates one data row of the declarations file,
// applying each rule in a fixed order and reporting the first violation as a
// *RowError locating the offending column.
func ParseDeclarationRow(fields []string) (DeclarationRow, error) {
	if len(fields) != declarationFieldCount {
		return DeclarationRow{}, NewRowShapeError(
			"Expected each declaration to be represented by a row with ten "+
				"items - row had %d items.",
			len(fields),
		)
	}

	title := strings.TrimSpace(fields[0])
	firstName := strings.TrimSpace(fields[1])
	lastName := strings.TrimSpace(fields[2])
	houseNumberOrName := strings.TrimSpace(fields[3])
	postcode := CleanPostcode(fields[4])

	if utf8.RuneCountInString(title) > maxTitleLength {
		return DeclarationRow{}, NewRowError(
			1,
			"Title %q is longer than %d characters - the schedule only accepts "+
				"short titles such as \"Mr\", \"Mrs\", or \"Dr\".",
			title, maxTitleLength,
		)
	}
	if firstName == "" {
		return DeclarationRow{}, NewRowError(2, "No first name provided.")
	}
	if utf8.RuneCountInString(firstName) > maxNameLength {
		return DeclarationRow{}, NewRowError(
			2, "First name %q is longer than %d characters.", firstName, maxNameLength,
		)
	}
	if lastName == "" {
		return DeclarationRow{}, NewRowError(3, "No last name provided.")
	}
	if utf8.RuneCountInString(lastName) > maxNameLength {
		return DeclarationRow{}, NewRowError(
			3, "Last name %q is longer than %d characters.", lastName, maxNameLength,
		)
	}
	if strings.Contains(lastName, "-") {
		return DeclarationRow{}, NewRowError(
			3,
			"Last name %q contains a hyphen, which the schedule rejects - "+
				"please use %q instead.",
			lastName, strings.ReplaceAll(lastName, "-", " "),
		)
	}
	if houseNumberOrName == "" {
		return DeclarationRow{}, NewRowError(4, "No house number (or name) provided.")
	}
	if utf8.RuneCountInString(houseNumberOrName) > maxHouseLength {
		return DeclarationRow{}, NewRowError(
			4,
			"House number (or name) %q is longer than %d characters.",
			houseNumberOrName, maxHouseLength,
		)
	}
	if postcode == "" {
		return DeclarationRow{}, NewRowError(5, "No postcode provided.")
	}
	if !ValidatePostcode(postcode) {
		return DeclarationRow{}, NewRowError(
			5,
			"Invalid postcode: %q - expected a UK postcode, or an \"X\" for "+
				"donors without a UK postcode.",
			fields[4],
		)
	}

	declarationDate, err := ParseUKDate(strings.TrimSpace(fields[5]))
	if err != nil {
		return DeclarationRow{}, NewRowError(
			6,
			"Error parsing date %q, expected date of the form dd/mm/yyyy or dd/mm/yy.",
			fields[5],
		)
	}

	validFourYearsBefore, err := parseScheduleBoolean(strings.TrimSpace(fields[6]))
	if err != nil {
		return DeclarationRow{}, NewRowError(
			7,
			"Error parsing \"Valid Four Years Before Day of Declaration\" value, "+
				"was expecting either \"1\" if the declaration covers the four years "+
				"preceding the date the declaration was signed or \"0\" if it "+
				"doesn't, instead got %q.",
			fields[6],
		)
	}

	validDayOf, err := parseScheduleBoolean(strings.TrimSpace(fields[7]))
	if err != nil {
		return DeclarationRow{}, NewRowError(
			8,
			"Error parsing \"Valid Day of Declaration\" value, was expecting "+
				"either \"1\" if the declaration covers the date the declaration "+
				"was signed or \"0\" if it doesn't, instead got %q.",
			fields[7],
		)
	}

	validAfterDayOf, err := parseScheduleBoolean(strings.TrimSpace(fields[8]))
	if err != nil {
		return DeclarationRow{}, NewRowError(
			9,
			"Error parsing \"Valid After Day of Declaration\" value, was "+
				"expecting either \"1\" if the declaration is valid for days "+
				"following the date the declaration was signed or \"0\" if it "+
				"isn't, instead got %q.",
			fields[8],
		)
	}

	identifier := strings.TrimSpace(fields[9])
	if identifier == "" {
		return DeclarationRow{}, NewRowError(
			10,
			"No identifier provided - please consult the README for information "+
				"about the value you need to provide in this column.",
		)
	}

	return DeclarationRow{
		Title:                           title,
		FirstName:                       firstName,
		LastName:                        lastName,
		HouseNumberOrName:               houseNumberOrName,
		Postcode:                        postcode,
		DeclarationDate:                 declarationDate,
		ValidFourYearsBeforeDeclaration: validFourYearsBefore,
		ValidDayOfDeclaration:           validDayOf,
		ValidAfterDayOfDeclaration:      validAfterDayOf,
		Identifier:                      identifier,
	}, nil
}

var expectedDeclarationHeaders = []string{
	"Title",
	"First Name",
	"Last Name",
	"House Number or Name",
	"Postcode",
	"Date",
	"Valid Four Years Before Day of Declaration",
	"Valid Day of Declaration",
	"Valid After Day of Declaration",
	"Identifier",
}

// ParseDeclarationsFile reads and validates the whole declarations file.
// As with the transactions file, any structural or row-level problem aborts
// the run: declaration data feeds legal donor records, and a partial or
// garbled record must never reach the schedule.
func ParseDeclarationsFile(path string) ([]DeclarationRow, error) {
	records, err := readCSVFile(path, "declarations")
	if err != nil {
		return nil, err
	}

	if err := checkHeaderRow(records[0], expectedDeclarationHeaders, path); err != nil {
		return nil, err
	}

	var declarations []DeclarationRow
	for i, fields := range records[1:] {
		rowIndex := i + 2
		row, err := ParseDeclarationRow(fields)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				return nil, rowErr.Locate(rowIndex, filepath.Base(path))
			}
			return nil, err
		}
		declarations = append(declarations, row)
	}
	return declarations, nil
}
