// =============================================================================
// Gift Aid Schedule Builder - Schedule Spreadsheet Writer
// =============================================================================
//
// This module fills in the HMRC gift aid schedule spreadsheet. A blank
// schedule template (one per spreadsheet flavour) is copied into the run
// directory, sanity-checked against the layout HMRC publishes, and then
// populated: the earliest donation date goes into the claim-period cell, and
// each claimable donation takes one row of the claim table.
//
// The layout checks matter because HMRC revises the template occasionally;
// writing donations into a template whose cells have moved would produce a
// schedule that looks complete but claims nothing.
//
// =============================================================================

package xlsx

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/panthas05/gift-aid-schedule-builder/internal/schedule"
	"github.com/panthas05/gift-aid-schedule-builder/pkg/utils"
)

// Flavour selects which blank schedule template to fill in. HMRC publishes
// one spreadsheet for Excel users and one for LibreOffice users.
type Flavour string

const (
	FlavourExcel Flavour = "excel"
	FlavourLibre Flavour = "libre"
)

// ParseFlavour validates a flavour string from the CLI or config file.
func ParseFlavour(s string) (Flavour, error) {
	switch Flavour(s) {
	case FlavourExcel, FlavourLibre:
		return Flavour(s), nil
	}
	return "", fmt.Errorf(
		"unexpected spreadsheet type %q, expected either \"excel\" or \"libre\"", s,
	)
}

// TemplateFileName is the name of the blank schedule for this flavour, both
// in the templates directory and in the run directory.
func (f Flavour) TemplateFileName() string {
	return fmt.Sprintf("gift_aid_schedule__%s_.xlsx", string(f))
}

// Claim-table geometry of the R68GAD schedule.
const (
	earliestDateDescriptionCell = "D12"
	earliestDateInputCell       = "D13"

	// FirstTableRow is the spreadsheet row of the first claim-table
	// entry; donation n lands on row FirstTableRow+n-1.
	FirstTableRow = 25

	headerRow = 23
)

const expectedEarliestDateDescription = "Earliest donation date in the period of claim. (DD/MM/YY)"

// expectedTableHeaders are the claim-table headers in columns B..K of the
// header row.
var expectedTableHeaders = []string{
	"Item",
	"Title",
	"First name",
	"Last name",
	"House name or number",
	"Postcode",
	"Aggregated donations",
	"Sponsored event",
	"Donation date",
	"Amount",
}

// Cell number formats used when populating the schedule.
const (
	dateNumberFormat   = "dd/mm/yy"
	amountNumberFormat = "#,##0.00"
)

// WriteSchedule copies the blank template to outputPath, verifies the
// workbook still has the layout we expect, and writes the donations into the
// claim table. With no donations the copied template is left blank.
func WriteSchedule(
	templatePath string,
	outputPath string,
	donations []schedule.GiftAidableTransaction,
) error {
	if err := utils.CopyFile(templatePath, outputPath); err != nil {
		return err
	}

	workbook, err := excelize.OpenFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open schedule %s: %w", outputPath, err)
	}
	defer workbook.Close()

	sheet, err := checkWorkbook(workbook)
	if err != nil {
		return err
	}

	if len(donations) == 0 {
		return nil
	}

	if err := writeDonations(workbook, sheet, donations); err != nil {
		return err
	}
	if err := workbook.Save(); err != nil {
		return fmt.Errorf("failed to save schedule %s: %w", outputPath, err)
	}
	return nil
}

// checkWorkbook verifies the copied template still looks like the R68GAD
// schedule, returning the name of its single worksheet.
func checkWorkbook(workbook *excelize.File) (string, error) {
	sheets := workbook.GetSheetList()
	if len(sheets) != 1 {
		return "", fmt.Errorf(
			"expected there to be only one worksheet in the xlsx file - "+
				"instead found %d", len(sheets),
		)
	}
	sheet := sheets[0]

	description, err := workbook.GetCellValue(sheet, earliestDateDescriptionCell)
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", earliestDateDescriptionCell, err)
	}
	if description != expectedEarliestDateDescription {
		return "", fmt.Errorf(
			"didn't find expected earliest donation date description in cell "+
				"%s (for earliest donation date to be inserted into cell %s) - "+
				"expected to find %q, instead got %q",
			earliestDateDescriptionCell, earliestDateInputCell,
			expectedEarliestDateDescription, description,
		)
	}

	for i, expected := range expectedTableHeaders {
		cell, err := excelize.CoordinatesToCellName(2+i, headerRow)
		if err != nil {
			return "", err
		}
		header, err := workbook.GetCellValue(sheet, cell)
		if err != nil {
			return "", fmt.Errorf("failed to read cell %s: %w", cell, err)
		}
		if header != expected {
			return "", fmt.Errorf(
				"didn't find expected claim-table header in cell %s: "+
					"expected %q, got %q", cell, expected, header,
			)
		}
	}
	return sheet, nil
}

// writeDonations fills in the earliest donation date and one claim-table row
// per donation.
func writeDonations(
	workbook *excelize.File,
	sheet string,
	donations []schedule.GiftAidableTransaction,
) error {
	dateFormat := dateNumberFormat
	dateStyle, err := workbook.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("failed to build date style: %w", err)
	}
	amountFormat := amountNumberFormat
	amountStyle, err := workbook.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	if err != nil {
		return fmt.Errorf("failed to build amount style: %w", err)
	}

	// Donations are in input order, so the first one carries the earliest
	// transaction date of the claim period.
	if err := setDateCell(
		workbook, sheet, earliestDateInputCell,
		donations[0].TransactionDate, dateStyle,
	); err != nil {
		return err
	}

	for i, donation := range donations {
		rowIndex := FirstTableRow + i

		if declaration := donation.Declaration; declaration != nil {
			donorCells := map[string]string{
				"C": declaration.Title,
				"D": declaration.FirstName,
				"E": declaration.LastName,
				"F": declaration.HouseNumberOrName,
				"G": declaration.Postcode,
			}
			for column, value := range donorCells {
				cell := fmt.Sprintf("%s%d", column, rowIndex)
				if err := workbook.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("failed to write cell %s: %w", cell, err)
				}
			}
		}

		dateCell := fmt.Sprintf("J%d", rowIndex)
		if err := setDateCell(
			workbook, sheet, dateCell, donation.TransactionDate, dateStyle,
		); err != nil {
			return err
		}

		amountCell := fmt.Sprintf("K%d", rowIndex)
		amount, _ := donation.Amount.Float64()
		if err := workbook.SetCellValue(sheet, amountCell, amount); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", amountCell, err)
		}
		if err := workbook.SetCellStyle(sheet, amountCell, amountCell, amountStyle); err != nil {
			return fmt.Errorf("failed to style cell %s: %w", amountCell, err)
		}
	}
	return nil
}

func setDateCell(
	workbook *excelize.File,
	sheet string,
	cell string,
	date time.Time,
	styleID int,
) error {
	if err := workbook.SetCellValue(sheet, cell, date); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	if err := workbook.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("failed to style cell %s: %w", cell, err)
	}
	return nil
}
