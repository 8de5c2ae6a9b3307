package parsing

import (
	"fmt"
	"time"
)

// ParseUKDate parses a UK-formatted date string: day/month/4-digit-year
// first, falling back to day/month/2-digit-year. No other formats are
// accepted. Single-digit days and months are fine ("27/2/1997").
func ParseUKDate(dateString string) (time.Time, error) {
	if d, err := time.Parse("2/1/2006", dateString); err == nil {
		return d, nil
	}
	d, err := time.Parse("2/1/06", dateString)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"%q is not a date of the form dd/mm/yyyy or dd/mm/yy", dateString,
		)
	}
	return d, nil
}
