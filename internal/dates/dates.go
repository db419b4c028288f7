// Package dates converts calendar dates between the machine form submitted
// by HTML date inputs ("2006-01-02") and the display form the task store
// keeps ("January 2, 2006").
package dates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a submitted date does not split into three
// dash-separated parts.
var ErrMalformed = errors.New("malformed date")

// monthNames maps the month codes "01".."11" to their English names. "12"
// is intentionally absent: any code not listed here, including "12", falls
// through to December. Long-standing quirk of the date selector, kept as is.
var monthNames = map[string]string{
	"01": "January",
	"02": "February",
	"03": "March",
	"04": "April",
	"05": "May",
	"06": "June",
	"07": "July",
	"08": "August",
	"09": "September",
	"10": "October",
	"11": "November",
}

// Display converts a "YYYY-MM-DD" value to the canonical display string
// "<MonthName> <Day>, <Year>" with the day's leading zero trimmed.
// It fails only when the value does not split into three dash-separated
// parts; month codes it does not recognize become December.
func Display(value string) (string, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q, want YYYY-MM-DD", ErrMalformed, value)
	}

	year, month, day := parts[0], parts[1], parts[2]

	name, ok := monthNames[month]
	if !ok {
		name = "December"
	}

	day = strings.TrimPrefix(day, "0")

	return fmt.Sprintf("%s %s, %s", name, day, year), nil
}
