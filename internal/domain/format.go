package domain

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display formats shared by list views and concurrency diffs.
const (
	ShortDateLayout = "1/2/2006"
	ISODateLayout   = "2006-01-02"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount as "$1,234.50" ("-$5.00" for negatives).
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("$%.2f", math.Abs(amount))
	}
	return printer.Sprintf("$%.2f", amount)
}

// FormatShortDate renders a date without time, e.g. "1/10/2024".
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ShortDateLayout)
}

// FormatBool renders a flag for display.
func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
