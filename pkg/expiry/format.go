package expiry

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "3:04 PM"
)

// FormatDate renders t as "Apr 24, 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatPickupWindow renders "Apr 24, 2025, 9:00 AM - 5:30 PM". The date
// is taken from from only.
func FormatPickupWindow(from, until time.Time) string {
	if from.IsZero() || until.IsZero() {
		return ""
	}
	return from.Format(dateLayout) + ", " + from.Format(timeLayout) + " - " + until.Format(timeLayout)
}

// ShortAddress is the first comma-separated segment of an address.
func ShortAddress(address string) string {
	head, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(head)
}

// Initial is the upper-cased first letter used as an image placeholder.
func Initial(name string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if size == 0 {
		return ""
	}
	return strings.ToUpper(string(r))
}
