// Package expiry turns raw timestamps into the urgency tiers, remaining-time
// labels and progress values shown next to food items and donations.
//
// Every function is pure and takes "now" explicitly, so results must be
// recomputed on each read rather than stored.
package expiry

import (
	"fmt"
	"time"
)

type Tier string

const (
	TierExpired  Tier = "expired"
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierSafe     Tier = "safe"
	TierUnknown  Tier = "unknown"
)

// Urgency ranks tiers, higher is more urgent. Unknown ranks below safe.
func (t Tier) Urgency() int {
	switch t {
	case TierExpired:
		return 4
	case TierCritical:
		return 3
	case TierWarning:
		return 2
	case TierSafe:
		return 1
	default:
		return 0
	}
}

// Thresholds is an inclusive day-cutoff table. Today is the cutoff below
// which a badge reads "Today"; a negative value disables it.
type Thresholds struct {
	Name     string
	Today    int
	Critical int
	Warning  int
}

var (
	// InventoryThresholds drives list status and dashboard counts.
	InventoryThresholds = Thresholds{Name: "inventory", Today: -1, Critical: 2, Warning: 5}

	// BadgeThresholds drives the badge shown on manually entered items.
	BadgeThresholds = Thresholds{Name: "badge", Today: 1, Critical: 3, Warning: 7}
)

// Preset looks a threshold table up by name.
func Preset(name string) (Thresholds, bool) {
	switch name {
	case InventoryThresholds.Name:
		return InventoryThresholds, true
	case BadgeThresholds.Name:
		return BadgeThresholds, true
	}
	return Thresholds{}, false
}

const day = 24 * time.Hour

// DaysUntil counts calendar days from now's midnight to expiry's midnight,
// both taken in now's location. The value only changes when the date does.
func DaysUntil(expiry, now time.Time) int {
	loc := now.Location()
	e := civilDate(expiry.In(loc))
	n := civilDate(now)
	return int(e.Sub(n) / day)
}

// civilDate maps t's local calendar date onto UTC midnight so that date
// differences are exact multiples of 24h regardless of DST.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify applies th to a day count. First match wins.
func Classify(daysLeft int, th Thresholds) Tier {
	switch {
	case daysLeft < 0:
		return TierExpired
	case daysLeft <= th.Critical:
		return TierCritical
	case daysLeft <= th.Warning:
		return TierWarning
	default:
		return TierSafe
	}
}

// ClassifyDate is Classify(DaysUntil(expiry, now)) with a zero expiry
// reported as unknown.
func ClassifyDate(expiry, now time.Time, th Thresholds) Tier {
	if expiry.IsZero() || now.IsZero() {
		return TierUnknown
	}
	return Classify(DaysUntil(expiry, now), th)
}

type BadgeInfo struct {
	Tier     Tier
	Text     string
	DaysLeft int
}

func Badge(expiry, now time.Time, th Thresholds) BadgeInfo {
	if expiry.IsZero() || now.IsZero() {
		return BadgeInfo{Tier: TierUnknown, Text: "Unknown"}
	}
	days := DaysUntil(expiry, now)
	info := BadgeInfo{Tier: Classify(days, th), DaysLeft: days}
	switch {
	case info.Tier == TierExpired:
		info.Text = "Expired"
	case days <= th.Today:
		info.Text = "Today"
	default:
		info.Text = fmt.Sprintf("%d %s", days, plural(days, "day"))
	}
	return info
}

// ExpiresToday reports whether expiry falls on now's calendar date.
func ExpiresToday(expiry, now time.Time) bool {
	if expiry.IsZero() {
		return false
	}
	return DaysUntil(expiry, now) == 0
}

// RemainingLabel renders the raw time left until until at minute, hour or
// day resolution. It does not normalize to midnight.
func RemainingLabel(until, now time.Time) string {
	if until.IsZero() || now.IsZero() {
		return ""
	}
	diff := until.Sub(now)
	if diff < 0 {
		return "Expired"
	}
	mins := int(diff / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%d %s left", mins, plural(mins, "min"))
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d %s left", hours, plural(hours, "hour"))
	}
	days := hours / 24
	return fmt.Sprintf("%d %s left", days, plural(days, "day"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// ProgressFraction is the elapsed share of [start, end] at now, clamped to
// [0, 1]. A window that is empty or inverted reports 0.
func ProgressFraction(now, start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	f := float64(now.Sub(start)) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// UrgentWindow is how close to the end of an availability window a
// donation is flagged urgent.
const UrgentWindow = 3 * time.Hour

func IsUrgent(until, now time.Time) bool {
	return !until.IsZero() && until.Sub(now) < UrgentWindow
}

// WindowTier classifies an availability window at sub-day resolution:
// past is expired, inside UrgentWindow is critical, inside a day is a
// warning.
func WindowTier(until, now time.Time) Tier {
	if until.IsZero() || now.IsZero() {
		return TierUnknown
	}
	left := until.Sub(now)
	switch {
	case left < 0:
		return TierExpired
	case left < UrgentWindow:
		return TierCritical
	case left < day:
		return TierWarning
	default:
		return TierSafe
	}
}
