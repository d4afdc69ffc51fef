package types

import (
	"fmt"
	"math"
	"time"
)

// ExpiryTier classifies how urgently a quote's expiry should be surfaced.
type ExpiryTier string

const (
	ExpiryNeutral  ExpiryTier = "neutral"
	ExpiryAmber    ExpiryTier = "amber"
	ExpiryImminent ExpiryTier = "red-imminent"
	ExpiryToday    ExpiryTier = "red-today"
	ExpiryExpired  ExpiryTier = "expired"
)

// DaysRemaining returns the whole-day difference between the expiry date and
// now, comparing local calendar days in loc rather than elapsed wall-clock
// time: two timestamps on the same local calendar day always yield 0.
func DaysRemaining(now, expiresAt time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	today := midnight(now.In(loc))
	expiry := midnight(expiresAt.In(loc))
	// Round, don't truncate: a DST transition makes the midnight-to-midnight
	// gap 23h or 25h, and 23/24 truncated would put "tomorrow" at 0 days.
	return int(math.Round(expiry.Sub(today).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClassifyExpiry maps days remaining to the banner tier. Thresholds are
// inclusive: 7 days is amber, 3 days is amber, 2 and 1 are imminent.
func ClassifyExpiry(daysRemaining int) ExpiryTier {
	switch {
	case daysRemaining > 7:
		return ExpiryNeutral
	case daysRemaining >= 3:
		return ExpiryAmber
	case daysRemaining >= 1:
		return ExpiryImminent
	case daysRemaining == 0:
		return ExpiryToday
	default:
		return ExpiryExpired
	}
}

// ExpiryBanner is the tier plus the copy the viewer sees.
type ExpiryBanner struct {
	Tier          ExpiryTier `json:"tier"`
	DaysRemaining int        `json:"days_remaining"`
	Message       string     `json:"message"`
}

// BuildExpiryBanner produces the banner for a quote given its validity window.
// Dates are rendered short ("Jan 15") while the quote is open; the expired
// message spells the full date the way the public quote page does.
func BuildExpiryBanner(now, expiresAt time.Time, validityDays int, loc *time.Location) ExpiryBanner {
	days := DaysRemaining(now, expiresAt, loc)
	tier := ClassifyExpiry(days)
	short := expiresAt.In(locOrLocal(loc)).Format("Jan 2")
	long := expiresAt.In(locOrLocal(loc)).Format("January 2, 2006")

	var msg string
	switch tier {
	case ExpiryNeutral:
		msg = fmt.Sprintf("Valid for %d days · Expires %s", validityDays, short)
	case ExpiryAmber:
		msg = fmt.Sprintf("Expires in %d days — %s", days, short)
	case ExpiryImminent:
		if days == 1 {
			msg = "Expires tomorrow — accept today"
		} else {
			msg = fmt.Sprintf("Expires in %d days — accept today", days)
		}
	case ExpiryToday:
		msg = "Expires today — accept now"
	case ExpiryExpired:
		msg = fmt.Sprintf("Expired on %s", long)
	}

	return ExpiryBanner{Tier: tier, DaysRemaining: days, Message: msg}
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// MonthStart returns the first instant of t's calendar month in UTC. The
// free-tier quota counts quotes created on or after this instant.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
