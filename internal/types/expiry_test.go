package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var kingston = time.FixedZone("EST", -5*60*60)

func TestClassifyExpiry(t *testing.T) {
	tests := []struct {
		days int
		want ExpiryTier
	}{
		{days: 30, want: ExpiryNeutral},
		{days: 8, want: ExpiryNeutral},
		{days: 7, want: ExpiryAmber},
		{days: 5, want: ExpiryAmber},
		{days: 3, want: ExpiryAmber},
		{days: 2, want: ExpiryImminent},
		{days: 1, want: ExpiryImminent},
		{days: 0, want: ExpiryToday},
		{days: -1, want: ExpiryExpired},
		{days: -30, want: ExpiryExpired},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyExpiry(tt.days), "days=%d", tt.days)
	}
}

func TestDaysRemaining_CalendarDays(t *testing.T) {
	// Expiry just before midnight; "now" at various hours of the same local
	// calendar day must all report zero days remaining.
	expiry := time.Date(2026, time.March, 10, 23, 59, 0, 0, kingston)

	for _, hour := range []int{0, 9, 15, 23} {
		now := time.Date(2026, time.March, 10, hour, 0, 0, 0, kingston)
		assert.Equal(t, 0, DaysRemaining(now, expiry, kingston), "hour=%d", hour)
	}

	// Elapsed time under 24h but crossing a local midnight is one day.
	now := time.Date(2026, time.March, 9, 23, 30, 0, 0, kingston)
	assert.Equal(t, 1, DaysRemaining(now, expiry, kingston))

	// The day after expiry is negative regardless of hour.
	now = time.Date(2026, time.March, 11, 0, 30, 0, 0, kingston)
	assert.Equal(t, -1, DaysRemaining(now, expiry, kingston))
}

func TestDaysRemaining_DSTTransition(t *testing.T) {
	// US Eastern springs forward 2am Mar 8 2026, so the midnight-to-midnight
	// gap across that day is 23 hours. Day counts must stay calendar days.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	now := time.Date(2026, time.March, 8, 12, 0, 0, 0, ny)
	expiry := time.Date(2026, time.March, 9, 12, 0, 0, 0, ny)
	assert.Equal(t, 1, DaysRemaining(now, expiry, ny))

	// Viewed the day after the transition, a quote that expired on the
	// transition day is one day past expiry, not still current.
	now = time.Date(2026, time.March, 9, 12, 0, 0, 0, ny)
	expiry = time.Date(2026, time.March, 8, 23, 0, 0, 0, ny)
	assert.Equal(t, -1, DaysRemaining(now, expiry, ny))

	// Fall back (Nov 1 2026) stretches the gap to 25 hours.
	now = time.Date(2026, time.November, 1, 12, 0, 0, 0, ny)
	expiry = time.Date(2026, time.November, 2, 12, 0, 0, 0, ny)
	assert.Equal(t, 1, DaysRemaining(now, expiry, ny))
}

func TestBuildExpiryBanner(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, kingston)

	tests := []struct {
		name     string
		expires  time.Time
		wantTier ExpiryTier
		wantMsg  string
	}{
		{
			name:     "neutral includes validity and date",
			expires:  time.Date(2026, time.March, 24, 12, 0, 0, 0, kingston),
			wantTier: ExpiryNeutral,
			wantMsg:  "Valid for 14 days · Expires Mar 24",
		},
		{
			name:     "amber counts down",
			expires:  time.Date(2026, time.March, 15, 12, 0, 0, 0, kingston),
			wantTier: ExpiryAmber,
			wantMsg:  "Expires in 5 days — Mar 15",
		},
		{
			name:     "tomorrow",
			expires:  time.Date(2026, time.March, 11, 12, 0, 0, 0, kingston),
			wantTier: ExpiryImminent,
			wantMsg:  "Expires tomorrow — accept today",
		},
		{
			name:     "two days",
			expires:  time.Date(2026, time.March, 12, 12, 0, 0, 0, kingston),
			wantTier: ExpiryImminent,
			wantMsg:  "Expires in 2 days — accept today",
		},
		{
			name:     "today",
			expires:  time.Date(2026, time.March, 10, 23, 0, 0, 0, kingston),
			wantTier: ExpiryToday,
			wantMsg:  "Expires today — accept now",
		},
		{
			name:     "expired spells the full date",
			expires:  time.Date(2026, time.March, 8, 12, 0, 0, 0, kingston),
			wantTier: ExpiryExpired,
			wantMsg:  "Expired on March 8, 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banner := BuildExpiryBanner(now, tt.expires, 14, kingston)
			assert.Equal(t, tt.wantTier, banner.Tier)
			assert.Equal(t, tt.wantMsg, banner.Message)
		})
	}
}

func TestMonthStart(t *testing.T) {
	ts := time.Date(2026, time.March, 18, 17, 45, 0, 0, kingston)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), MonthStart(ts))
}
