package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerivePresenceOnlineWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

	last := now.Add(-119 * time.Second)
	p := DerivePresence(&last, now)
	assert.Equal(t, PresenceOnline, p.State)

	last = now.Add(-181 * time.Second)
	p = DerivePresence(&last, now)
	assert.NotEqual(t, PresenceOnline, p.State)
	assert.Equal(t, "today", p.Label)
}

func TestDerivePresenceBands(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		elapsed time.Duration
		label   string
	}{
		{"same day", 5 * time.Hour, "today"},
		{"one day", 30 * time.Hour, "yesterday"},
		{"three days", 3*24*time.Hour + time.Hour, "3 days ago"},
		{"six days", 6*24*time.Hour + time.Hour, "6 days ago"},
		{"one week", 8 * 24 * time.Hour, "weeks ago"},
		{"four weeks", 29 * 24 * time.Hour, "weeks ago"},
		{"one month", 45 * 24 * time.Hour, "1 month ago"},
		{"two months", 61 * 24 * time.Hour, "long ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			last := now.Add(-tc.elapsed)
			p := DerivePresence(&last, now)
			assert.Equal(t, PresenceRecent, p.State)
			assert.Equal(t, tc.label, p.Label)
		})
	}
}

func TestDerivePresenceUnknown(t *testing.T) {
	p := DerivePresence(nil, time.Now())
	assert.Equal(t, PresenceUnknown, p.State)
}
