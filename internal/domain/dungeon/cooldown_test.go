package dungeon

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestCheckCooldown(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cooldown := time.Hour

	tests := []struct {
		name          string
		lastCheck     *time.Time
		wantAllowed   bool
		wantRemaining time.Duration
	}{
		{
			name:        "never rolled",
			lastCheck:   nil,
			wantAllowed: true,
		},
		{
			name:        "cooldown passed",
			lastCheck:   timePtr(now.Add(-cooldown - time.Second)),
			wantAllowed: true,
		},
		{
			name:        "exactly at cooldown",
			lastCheck:   timePtr(now.Add(-cooldown)),
			wantAllowed: true,
		},
		{
			name:          "rolled a second ago",
			lastCheck:     timePtr(now.Add(-time.Second)),
			wantAllowed:   false,
			wantRemaining: cooldown - time.Second,
		},
		{
			name:        "last check in the future",
			lastCheck:   timePtr(now.Add(10 * time.Minute)),
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCooldown(tt.lastCheck, cooldown, now)
			if got.Allowed != tt.wantAllowed {
				t.Fatalf("CheckCooldown() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if got.Remaining != tt.wantRemaining {
				t.Errorf("CheckCooldown() remaining = %v, want %v", got.Remaining, tt.wantRemaining)
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{time.Hour - time.Second, "00:59:59"},
		{time.Hour - time.Second + 999*time.Millisecond, "00:59:59"},
		{90 * time.Minute, "01:30:00"},
		{26*time.Hour + 5*time.Second, "26:00:05"},
		{0, "00:00:00"},
		{-time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatRemaining(tt.in); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
