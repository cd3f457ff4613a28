package dungeon

import (
	"fmt"
	"time"
)

const DefaultCooldown = time.Hour

type CooldownDecision struct {
	Allowed   bool
	Remaining time.Duration
}

// CheckCooldown reports whether a user whose last attempt was at lastCheck may roll at now.
// A last check in the future is treated as allowed so a bad timestamp cannot lock a user out.
func CheckCooldown(lastCheck *time.Time, cooldown time.Duration, now time.Time) CooldownDecision {
	if lastCheck == nil {
		return CooldownDecision{Allowed: true}
	}

	elapsed := now.Sub(*lastCheck)
	if elapsed < 0 || elapsed >= cooldown {
		return CooldownDecision{Allowed: true}
	}

	return CooldownDecision{Remaining: lastCheck.Add(cooldown).Sub(now)}
}

// FormatRemaining renders d as HH:MM:SS, dropping fractional seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
