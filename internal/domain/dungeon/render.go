package dungeon

import (
	"fmt"
	"strings"
)

const GenericFailure = "Something went wrong in the dungeon. Please try again later."

// RenderAttempt returns the main reply followed by any level change notice.
func RenderAttempt(r *AttemptResult) []string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s | ", r.Player.DisplayName)

	if !r.Allowed {
		fmt.Fprintf(&msg, "You have already entered the dungeon recently, %s left until you can enter again! ⌛",
			FormatRemaining(r.Remaining))
		return []string{msg.String()}
	}

	switch {
	case r.Roll.Delta > 0:
		fmt.Fprintf(&msg, "%s | Experience Gained: %d 💎", r.Encounter, r.Roll.Delta)
	case r.Roll.Delta < 0:
		fmt.Fprintf(&msg, "%s | Experience Lost: %d 😔", r.Encounter, -r.Roll.Delta)
	default:
		msg.WriteString("No Experience Gained 😔")
	}

	replies := []string{msg.String()}
	if r.Transition != nil {
		replies = append(replies, RenderTransition(r.Player, *r.Transition))
	}
	return replies
}

func RenderTransition(p Player, t LevelTransition) string {
	if t.Up() {
		return fmt.Sprintf("%s | You gained enough exp to level up! Your Level now is %d 💎", p.DisplayName, t.To)
	}
	return fmt.Sprintf("%s | You lost too much exp and leveled down. Your Level now is %d 😔", p.DisplayName, t.To)
}

func RenderStatus(r *StatusReport) string {
	msg := fmt.Sprintf("%s | You are currently Level %d. Total Exp: %d EXP ⚔️\n",
		r.Player.DisplayName, r.User.CurrentLevel, r.User.TotalExp)
	if r.NextThreshold == nil {
		return msg + "You have reached the highest level."
	}
	return msg + fmt.Sprintf("To achieve Level %d you need: %d.", r.NextThreshold.Level, r.NextThreshold.TotalExp)
}

// RenderLevels formats a slice of the threshold table as a code block.
func RenderLevels(thresholds []Threshold) string {
	var b strings.Builder
	b.WriteString("```md\n")
	for _, th := range thresholds {
		fmt.Fprintf(&b, "* Level %-3d %d EXP\n", th.Level, th.TotalExp)
	}
	b.WriteString("```")
	return b.String()
}
