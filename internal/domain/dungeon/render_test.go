package dungeon

import (
	"reflect"
	"testing"
	"time"
)

func TestRenderAttempt(t *testing.T) {
	player := Player{ID: "1", DisplayName: "Ayla"}

	tests := []struct {
		name   string
		result AttemptResult
		want   []string
	}{
		{
			name:   "on cooldown",
			result: AttemptResult{Player: player, Remaining: 59*time.Minute + 59*time.Second + 500*time.Millisecond},
			want:   []string{"Ayla | You have already entered the dungeon recently, 00:59:59 left until you can enter again! ⌛"},
		},
		{
			name: "gain",
			result: AttemptResult{
				Player:    player,
				Allowed:   true,
				Roll:      Roll{Outcome: OutcomePositive, Magnitude: 40, Delta: 42},
				Encounter: "You found a chest",
			},
			want: []string{"Ayla | You found a chest | Experience Gained: 42 💎"},
		},
		{
			name: "loss with level down",
			result: AttemptResult{
				Player:     player,
				Allowed:    true,
				Roll:       Roll{Outcome: OutcomeNegative, Magnitude: 20, Delta: -21},
				Encounter:  "A goblin stole your purse",
				Transition: &LevelTransition{From: 3, To: 2},
			},
			want: []string{
				"Ayla | A goblin stole your purse | Experience Lost: 21 😔",
				"Ayla | You lost too much exp and leveled down. Your Level now is 2 😔",
			},
		},
		{
			name: "gain with level up",
			result: AttemptResult{
				Player:     player,
				Allowed:    true,
				Roll:       Roll{Outcome: OutcomePositive, Magnitude: 69, Delta: 69},
				Encounter:  "You slayed a dragon",
				Transition: &LevelTransition{From: 1, To: 2},
			},
			want: []string{
				"Ayla | You slayed a dragon | Experience Gained: 69 💎",
				"Ayla | You gained enough exp to level up! Your Level now is 2 💎",
			},
		},
		{
			name:   "neutral",
			result: AttemptResult{Player: player, Allowed: true, Roll: Roll{Outcome: OutcomeNeutral}},
			want:   []string{"Ayla | No Experience Gained 😔"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderAttempt(&tt.result); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RenderAttempt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderStatus(t *testing.T) {
	player := Player{ID: "1", DisplayName: "Ayla"}

	got := RenderStatus(&StatusReport{
		Player:        player,
		User:          User{TotalExp: 120, CurrentLevel: 2},
		NextThreshold: &Threshold{Level: 3, TotalExp: 250},
	})
	want := "Ayla | You are currently Level 2. Total Exp: 120 EXP ⚔️\nTo achieve Level 3 you need: 250."
	if got != want {
		t.Errorf("RenderStatus() = %q, want %q", got, want)
	}

	got = RenderStatus(&StatusReport{Player: player, User: User{TotalExp: 9000, CurrentLevel: 10}})
	want = "Ayla | You are currently Level 10. Total Exp: 9000 EXP ⚔️\nYou have reached the highest level."
	if got != want {
		t.Errorf("RenderStatus() at cap = %q, want %q", got, want)
	}
}

func TestRenderLevels(t *testing.T) {
	got := RenderLevels([]Threshold{{Level: 1, TotalExp: 0}, {Level: 2, TotalExp: 100}})
	want := "```md\n* Level 1   0 EXP\n* Level 2   100 EXP\n```"
	if got != want {
		t.Errorf("RenderLevels() = %q, want %q", got, want)
	}
}
