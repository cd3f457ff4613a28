package dungeon

import (
	"errors"
	"reflect"
	"testing"
)

var testThresholds = []Threshold{
	{Level: 1, TotalExp: 0},
	{Level: 2, TotalExp: 100},
	{Level: 3, TotalExp: 250},
	{Level: 4, TotalExp: 500},
	{Level: 5, TotalExp: 1000},
}

func mustLevelTable(t *testing.T, thresholds []Threshold) *LevelTable {
	t.Helper()
	table, err := NewLevelTable(thresholds)
	if err != nil {
		t.Fatalf("NewLevelTable() error = %v", err)
	}
	return table
}

func TestNewLevelTable(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []Threshold
		wantErr    bool
	}{
		{"ordered", testThresholds, false},
		{"unordered input", []Threshold{{2, 100}, {1, 0}, {3, 250}}, false},
		{"not increasing", []Threshold{{1, 0}, {2, 100}, {3, 100}}, true},
		{"duplicate level", []Threshold{{1, 0}, {1, 10}}, true},
		{"level zero", []Threshold{{0, 0}, {1, 10}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLevelTable(tt.thresholds)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLevelTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelTableNext(t *testing.T) {
	table := mustLevelTable(t, testThresholds)

	if got := table.Next(2); !reflect.DeepEqual(got, &Threshold{Level: 3, TotalExp: 250}) {
		t.Errorf("Next(2) = %+v", got)
	}
	if got := table.Next(5); got != nil {
		t.Errorf("Next(5) = %+v, want nil at the cap", got)
	}
	if got := table.MaxLevel(); got != 5 {
		t.Errorf("MaxLevel() = %d, want 5", got)
	}
	if got := table.Thresholds(); !reflect.DeepEqual(got, testThresholds) {
		t.Errorf("Thresholds() = %+v", got)
	}
}

func TestResolveLevelChange(t *testing.T) {
	table := mustLevelTable(t, testThresholds)

	tests := []struct {
		name      string
		user      User
		delta     int64
		wantLevel int
		want      *LevelTransition
	}{
		{
			name:      "crosses next threshold",
			user:      User{TotalExp: 249, CurrentLevel: 2},
			delta:     1,
			wantLevel: 3,
			want:      &LevelTransition{From: 2, To: 3},
		},
		{
			name:      "stays below next threshold",
			user:      User{TotalExp: 200, CurrentLevel: 2},
			delta:     49,
			wantLevel: 2,
		},
		{
			name:      "drops below current threshold",
			user:      User{TotalExp: 250, CurrentLevel: 3},
			delta:     -1,
			wantLevel: 2,
			want:      &LevelTransition{From: 3, To: 2},
		},
		{
			name:      "level one is a floor",
			user:      User{TotalExp: 10, CurrentLevel: 1},
			delta:     -500,
			wantLevel: 1,
		},
		{
			name:      "jumps several levels",
			user:      User{TotalExp: 90, CurrentLevel: 1},
			delta:     500,
			wantLevel: 4,
			want:      &LevelTransition{From: 1, To: 4},
		},
		{
			name:      "falls several levels",
			user:      User{TotalExp: 520, CurrentLevel: 4},
			delta:     -450,
			wantLevel: 1,
			want:      &LevelTransition{From: 4, To: 1},
		},
		{
			name:      "capped at highest level",
			user:      User{TotalExp: 990, CurrentLevel: 4},
			delta:     5000,
			wantLevel: 5,
			want:      &LevelTransition{From: 4, To: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			ApplyDelta(&user, tt.delta)
			if user.TotalExp != tt.user.TotalExp+tt.delta {
				t.Fatalf("ApplyDelta() total = %d", user.TotalExp)
			}

			got, err := ResolveLevelChange(&user, table)
			if err != nil {
				t.Fatalf("ResolveLevelChange() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveLevelChange() = %+v, want %+v", got, tt.want)
			}
			if user.CurrentLevel != tt.wantLevel {
				t.Errorf("CurrentLevel = %d, want %d", user.CurrentLevel, tt.wantLevel)
			}
		})
	}
}

func TestResolveLevelChangeNegativeTotalAtLevelOne(t *testing.T) {
	table := mustLevelTable(t, testThresholds)
	user := User{TotalExp: 0, CurrentLevel: 1}

	ApplyDelta(&user, -70)
	got, err := ResolveLevelChange(&user, table)
	if err != nil || got != nil {
		t.Fatalf("ResolveLevelChange() = %+v, %v", got, err)
	}
	if user.TotalExp != -70 || user.CurrentLevel != 1 {
		t.Errorf("user = %+v, want total -70 at level 1", user)
	}
}

func TestResolveLevelChangeMissingThreshold(t *testing.T) {
	table := mustLevelTable(t, []Threshold{{Level: 1, TotalExp: 0}, {Level: 2, TotalExp: 100}})
	user := User{TotalExp: 10, CurrentLevel: 7}

	_, err := ResolveLevelChange(&user, table)
	if !errors.Is(err, ErrThresholdNotFound) {
		t.Errorf("ResolveLevelChange() error = %v, want ErrThresholdNotFound", err)
	}
}

func TestLevelTransitionUp(t *testing.T) {
	if !(LevelTransition{From: 1, To: 2}).Up() {
		t.Error("1 -> 2 should be up")
	}
	if (LevelTransition{From: 3, To: 2}).Up() {
		t.Error("3 -> 2 should be down")
	}
}
