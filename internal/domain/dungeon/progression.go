package dungeon

import (
	"fmt"
	"sort"
)

// LevelTable is the ordered threshold table.
type LevelTable struct {
	byLevel  map[int]int64
	maxLevel int
}

func NewLevelTable(thresholds []Threshold) (*LevelTable, error) {
	sorted := make([]Threshold, len(thresholds))
	copy(sorted, thresholds)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	t := &LevelTable{byLevel: make(map[int]int64, len(sorted))}
	for i, th := range sorted {
		if th.Level < 1 {
			return nil, fmt.Errorf("invalid level %d in threshold table", th.Level)
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Level == th.Level {
				return nil, fmt.Errorf("duplicate threshold for level %d", th.Level)
			}
			if th.TotalExp <= prev.TotalExp {
				return nil, fmt.Errorf("threshold for level %d (%d) is not above level %d (%d)",
					th.Level, th.TotalExp, prev.Level, prev.TotalExp)
			}
		}
		t.byLevel[th.Level] = th.TotalExp
		t.maxLevel = th.Level
	}
	return t, nil
}

func (t *LevelTable) Threshold(level int) (int64, bool) {
	exp, ok := t.byLevel[level]
	return exp, ok
}

func (t *LevelTable) MaxLevel() int {
	return t.maxLevel
}

func (t *LevelTable) Thresholds() []Threshold {
	out := make([]Threshold, 0, len(t.byLevel))
	for level, exp := range t.byLevel {
		out = append(out, Threshold{Level: level, TotalExp: exp})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}

// Next returns the threshold of the level after level, if one exists.
func (t *LevelTable) Next(level int) *Threshold {
	exp, ok := t.byLevel[level+1]
	if !ok {
		return nil
	}
	return &Threshold{Level: level + 1, TotalExp: exp}
}

// ApplyDelta adds delta to the user's experience. Totals are not clamped at zero.
func ApplyDelta(u *User, delta int64) {
	u.TotalExp += delta
}

// ResolveLevelChange moves the user's level until it matches their experience.
// Level 1 is a floor. A missing next level is the cap; a missing current level is an error.
func ResolveLevelChange(u *User, table *LevelTable) (*LevelTransition, error) {
	from := u.CurrentLevel
	if u.CurrentLevel < 1 {
		u.CurrentLevel = 1
	}

	for {
		next, ok := table.Threshold(u.CurrentLevel + 1)
		if ok && u.TotalExp >= next {
			u.CurrentLevel++
			continue
		}
		break
	}

	for u.CurrentLevel > 1 {
		current, ok := table.Threshold(u.CurrentLevel)
		if !ok {
			return nil, fmt.Errorf("level %d: %w", u.CurrentLevel, ErrThresholdNotFound)
		}
		if u.TotalExp >= current {
			break
		}
		u.CurrentLevel--
	}

	if u.CurrentLevel == from {
		return nil, nil
	}
	return &LevelTransition{From: from, To: u.CurrentLevel}, nil
}
