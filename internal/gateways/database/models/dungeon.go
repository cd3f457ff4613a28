package models

import (
	"time"

	"github.com/uptrace/bun"
)

type DungeonUser struct {
	bun.BaseModel `bun:"table:dungeon_users,alias:du"`

	UserID       string     `bun:"user_id,pk,type:text"`
	TotalExp     int64      `bun:"total_exp,notnull,default:0"`
	CurrentLevel int        `bun:"current_level,notnull,default:1"`
	LastCheck    *time.Time `bun:"last_check"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

type DungeonLevel struct {
	bun.BaseModel `bun:"table:dungeon_levels,alias:dl"`

	Level    int   `bun:"level,pk"`
	TotalExp int64 `bun:"total_exp,notnull"`
}

type PositiveEncounter struct {
	bun.BaseModel `bun:"table:dungeon_encounters_pos,alias:dep"`

	ID      int64  `bun:"id,pk,autoincrement"`
	Message string `bun:"message,notnull,type:text"`
}

type NegativeEncounter struct {
	bun.BaseModel `bun:"table:dungeon_encounters_neg,alias:den"`

	ID      int64  `bun:"id,pk,autoincrement"`
	Message string `bun:"message,notnull,type:text"`
}

// Tables lists every model in creation order.
var Tables = []interface{}{
	(*DungeonUser)(nil),
	(*DungeonLevel)(nil),
	(*PositiveEncounter)(nil),
	(*NegativeEncounter)(nil),
}
