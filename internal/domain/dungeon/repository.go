package dungeon

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

import (
	"context"
	"time"
)

type Repository interface {
	// GetOrCreateUser returns the user's record, inserting defaults on first contact.
	GetOrCreateUser(ctx context.Context, userID string) (*User, error)
	UpdateProgress(ctx context.Context, userID string, totalExp int64, level int) error
	UpdateLastCheck(ctx context.Context, userID string, at time.Time) error
	ListThresholds(ctx context.Context) ([]Threshold, error)
	CountEncounters(ctx context.Context, table EncounterTable) (int, error)
	// GetEncounter returns the message at a zero-based position in the table.
	GetEncounter(ctx context.Context, table EncounterTable, position int) (string, error)
	// WithinUserTx runs fn against a repository bound to one transaction that holds the user's row.
	WithinUserTx(ctx context.Context, userID string, fn func(repo Repository) error) error
}
