package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/logger"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

const defaultTimeout = 10 * time.Second

type dungeonRepository struct {
	// root is nil when the repository is bound to a transaction.
	root     *bun.DB
	db       bun.IDB
	lockRows bool
}

var _ dungeon.Repository = &dungeonRepository{}

func NewDungeonRepository(db *bun.DB) *dungeonRepository {
	return &dungeonRepository{
		root: db,
		db:   db,
	}
}

func (r *dungeonRepository) GetOrCreateUser(ctx context.Context, userID string) (*dungeon.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	row := &models.DungeonUser{
		UserID:       userID,
		CurrentLevel: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ql := logger.NewQueryLogger("GetOrCreateUser", "INSERT INTO dungeon_users ON CONFLICT DO NOTHING", userID)
	res, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	ql.Log(err, rowsAffected(res))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", userID, err)
	}

	user := new(models.DungeonUser)
	q := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID)
	if r.lockRows {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s missing after create: %w", userID, err)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return toDomainUser(user), nil
}

func (r *dungeonRepository) UpdateProgress(ctx context.Context, userID string, totalExp int64, level int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("UpdateProgress", "UPDATE dungeon_users SET total_exp, current_level", userID, totalExp, level)
	res, err := r.db.NewUpdate().
		Model((*models.DungeonUser)(nil)).
		Set("total_exp = ?", totalExp).
		Set("current_level = ?", level).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Exec(ctx)
	affected := rowsAffected(res)
	ql.Log(err, affected)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to update progress: user %s not found", userID)
	}
	return nil
}

func (r *dungeonRepository) UpdateLastCheck(ctx context.Context, userID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("UpdateLastCheck", "UPDATE dungeon_users SET last_check", userID, at)
	res, err := r.db.NewUpdate().
		Model((*models.DungeonUser)(nil)).
		Set("last_check = ?", at.UTC()).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Exec(ctx)
	affected := rowsAffected(res)
	ql.Log(err, affected)
	if err != nil {
		return fmt.Errorf("failed to update last_check: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to update last_check: user %s not found", userID)
	}
	return nil
}

func (r *dungeonRepository) ListThresholds(ctx context.Context) ([]dungeon.Threshold, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var levels []models.DungeonLevel
	ql := logger.NewQueryLogger("ListThresholds", "SELECT dungeon_levels")
	err := r.db.NewSelect().
		Model(&levels).
		Order("level ASC").
		Scan(ctx)
	ql.Log(err, int64(len(levels)))
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	out := make([]dungeon.Threshold, 0, len(levels))
	for _, l := range levels {
		out = append(out, dungeon.Threshold{Level: l.Level, TotalExp: l.TotalExp})
	}
	return out, nil
}

func (r *dungeonRepository) CountEncounters(ctx context.Context, table dungeon.EncounterTable) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	model, err := encounterModel(table)
	if err != nil {
		return 0, err
	}

	ql := logger.NewQueryLogger("CountEncounters", "SELECT count(*) encounters", table.String())
	count, err := r.db.NewSelect().Model(model).Count(ctx)
	ql.Log(err, int64(count))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s encounters: %w", table, err)
	}
	return count, nil
}

func (r *dungeonRepository) GetEncounter(ctx context.Context, table dungeon.EncounterTable, position int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	model, err := encounterModel(table)
	if err != nil {
		return "", err
	}

	var message string
	ql := logger.NewQueryLogger("GetEncounter", "SELECT message encounters", table.String(), position)
	err = r.db.NewSelect().
		Model(model).
		Column("message").
		Order("id ASC").
		Limit(1).
		Offset(position).
		Scan(ctx, &message)
	ql.Log(err, 1)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s encounter at %d: %w", table, position, dungeon.ErrEncounterNotFound)
		}
		return "", fmt.Errorf("failed to get %s encounter: %w", table, err)
	}
	return message, nil
}

func (r *dungeonRepository) WithinUserTx(ctx context.Context, userID string, fn func(repo dungeon.Repository) error) error {
	if r.root == nil {
		return fn(r)
	}

	return r.root.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(&dungeonRepository{
			db:       tx,
			lockRows: r.root.Dialect().Name() == dialect.PG,
		})
	})
}

// encounterModel maps an encounter table to its fixed model.
func encounterModel(table dungeon.EncounterTable) (interface{}, error) {
	switch table {
	case dungeon.EncounterPositive:
		return (*models.PositiveEncounter)(nil), nil
	case dungeon.EncounterNegative:
		return (*models.NegativeEncounter)(nil), nil
	default:
		return nil, fmt.Errorf("unknown encounter table %d", table)
	}
}

func toDomainUser(row *models.DungeonUser) *dungeon.User {
	user := &dungeon.User{
		UserID:       row.UserID,
		TotalExp:     row.TotalExp,
		CurrentLevel: row.CurrentLevel,
	}
	if row.LastCheck != nil {
		at := row.LastCheck.UTC()
		user.LastCheck = &at
	}
	return user
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
