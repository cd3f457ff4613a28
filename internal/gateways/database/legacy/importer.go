// Package legacy copies dungeon data out of the SQLite file written by the first
// version of the bot.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

const defaultBatchSize = 500

// Timestamps were written with Python's isoformat, without a zone.
var lastCheckLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
}

type legacyUser struct {
	bun.BaseModel `bun:"table:dungeon_users"`

	UserID       sql.NullString `bun:"user_id"`
	TotalExp     sql.NullInt64  `bun:"total_exp"`
	CurrentLevel sql.NullInt64  `bun:"current_level"`
	LastCheck    sql.NullString `bun:"last_check"`
}

type legacyLevel struct {
	bun.BaseModel `bun:"table:dungeon_levels"`

	Level    int64 `bun:"level"`
	TotalExp int64 `bun:"total_exp"`
}

type legacyEncounter struct {
	ID      int64          `bun:"id"`
	Message sql.NullString `bun:"message"`
}

type TableStats struct {
	TableName string
	Processed int
	Imported  int
	Skipped   int
}

type ImportStats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
	EndTime   time.Time
}

func (s *ImportStats) table(name string) *TableStats {
	if s.Tables[name] == nil {
		s.Tables[name] = &TableStats{TableName: name}
	}
	return s.Tables[name]
}

type Importer struct {
	target    *bun.DB
	batchSize int
	location  *time.Location
	// replaceEncounters clears the target encounter tables before copying.
	replaceEncounters bool
}

func NewImporter(target *bun.DB) *Importer {
	return &Importer{
		target:    target,
		batchSize: defaultBatchSize,
		location:  time.Local,
	}
}

func (i *Importer) SetBatchSize(size int) {
	if size > 0 {
		i.batchSize = size
	}
}

// SetLocation sets the zone used for last_check values stored without one.
func (i *Importer) SetLocation(loc *time.Location) {
	if loc != nil {
		i.location = loc
	}
}

func (i *Importer) SetReplaceEncounters(v bool) { i.replaceEncounters = v }

// OpenSource opens a legacy SQLite file read-only.
func OpenSource(ctx context.Context, path string) (*bun.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("legacy database: %w", err)
	}
	sqldb, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	src := bun.NewDB(sqldb, sqlitedialect.New())
	if err := src.PingContext(ctx); err != nil {
		src.Close()
		return nil, fmt.Errorf("ping legacy database: %w", err)
	}
	return src, nil
}

// ImportFile copies levels, encounters and users from the legacy file at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportStats, error) {
	src, err := OpenSource(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return i.Import(ctx, src)
}

func (i *Importer) Import(ctx context.Context, src bun.IDB) (*ImportStats, error) {
	stats := &ImportStats{
		Tables:    make(map[string]*TableStats),
		StartTime: time.Now(),
	}

	err := i.target.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := i.importLevels(ctx, src, tx, stats.table("dungeon_levels")); err != nil {
			return err
		}
		if err := i.importEncounters(ctx, src, tx, "dungeon_encounters_pos", stats.table("dungeon_encounters_pos")); err != nil {
			return err
		}
		if err := i.importEncounters(ctx, src, tx, "dungeon_encounters_neg", stats.table("dungeon_encounters_neg")); err != nil {
			return err
		}
		return i.importUsers(ctx, src, tx, stats.table("dungeon_users"))
	})
	stats.EndTime = time.Now()
	if err != nil {
		return stats, err
	}

	for _, t := range stats.Tables {
		slog.Info("Legacy table imported",
			slog.String("type", "db"),
			slog.String("table", t.TableName),
			slog.Int("processed", t.Processed),
			slog.Int("imported", t.Imported),
			slog.Int("skipped", t.Skipped))
	}
	return stats, nil
}

func (i *Importer) importLevels(ctx context.Context, src bun.IDB, tx bun.Tx, stats *TableStats) error {
	var rows []legacyLevel
	if err := src.NewSelect().Model(&rows).Order("level ASC").Scan(ctx); err != nil {
		return fmt.Errorf("read legacy levels: %w", err)
	}

	levels := make([]models.DungeonLevel, 0, len(rows))
	for _, r := range rows {
		stats.Processed++
		if r.Level < 1 {
			stats.Skipped++
			continue
		}
		levels = append(levels, models.DungeonLevel{Level: int(r.Level), TotalExp: r.TotalExp})
	}

	for start := 0; start < len(levels); start += i.batchSize {
		batch := levels[start:min(start+i.batchSize, len(levels))]
		if _, err := tx.NewInsert().
			Model(&batch).
			On("CONFLICT (level) DO UPDATE").
			Set("total_exp = EXCLUDED.total_exp").
			Exec(ctx); err != nil {
			return fmt.Errorf("write levels: %w", err)
		}
		stats.Imported += len(batch)
	}
	return nil
}

func (i *Importer) importEncounters(ctx context.Context, src bun.IDB, tx bun.Tx, table string, stats *TableStats) error {
	var rows []legacyEncounter
	if err := src.NewSelect().
		Table(table).
		Column("id", "message").
		Order("id ASC").
		Scan(ctx, &rows); err != nil {
		return fmt.Errorf("read legacy %s: %w", table, err)
	}

	messages := make([]string, 0, len(rows))
	for _, r := range rows {
		stats.Processed++
		msg := strings.TrimSpace(r.Message.String)
		if !r.Message.Valid || msg == "" {
			stats.Skipped++
			continue
		}
		messages = append(messages, msg)
	}

	switch table {
	case "dungeon_encounters_pos":
		out := make([]models.PositiveEncounter, 0, len(messages))
		for _, m := range messages {
			out = append(out, models.PositiveEncounter{Message: m})
		}
		return insertEncounters(ctx, tx, (*models.PositiveEncounter)(nil), out, i.batchSize, i.replaceEncounters, stats)
	case "dungeon_encounters_neg":
		out := make([]models.NegativeEncounter, 0, len(messages))
		for _, m := range messages {
			out = append(out, models.NegativeEncounter{Message: m})
		}
		return insertEncounters(ctx, tx, (*models.NegativeEncounter)(nil), out, i.batchSize, i.replaceEncounters, stats)
	default:
		return fmt.Errorf("unknown encounter table %q", table)
	}
}

func insertEncounters[T any](ctx context.Context, tx bun.Tx, model interface{}, rows []T, batchSize int, replace bool, stats *TableStats) error {
	if replace {
		if _, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("clear encounters: %w", err)
		}
	} else {
		count, err := tx.NewSelect().Model(model).Count(ctx)
		if err != nil {
			return fmt.Errorf("count encounters: %w", err)
		}
		if count > 0 {
			// keep the existing table; row positions must stay stable
			stats.Skipped += len(rows)
			return nil
		}
	}

	for start := 0; start < len(rows); start += batchSize {
		batch := rows[start:min(start+batchSize, len(rows))]
		if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return fmt.Errorf("write encounters: %w", err)
		}
		stats.Imported += len(batch)
	}
	return nil
}

func (i *Importer) importUsers(ctx context.Context, src bun.IDB, tx bun.Tx, stats *TableStats) error {
	var rows []legacyUser
	if err := src.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return fmt.Errorf("read legacy users: %w", err)
	}

	now := time.Now().UTC()
	users := make([]models.DungeonUser, 0, len(rows))
	for _, r := range rows {
		stats.Processed++
		user, ok := i.convertUser(r, now)
		if !ok {
			stats.Skipped++
			continue
		}
		users = append(users, user)
	}

	for start := 0; start < len(users); start += i.batchSize {
		batch := users[start:min(start+i.batchSize, len(users))]
		if _, err := tx.NewInsert().
			Model(&batch).
			On("CONFLICT (user_id) DO UPDATE").
			Set("total_exp = EXCLUDED.total_exp").
			Set("current_level = EXCLUDED.current_level").
			Set("last_check = EXCLUDED.last_check").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("write users: %w", err)
		}
		stats.Imported += len(batch)
	}
	return nil
}

func (i *Importer) convertUser(r legacyUser, now time.Time) (models.DungeonUser, bool) {
	id := strings.TrimSpace(r.UserID.String)
	if !r.UserID.Valid || id == "" {
		return models.DungeonUser{}, false
	}

	user := models.DungeonUser{
		UserID:       id,
		TotalExp:     r.TotalExp.Int64,
		CurrentLevel: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if r.CurrentLevel.Valid && r.CurrentLevel.Int64 > 1 {
		user.CurrentLevel = int(r.CurrentLevel.Int64)
	}
	if r.LastCheck.Valid && r.LastCheck.String != "" {
		at, err := parseLastCheck(r.LastCheck.String, i.location)
		if err != nil {
			slog.Warn("Dropping unreadable last_check",
				slog.String("type", "db"),
				slog.String("user_id", id),
				slog.String("value", r.LastCheck.String))
		} else {
			user.LastCheck = &at
		}
	}
	return user, true
}

func parseLastCheck(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range lastCheckLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
