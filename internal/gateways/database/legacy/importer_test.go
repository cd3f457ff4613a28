package legacy

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/models"
)

func writeLegacyDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE dungeon_users (user_id INTEGER PRIMARY KEY, total_exp INTEGER DEFAULT 0, current_level INTEGER DEFAULT 1, last_check TEXT)`,
		`CREATE TABLE dungeon_levels (level INTEGER PRIMARY KEY, total_exp INTEGER)`,
		`CREATE TABLE dungeon_encounters_pos (id INTEGER PRIMARY KEY AUTOINCREMENT, message TEXT)`,
		`CREATE TABLE dungeon_encounters_neg (id INTEGER PRIMARY KEY AUTOINCREMENT, message TEXT)`,
		`INSERT INTO dungeon_levels (level, total_exp) VALUES (1, 0), (2, 120), (3, 300)`,
		`INSERT INTO dungeon_encounters_pos (message) VALUES ('You found gold'), (''), ('You slew a rat')`,
		`INSERT INTO dungeon_encounters_neg (message) VALUES ('A trap snapped shut')`,
		`INSERT INTO dungeon_users (user_id, total_exp, current_level, last_check) VALUES
			(111, 150, 2, '2023-05-01T12:30:15.123456'),
			(222, NULL, NULL, NULL),
			(333, 40, 1, 'yesterday')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func newTarget(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(context.Background(), database.DBConfig{
		Driver: database.DriverSQLite,
		Path:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.InitializeSchema(context.Background(), nil); err != nil {
		t.Fatalf("InitializeSchema() error = %v", err)
	}
	return db
}

func TestImporter_ImportFile(t *testing.T) {
	ctx := context.Background()
	target := newTarget(t)

	imp := NewImporter(target.BunDB())
	imp.SetLocation(time.UTC)
	imp.SetBatchSize(2)

	stats, err := imp.ImportFile(ctx, writeLegacyDB(t))
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	wantStats := map[string][3]int{
		"dungeon_levels":         {3, 3, 0},
		"dungeon_encounters_pos": {3, 2, 1},
		"dungeon_encounters_neg": {1, 1, 0},
		"dungeon_users":          {3, 3, 0},
	}
	for name, want := range wantStats {
		got := stats.Tables[name]
		if got == nil {
			t.Fatalf("missing stats for %s", name)
		}
		if [3]int{got.Processed, got.Imported, got.Skipped} != want {
			t.Errorf("%s stats = %+v, want processed/imported/skipped %v", name, got, want)
		}
	}

	var users []models.DungeonUser
	if err := target.BunDB().NewSelect().Model(&users).Order("user_id ASC").Scan(ctx); err != nil {
		t.Fatalf("select users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("got %d users, want 3", len(users))
	}

	wantCheck := time.Date(2023, 5, 1, 12, 30, 15, 123456000, time.UTC)
	if users[0].UserID != "111" || users[0].TotalExp != 150 || users[0].CurrentLevel != 2 {
		t.Errorf("user 111 = %+v", users[0])
	}
	if users[0].LastCheck == nil || !users[0].LastCheck.Equal(wantCheck) {
		t.Errorf("user 111 last_check = %v, want %v", users[0].LastCheck, wantCheck)
	}
	if users[1].TotalExp != 0 || users[1].CurrentLevel != 1 || users[1].LastCheck != nil {
		t.Errorf("user 222 = %+v", users[1])
	}
	if users[2].LastCheck != nil {
		t.Errorf("user 333 kept unreadable last_check %v", users[2].LastCheck)
	}

	var positive []models.PositiveEncounter
	if err := target.BunDB().NewSelect().Model(&positive).Order("id ASC").Scan(ctx); err != nil {
		t.Fatalf("select encounters: %v", err)
	}
	if len(positive) != 2 || positive[0].Message != "You found gold" || positive[1].Message != "You slew a rat" {
		t.Errorf("positive encounters = %+v", positive)
	}
}

func TestImporter_KeepsExistingEncounters(t *testing.T) {
	ctx := context.Background()
	target := newTarget(t)

	ref, err := database.DefaultReference()
	if err != nil {
		t.Fatalf("DefaultReference() error = %v", err)
	}
	if err := target.SeedReferenceData(ctx, ref); err != nil {
		t.Fatalf("SeedReferenceData() error = %v", err)
	}

	stats, err := NewImporter(target.BunDB()).ImportFile(ctx, writeLegacyDB(t))
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if got := stats.Tables["dungeon_encounters_neg"]; got.Imported != 0 || got.Skipped != 1 {
		t.Errorf("negative encounter stats = %+v", got)
	}

	count, err := target.BunDB().NewSelect().Model((*models.NegativeEncounter)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(ref.Encounters.Negative) {
		t.Errorf("negative encounters = %d, want %d", count, len(ref.Encounters.Negative))
	}
}

func TestImporter_MissingFile(t *testing.T) {
	target := newTarget(t)
	_, err := NewImporter(target.BunDB()).ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	if err == nil {
		t.Error("ImportFile() on missing file returned nil error")
	}
}

func Test_parseLastCheck(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{value: "2023-05-01T12:30:15", want: time.Date(2023, 5, 1, 12, 30, 15, 0, time.UTC)},
		{value: "2023-05-01T12:30:15.5+02:00", want: time.Date(2023, 5, 1, 10, 30, 15, 500000000, time.UTC)},
		{value: "2023-05-01 08:00:00", want: time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)},
		{value: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseLastCheck(tt.value, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLastCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseLastCheck() = %v, want %v", got, tt.want)
			}
		})
	}
}
