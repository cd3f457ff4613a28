package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("dungeonctl %v: %v", args, err)
	}
	return out.String()
}

func TestMigrateThenStatus(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	config := "[db]\ndriver = \"sqlite\"\npath = \"" + filepath.ToSlash(filepath.Join(dir, "dungeon.db")) + "\"\n"
	configFile := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configFile, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	got := run(t, "migrate", "--config", configFile)
	if !strings.HasPrefix(got, "schema ready:") {
		t.Errorf("migrate output = %q", got)
	}

	got = run(t, "status", "--config", configFile, "1234")
	want := "1234 | You are currently Level 1. Total Exp: 0 EXP"
	if !strings.HasPrefix(got, want) {
		t.Errorf("status output = %q, want prefix %q", got, want)
	}
}
