// ABOUTME: Tests for SQLite database connection and schema initialization
// ABOUTME: Verifies database creation, schema tables and file placement
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Conn() == nil {
		t.Error("Conn() should not be nil")
	}

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %v, want :memory:", db.Path())
	}
}

func TestSchemaInitialization(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range []string{"index_meta", "index_entries"} {
		var name string
		err := db.Conn().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dbPath := PathIn(filepath.Join(t.TempDir(), "subdir", "index"))

	db, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if filepath.Base(db.Path()) != FileName {
		t.Errorf("Path() = %v, should end with %s", db.Path(), FileName)
	}
}

func TestOpen_NotADatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(dbPath, []byte("definitely not sqlite, just some bytes that go on for a while"), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := Open(context.Background(), dbPath)
	if err == nil {
		_ = db.Close()
		t.Fatal("Open() should fail on a file that is not a database")
	}
}
