package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/database"
)

// SetupTestDB opens a private in-memory database and applies the same goose
// migrations the server runs at startup. It is closed when the test ends.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    testutil.NewTransaction().Build(t, db)
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	// nothing to recover after a crashed test
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		t.Fatalf("Failed to set journal mode: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CountRows returns the number of rows in table. Quote "transaction", it is
// a reserved word.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	//nolint:gosec // G202: table names come from test code only
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// AssertRowCount fails the test when table does not hold expected rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, `"transaction"`, 1)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	if actual := CountRows(t, db, table); actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

// StoredNotes returns the notes column of a transaction or future exactly as
// written to disk, before any decryption.
func StoredNotes(t *testing.T, db *sql.DB, table, id string) string {
	t.Helper()

	var notes sql.NullString
	//nolint:gosec // G202: table names come from test code only
	if err := db.QueryRow("SELECT notes FROM "+table+" WHERE id = ?", id).Scan(&notes); err != nil {
		t.Fatalf("Failed to read notes of %s %s: %v", table, id, err)
	}
	return notes.String
}
