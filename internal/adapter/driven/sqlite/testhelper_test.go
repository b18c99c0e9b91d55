package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"testing"
)

// setupTestDB creates a migrated, named shared in-memory mirror for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db := openTestDB(t)
	if err := RunMigrations(db.Writer); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return db
}

// openTestDB opens an unmigrated in-memory database. Writer and reader
// connections share it via cache=shared. A unique name derived from t.Name()
// isolates parallel tests.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	// Percent-encode the test name so subtest slashes and spaces cannot be
	// read as query parameters in the DSN. WAL does not apply in memory.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", url.PathEscape(t.Name()), commonPragmas)

	db, err := open(context.Background(), dsn, ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
