package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/tribute-wall/testutil"
)

// TestMain creates the kv_entries table before any Postgres facility test runs.
// Without TEST_DATABASE_URL those tests skip themselves and the in-memory and
// SQLite tests run as usual.
func TestMain(m *testing.M) {
	if err := testutil.MigrateKVSchema(context.Background()); err != nil {
		log.Fatalf("TestMain: %v", err)
	}
	os.Exit(m.Run())
}
