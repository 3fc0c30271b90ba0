package services

import (
	"testing"

	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	"gorm.io/gorm"
)

// testingDB wraps a rolled-back transaction so each test sees an isolated
// database. Services started on the tx handle nest via savepoints.
type testingDB struct {
	handle *gorm.DB
}

func openTestDB(t *testing.T) *testingDB {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	return &testingDB{handle: tx}
}
