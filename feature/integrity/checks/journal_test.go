package checks

import (
	"testing"

	"audience-sync/core/database"
	"audience-sync/feature/journal"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckJournal_NilDB(t *testing.T) {
	report, err := CheckJournal(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckJournal_MigratedSQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, journal.New(db, nil).Migrate())

	report, err := CheckJournal(db)
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "sync_outcomes", report.Table)
	assert.Empty(t, report.MissingColumns)
}

func TestCheckJournal_MissingAndMismatched(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("run_id", "varchar(36)", "YES", "MUL", nil, "").
		AddRow("kind", "varchar(16)", "YES", "", nil, "").
		AddRow("item_index", "bigint", "YES", "", nil, "").
		AddRow("state", "varchar(16)", "YES", "MUL", nil, "").
		AddRow("error", "varchar(255)", "YES", "", nil, "").
		AddRow("created_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `sync_outcomes`").WillReturnRows(rows)

	report, err := CheckJournal(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"target_id"}, report.MissingColumns)
	assert.Equal(t, []string{"error: expected text, got varchar(255)"}, report.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckJournal_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(assert.AnError)

	_, err := CheckJournal(db)
	assert.ErrorContains(t, err, "sync_outcomes")
}
