package journal

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"audience-sync/core/database"
	"audience-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

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

type stubWriter struct {
	fail map[string]bool
}

func (w stubWriter) Add(_ context.Context, item *reconcile.Item) (string, error) {
	c, _ := item.Column("email_address")
	if w.fail[c.Before.(string)] {
		return "", errors.New("rejected")
	}
	return "id-" + c.Before.(string), nil
}

func (w stubWriter) Update(context.Context, *reconcile.Item) error { return nil }
func (w stubWriter) Delete(context.Context, *reconcile.Item) error { return nil }

func addItem(email string) *reconcile.Item {
	return &reconcile.Item{Sync: true, Columns: []reconcile.Column{{Name: "email_address", Before: email}}}
}

func TestJournal_RecordsOutcomes(t *testing.T) {
	db := setupSQLite(t)
	j := New(db, nil)
	require.NoError(t, j.Migrate())
	require.NoError(t, j.Verify())

	batches := reconcile.Batches{
		Add:    []*reconcile.Item{addItem("a"), addItem("b"), addItem("c")},
		Delete: []*reconcile.Item{{Sync: true, TargetID: "gone"}},
	}
	exec := reconcile.NewExecutor(stubWriter{fail: map[string]bool{"b": true}}, nil, reconcile.Options{}).WithHooks(j)
	_, err := exec.Execute(context.Background(), batches)
	require.NoError(t, err)

	outcomes, err := Outcomes(context.Background(), db, j.RunID())
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.Equal(t, "add", outcomes[0].Kind)
	assert.Equal(t, "id-a", outcomes[0].TargetID)
	assert.Equal(t, "committed", outcomes[0].State)
	assert.Equal(t, "failed", outcomes[1].State)
	assert.Equal(t, 1, outcomes[1].ItemIndex)
	assert.Equal(t, "rejected", outcomes[1].Error)
	assert.Equal(t, "delete", outcomes[3].Kind)
	assert.Equal(t, "gone", outcomes[3].TargetID)

	summary, err := Summary(context.Background(), db, j.RunID())
	require.NoError(t, err)
	assert.Equal(t, []StateCount{{State: "committed", Count: 3}, {State: "failed", Count: 1}}, summary)

	other, err := Outcomes(context.Background(), db, "another-run")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestJournal_RunIDsDiffer(t *testing.T) {
	db := setupSQLite(t)
	assert.NotEqual(t, New(db, nil).RunID(), New(db, nil).RunID())
}

func TestJournal_VerifyMissingTable(t *testing.T) {
	j := New(setupSQLite(t), nil)
	err := j.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run_id")
}

func TestJournal_VerifyMySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, c := range Columns {
		if c == "error" {
			continue
		}
		rows.AddRow(c, "varchar(64)", "YES", "", nil, "")
	}
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `sync_outcomes`")).WillReturnRows(rows)

	err := New(db, nil).Verify()
	require.Error(t, err)
	assert.Equal(t, "table sync_outcomes is missing columns: error", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_WriteFailureIsLogged(t *testing.T) {
	db, mock := setupMockDB(t)
	core, logs := observer.New(zapcore.WarnLevel)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `sync_outcomes`")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	j := New(db, zap.New(core))
	item := addItem("a")
	report, err := reconcile.NewExecutor(stubWriter{}, nil, reconcile.Options{}).WithHooks(j).
		Execute(context.Background(), reconcile.Batches{Add: []*reconcile.Item{item}})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Committed)
	assert.False(t, item.Sync)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Failed to journal outcome", logs.All()[0].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
