package journal

import (
	"context"
	"fmt"
	"strings"

	"audience-sync/core/database"
	"audience-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Journal writes outcomes for a single run.
type Journal struct {
	db     *gorm.DB
	runID  string
	logger *zap.Logger
}

var _ reconcile.Hooks = (*Journal)(nil)

// New creates a journal with a fresh run id.
func New(db *gorm.DB, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{db: db, runID: uuid.NewString(), logger: logger}
}

// RunID returns the id stamped on every outcome of this journal.
func (j *Journal) RunID() string {
	return j.runID
}

// DB returns the journal database.
func (j *Journal) DB() *gorm.DB {
	return j.db
}

// Migrate creates or updates the outcome table.
func (j *Journal) Migrate() error {
	return j.db.AutoMigrate(&Outcome{})
}

// Verify checks that the outcome table has every expected column.
func (j *Journal) Verify() error {
	missing, err := database.MissingColumns(j.db, Outcome{}.TableName(), Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", Outcome{}.TableName(), strings.Join(missing, ", "))
	}
	return nil
}

// BeforeItem does nothing.
func (j *Journal) BeforeItem(context.Context, reconcile.Kind, int, *reconcile.Item) {}

// AfterItem records a committed item.
func (j *Journal) AfterItem(ctx context.Context, kind reconcile.Kind, index int, _ *reconcile.Item, id string) {
	j.record(ctx, Outcome{Kind: kind.String(), ItemIndex: index, TargetID: id, State: reconcile.StateCommitted.String()})
}

// ErrorItem records a failed item.
func (j *Journal) ErrorItem(ctx context.Context, kind reconcile.Kind, index int, item *reconcile.Item, err error) {
	o := Outcome{Kind: kind.String(), ItemIndex: index, State: reconcile.StateFailed.String(), Error: err.Error()}
	if item != nil {
		o.TargetID = item.TargetID
	}
	j.record(ctx, o)
}

// Write failures are logged; they never fail the item.
func (j *Journal) record(ctx context.Context, o Outcome) {
	o.RunID = j.runID
	if err := j.db.WithContext(ctx).Create(&o).Error; err != nil {
		j.logger.Warn("Failed to journal outcome",
			zap.String("run_id", j.runID),
			zap.String("kind", o.Kind),
			zap.Int("index", o.ItemIndex),
			zap.Error(err),
		)
	}
}

// Outcomes returns the outcomes of runID in insertion order.
func Outcomes(ctx context.Context, db *gorm.DB, runID string) ([]Outcome, error) {
	var out []Outcome
	err := db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load outcomes: %w", err)
	}
	return out, nil
}

// StateCount is one row of Summary.
type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// Summary counts the outcomes of runID per state.
func Summary(ctx context.Context, db *gorm.DB, runID string) ([]StateCount, error) {
	var out []StateCount
	err := db.WithContext(ctx).Model(&Outcome{}).
		Select("state, count(*) as count").
		Where("run_id = ?", runID).
		Group("state").
		Order("state").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("summarise outcomes: %w", err)
	}
	return out, nil
}
