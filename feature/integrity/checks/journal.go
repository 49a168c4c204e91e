package checks

import (
	"fmt"
	"strings"
	"sync"

	"audience-sync/core/database"
	"audience-sync/feature/journal"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JournalReport is the result of a journal schema check.
type JournalReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
}

// CheckJournal compares the journal table with the Outcome model.
// Column types are compared only where the model pins one with a type tag.
func CheckJournal(db *gorm.DB) (*JournalReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	model, err := schema.Parse(&journal.Outcome{}, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse journal model: %w", err)
	}

	report := &JournalReport{
		Table:          model.Table,
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}

	actual, err := database.GetTableColumns(db, model.Table)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	for _, field := range model.Fields {
		if field.DBName == "" {
			continue
		}

		col, ok := byName[field.DBName]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, field.DBName)
			report.Matched = false
			continue
		}

		want := strings.ToLower(field.TagSettings["TYPE"])
		if want != "" && !strings.Contains(col.Type, want) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", field.DBName, want, col.Type))
			report.Matched = false
		}
	}

	return report, nil
}
