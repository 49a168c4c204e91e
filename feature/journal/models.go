package journal

import "time"

// Outcome is one journaled item.
type Outcome struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"size:36;index" json:"run_id"`
	Kind      string    `gorm:"size:16" json:"kind"`
	ItemIndex int       `json:"item_index"`
	TargetID  string    `gorm:"size:64" json:"target_id"`
	State     string    `gorm:"size:16;index" json:"state"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name.
func (Outcome) TableName() string {
	return "sync_outcomes"
}

// Columns lists the columns a journal table must have.
var Columns = []string{"id", "run_id", "kind", "item_index", "target_id", "state", "error", "created_at"}
