package history

import (
	"context"
	"fmt"

	"serverlister/core/reconcile"

	"gorm.io/gorm"
)

// Recorder writes cycle reports to the database.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a recorder on db.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Migrate creates or updates the cycle_records table.
func (r *Recorder) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&CycleRecord{}); err != nil {
		return fmt.Errorf("failed to migrate cycle history: %w", err)
	}
	return nil
}

// Record inserts the report as a new row.
func (r *Recorder) Record(ctx context.Context, report *reconcile.CycleReport) error {
	row := FromReport(report)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record cycle %s: %w", report.CycleID, err)
	}
	return nil
}

// Recent returns the latest rows for game, newest first. An empty game
// returns rows of all games.
func (r *Recorder) Recent(ctx context.Context, game string, limit int) ([]CycleRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	q := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
	if game != "" {
		q = q.Where("game = ?", game)
	}

	var rows []CycleRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load cycle history: %w", err)
	}
	return rows, nil
}
