package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zhi-theme/core/loader"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BootstrapRun is one recorded bootstrap pass.
type BootstrapRun struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	RunAs      string        `gorm:"size:64" json:"run_as"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Loaded     int           `json:"loaded"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Outcomes   []LoadOutcome `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"outcomes,omitempty"`
}

// LoadOutcome is the recorded result of one dependency in a run.
type LoadOutcome struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	RunID      string `gorm:"size:36;index" json:"-"`
	Position   int    `json:"position"`
	Libpath    string `gorm:"size:512" json:"libpath"`
	ImportType string `gorm:"size:16" json:"import_type"`
	BaseType   string `gorm:"size:32" json:"base_type"`
	Status     string `gorm:"size:32" json:"status"`
	Hook       string `gorm:"size:16" json:"hook,omitempty"`
	Error      string `gorm:"type:text" json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Failed reports whether the dependency was attempted and failed.
func (o LoadOutcome) Failed() bool {
	return loader.Status(o.Status).Failed()
}

// History stores bootstrap runs.
type History struct {
	db *gorm.DB
}

// NewHistory creates the history store and migrates its tables.
func NewHistory(db *gorm.DB) (*History, error) {
	if db == nil {
		return nil, errors.New("history requires a database")
	}
	if err := db.AutoMigrate(&BootstrapRun{}, &LoadOutcome{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return &History{db: db}, nil
}

// Record saves a loader report and returns the stored run.
func (h *History) Record(ctx context.Context, report *loader.Report) (*BootstrapRun, error) {
	loaded, skipped, failed := report.Summary()
	run := &BootstrapRun{
		ID:         uuid.NewString(),
		RunAs:      string(report.Runtime),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Loaded:     loaded,
		Skipped:    skipped,
		Failed:     failed,
		Outcomes:   make([]LoadOutcome, 0, len(report.Outcomes)),
	}
	for i, o := range report.Outcomes {
		run.Outcomes = append(run.Outcomes, LoadOutcome{
			Position:   i,
			Libpath:    o.Libpath,
			ImportType: string(o.ImportType),
			BaseType:   string(o.BaseType),
			Status:     string(o.Status),
			Hook:       o.Hook,
			Error:      o.Error,
			DurationMs: o.Duration.Milliseconds(),
		})
	}

	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record bootstrap run: %w", err)
	}
	return run, nil
}

// Recent returns the latest runs, newest first, with their outcomes.
func (h *History) Recent(ctx context.Context, limit int) ([]BootstrapRun, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []BootstrapRun
	err := h.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query bootstrap history: %w", err)
	}
	return runs, nil
}
