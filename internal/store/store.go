// Package store keeps a ledger of finished runs in SQLite.
// Only final results are recorded; populations are never persisted.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const pragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// RunRecord is one finished run
type RunRecord struct {
	ID             string `gorm:"primaryKey;size:36"`
	CreatedAt      time.Time
	Objective      string `gorm:"index"`
	Expression     string
	GenomeLength   int
	Population     int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	Comparison     string
	Seed           int64
	BestGenome     string
	BestValue      *float64
	BestFitness    float64
	BestGeneration int
}

// BeforeCreate assigns an ID when the caller did not
func (r *RunRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// Store wraps the ledger database
type Store struct {
	DB *gorm.DB
}

// Open opens or creates the ledger at path
func Open(path string) (*Store, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("path to database must be defined")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path+"?"+pragmas), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// Save inserts a run record, assigning its ID if empty
func (s *Store) Save(ctx context.Context, r *RunRecord) error {
	if r == nil {
		return fmt.Errorf("run record cannot be nil")
	}
	if result := s.DB.WithContext(ctx).Create(r); result.Error != nil {
		return fmt.Errorf("saving run: %w", result.Error)
	}
	return nil
}

// Get returns the run with the given ID
func (s *Store) Get(ctx context.Context, id string) (*RunRecord, error) {
	var r RunRecord
	if err := s.DB.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := s.DB.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqldb, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}
