package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var logger = otelslog.NewLogger("github.com/ashfall-tactics/tactica/persist")

// ErrVersionConflict is returned by Save when the row's version no
// longer matches what the caller last read — another writer updated
// the slot in between.
var ErrVersionConflict = errors.New("persist: save slot was updated concurrently")

// SaveRecord is the GORM row backing one save slot. The game state
// itself is stored as a JSON blob in Data rather than normalized across
// tables: a save is read and written as a whole, never queried by
// field, so there's nothing a relational layout would buy here.
type SaveRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Data      string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a GORM-backed save-slot repository.
type Store struct {
	db *gorm.DB
}

// OpenStore connects to endpoint (a postgres:// URL) and ensures the
// save_records table exists.
func OpenStore(endpoint string) (*Store, error) {
	if !strings.HasPrefix(endpoint, "postgres://") {
		return nil, fmt.Errorf("persist: unsupported db endpoint %q, expected a postgres:// URL", endpoint)
	}
	logger.Info("connecting to save store", "endpoint", endpoint)

	db, err := gorm.Open(postgres.Open(endpoint), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("persist: open db: %w", err)
	}
	if err := db.AutoMigrate(&SaveRecord{}); err != nil {
		return nil, fmt.Errorf("persist: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewSlot allocates a fresh save-slot id.
func NewSlot() string {
	return uuid.NewString()
}

// Create writes a brand new save slot named name, returning its
// generated id.
func (s *Store) Create(ctx context.Context, name string, state *State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("persist: encode state: %w", err)
	}

	record := &SaveRecord{
		ID:      NewSlot(),
		Name:    name,
		Data:    string(data),
		Version: 1,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", fmt.Errorf("persist: create slot: %w", err)
	}
	return record.ID, nil
}

// Save overwrites slot id with state, enforcing that the row's version
// still matches expectedVersion (the version the caller last Load'd).
// On success the slot's version is incremented.
func (s *Store) Save(ctx context.Context, id string, expectedVersion int64, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("persist: encode state: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&SaveRecord{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"data":       string(data),
			"version":    expectedVersion + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("persist: save slot %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Load reads slot id, returning its state and current version.
func (s *Store) Load(ctx context.Context, id string) (*State, int64, error) {
	var record SaveRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, 0, fmt.Errorf("persist: load slot %s: %w", id, err)
	}

	var state State
	if err := json.Unmarshal([]byte(record.Data), &state); err != nil {
		return nil, 0, fmt.Errorf("persist: decode slot %s: %w", id, err)
	}
	return &state, record.Version, nil
}

// List returns every save slot's id, name, and last-updated time, most
// recently updated first.
func (s *Store) List(ctx context.Context) ([]SaveRecord, error) {
	var records []SaveRecord
	err := s.db.WithContext(ctx).
		Order("updated_at desc").
		Select("id", "name", "version", "created_at", "updated_at").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("persist: list slots: %w", err)
	}
	return records, nil
}

// Delete removes slot id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&SaveRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("persist: delete slot %s: %w", id, err)
	}
	return nil
}
