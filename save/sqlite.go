package save

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/milk9111/evescroller/common"
)

const defaultSlot = "default"

type saveSlot struct {
	ID             uint   `gorm:"primaryKey"`
	Slot           string `gorm:"uniqueIndex"`
	CurrentLevel   int
	CheckpointX    float64
	CheckpointY    float64
	CheckpointZ    float64
	HasCheckpoint  bool
	CollectedCount int
	CollectedIDs   []string `gorm:"serializer:json;type:text"`
	UpdatedAt      time.Time
}

// SQLiteStore keeps the save slot in a local SQLite database.
type SQLiteStore struct {
	db   *gorm.DB
	slot string
	log  zerolog.Logger
}

func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("save: open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&saveSlot{}); err != nil {
		return nil, fmt.Errorf("save: migrate: %w", err)
	}
	log.Info().Str("path", path).Msg("Using SQLite save store")
	return &SQLiteStore{db: db, slot: defaultSlot, log: log}, nil
}

func (s *SQLiteStore) Load() (Data, error) {
	var row saveSlot
	err := s.db.Where("slot = ?", s.slot).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug().Str("slot", s.slot).Msg("No save in slot")
		return Data{}, ErrNoSave
	}
	if err != nil {
		return Data{}, fmt.Errorf("save: load slot %s: %w", s.slot, err)
	}
	return Data{
		CurrentLevel:       row.CurrentLevel,
		CheckpointPosition: common.Vec3{X: row.CheckpointX, Y: row.CheckpointY, Z: row.CheckpointZ},
		HasCheckpoint:      row.HasCheckpoint,
		CollectedCount:     row.CollectedCount,
		CollectedIDs:       row.CollectedIDs,
	}, nil
}

func (s *SQLiteStore) Save(d Data) error {
	var row saveSlot
	err := s.db.Where("slot = ?", s.slot).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("save: lookup slot %s: %w", s.slot, err)
	}
	created := row.ID == 0
	row.Slot = s.slot
	row.CurrentLevel = d.CurrentLevel
	row.CheckpointX = d.CheckpointPosition.X
	row.CheckpointY = d.CheckpointPosition.Y
	row.CheckpointZ = d.CheckpointPosition.Z
	row.HasCheckpoint = d.HasCheckpoint
	row.CollectedCount = d.CollectedCount
	row.CollectedIDs = d.CollectedIDs
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("save: write slot %s: %w", s.slot, err)
	}
	s.log.Debug().Str("slot", s.slot).Int("level", d.CurrentLevel).Bool("created", created).Msg("Saved slot")
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		s.log.Error().Err(err).Msg("Failed to close save database")
		return err
	}
	return nil
}
