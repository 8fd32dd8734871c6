package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barpos/internal/model"
	"barpos/internal/persist"
	"barpos/pkg/config"
)

var db *gorm.DB

// SnapshotRow stores one serialized state snapshot. The newest row is the
// authoritative state; older rows are kept as restore points.
type SnapshotRow struct {
	ID        uint      `gorm:"primarykey"`
	Version   int       `gorm:"not null"`
	Payload   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(cfg *config.Config) error {
	var err error

	// Configure GORM logger
	logLevel := logger.Error
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	// Run migrations
	if err := db.AutoMigrate(&SnapshotRow{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// SnapshotGateway persists snapshots as JSON rows in postgres.
type SnapshotGateway struct {
	db *gorm.DB
}

// NewSnapshotGateway returns a gateway backed by the given connection.
func NewSnapshotGateway(db *gorm.DB) *SnapshotGateway {
	return &SnapshotGateway{db: db}
}

// Save inserts a new snapshot row.
func (g *SnapshotGateway) Save(snap *model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	row := SnapshotRow{Version: snap.Version, Payload: string(payload)}
	if err := g.db.Create(&row).Error; err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Load reads the newest snapshot row, persist.ErrNotFound when none exist.
func (g *SnapshotGateway) Load() (*model.Snapshot, error) {
	var row SnapshotRow
	err := g.db.Order("id DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
