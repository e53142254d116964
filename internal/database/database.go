package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the catalog database at dbPath, logging only slow
// statements and errors.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(dbPath, logger.Warn)
}

// Open opens the catalog database at dbPath and creates the books table if
// it does not exist yet.
func Open(dbPath string, logLevel logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Existing tables are used as they are; there is no migration path
	if !db.Migrator().HasTable(&entities.Book{}) {
		if err := db.Migrator().CreateTable(&entities.Book{}); err != nil {
			return nil, fmt.Errorf("failed to create books table: %w", err)
		}
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying connection is still usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Backup writes a consistent copy of the database to destPath, which must
// not exist yet.
func (d *Database) Backup(ctx context.Context, destPath string) error {
	return d.DB.WithContext(ctx).Exec("VACUUM INTO ?", destPath).Error
}
