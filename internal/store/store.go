package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/bank"
)

// Store owns the local sqlite database: funnel state snapshots, the answer
// event log, the persisted seen cache, and the question bank tables.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path, applies pragmas, and runs
// auto-migration for every local table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := db.AutoMigrate(&FunnelStateRow{}, &AnswerEvent{}, &SeenFingerprint{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := bank.Migrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate bank: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying gorm handle, for the bank stores that share
// this database.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StateRepo returns the funnel state snapshot repository.
func (s *Store) StateRepo() *StateRepo {
	return &StateRepo{db: s.db}
}

// AnswerRepo returns the append-only answer event repository.
func (s *Store) AnswerRepo() *AnswerRepo {
	return &AnswerRepo{db: s.db}
}

// SeenCacheRepo returns the persisted fingerprint cache repository.
func (s *Store) SeenCacheRepo() *SeenCacheRepo {
	return &SeenCacheRepo{db: s.db}
}

// applyPragmas configures sqlite for single-user local operation.
func applyPragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MEDIPREP_DB environment variable
// 2. $XDG_DATA_HOME/mediprep/funnel.db
// 3. ~/.local/share/mediprep/funnel.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MEDIPREP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mediprep", "funnel.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
