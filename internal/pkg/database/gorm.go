package database

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/logger"
	"database/sql"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"sync"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewGormDB opens the configured database and applies pool settings.
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := NewGormConfig()
	gormCfg.PrepareStmt = cfg.Driver != "sqlite"
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}
	if cfg.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)
	}

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established", "driver", cfg.Driver)
	return db, nil
}

// NewGormConfig shared by the server, the manage CLI and tests.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(),
		TranslateError: true,
	}
}

// IsUniqueViolation reports a duplicate key error from any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func openDialector(cfg *config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		return mysql.Open(cfg.DSN), nil
	case "sqlite":
		registerSQLite.Do(func() {
			sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{ConnectHook: unicodeLower})
		})
		return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: cfg.DSN}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

const sqliteDriverName = "sqlite3_unicode"

var registerSQLite sync.Once

// unicodeLower replaces the built-in LOWER, which folds ASCII only, so
// case-insensitive search works for Cyrillic text.
func unicodeLower(conn *sqlite3.SQLiteConn) error {
	return conn.RegisterFunc("lower", func(v any) any {
		switch s := v.(type) {
		case string:
			return strings.ToLower(s)
		case []byte:
			if s == nil {
				return nil
			}
			return strings.ToLower(string(s))
		default:
			return v
		}
	}, true)
}
