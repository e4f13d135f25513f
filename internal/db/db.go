package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// SQLitePrefix marks a DATABASE_URL that points at a local SQLite file,
// e.g. "sqlite:owdb.db" or "sqlite:file::memory:?cache=shared".
const SQLitePrefix = "sqlite:"

// Schema holds the application tables on Postgres.
const Schema = "owdb"

var ErrEmptyDSN = errors.New("database url is empty")

var DB *gorm.DB

// Connect opens the database named by dsn and stores it in DB.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	conn, err := Open(dsn, log)
	if err != nil {
		return nil, err
	}
	DB = conn
	return conn, nil
}

// Open opens a gorm connection for dsn. Postgres URLs and key/value DSNs go
// through the pgx-backed postgres driver; "sqlite:" DSNs open SQLite.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	if log == nil {
		log = zap.NewNop()
	}
	cfg := &gorm.Config{Logger: NewGormLogger(log)}

	if path, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		conn, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		log.Info("Connected to database", zap.String("driver", "sqlite"), zap.String("path", path))
		return conn, nil
	}

	pgCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	cfg.NamingStrategy = schema.NamingStrategy{TablePrefix: Schema + "."}
	conn, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Connected to database",
		zap.String("driver", "postgres"),
		zap.String("host", pgCfg.Host),
		zap.Uint16("port", pgCfg.Port),
		zap.String("database", pgCfg.Database),
	)
	return conn, nil
}

// IsPostgres reports whether conn talks to Postgres.
func IsPostgres(conn *gorm.DB) bool {
	return conn.Dialector.Name() == "postgres"
}

// NewGormLogger routes gorm's SQL logging through zap.
func NewGormLogger(log *zap.Logger) logger.Interface {
	return logger.New(
		zapWriter{sugar: log.Sugar()},
		logger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}
