package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the shared connection pool. The caller owns the pool and
// must close it on shutdown.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: newGormLogger(cfg.DBDebug)}

	if isSQLiteDSN(cfg.DatabaseURL) {
		log.Println("Using SQLite for local development:", cfg.DatabaseURL)
		return gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
	}

	connCfg, err := PostgresConfig(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Printf("Connected to PostgreSQL host=%s db=%s", connCfg.Host, connCfg.Database)
	return db, nil
}

// PostgresConfig parses the DSN chosen by PostgresDSN. Connections made
// through DATABASE_URL use TLS without certificate verification, which the
// hosting provider requires.
func PostgresConfig(cfg Config) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.DatabaseURL != "" && !hasSSLMode(cfg.DatabaseURL) {
		if connCfg.TLSConfig != nil {
			connCfg.TLSConfig.InsecureSkipVerify = true
		}
		for _, fb := range connCfg.Fallbacks {
			if fb.TLSConfig != nil {
				fb.TLSConfig.InsecureSkipVerify = true
			}
		}
		log.Println("⚠️  TLS certificate verification is disabled for DATABASE_URL")
	}
	return connCfg, nil
}

// PostgresDSN prefers DATABASE_URL and falls back to the discrete PG_* settings.
func PostgresDSN(cfg Config) string {
	if cfg.DatabaseURL != "" {
		if hasSSLMode(cfg.DatabaseURL) {
			return cfg.DatabaseURL
		}
		if isURLDSN(cfg.DatabaseURL) {
			sep := "?"
			if strings.Contains(cfg.DatabaseURL, "?") {
				sep = "&"
			}
			return cfg.DatabaseURL + sep + "sslmode=require"
		}
		return cfg.DatabaseURL + " sslmode=require"
	}

	parts := []string{
		"host=" + cfg.PGHost,
		"user=" + cfg.PGUser,
		"dbname=" + cfg.PGDB,
		"port=" + cfg.PGPort,
		"sslmode=disable",
	}
	if cfg.PGPass != "" {
		parts = append(parts, "password="+quoteDSNValue(cfg.PGPass))
	}
	return strings.Join(parts, " ")
}

func hasSSLMode(dsn string) bool {
	return strings.Contains(strings.ToLower(dsn), "sslmode=")
}

func isURLDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

func isSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || strings.HasSuffix(dsn, ".db") || dsn == ":memory:"
}

func quoteDSNValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
