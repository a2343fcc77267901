package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"scheduler/internal/adapters/out/postgres/jobrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings are the parts of a PostgreSQL connection string.
type ConnectionSettings struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// URL builds a postgres:// connection string. Credentials are left out when
// the username is empty so local trust authentication keeps working.
func (s ConnectionSettings) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     s.Host + ":" + strconv.Itoa(s.Port),
		Path:     "/" + s.Database,
		RawQuery: "sslmode=disable",
	}
	if s.Username != "" {
		u.User = url.UserPassword(s.Username, s.Password)
	}
	return u.String()
}

// Redacted is URL with the password masked, safe for logs.
func (s ConnectionSettings) Redacted() string {
	u, err := url.Parse(s.URL())
	if err != nil {
		return ""
	}
	return u.Redacted()
}

// Connect prepares a GORM handle for dsn without touching the network, so a
// database that is down at startup does not stop the service.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		NowFunc:              func() time.Time { return time.Now().UTC() },
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the jobs table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&jobrepo.JobDTO{}); err != nil {
		return fmt.Errorf("failed to migrate jobs table: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Readiness answers the scheduler's readiness probe. The jobs table is
// migrated after the first successful ping.
type Readiness struct {
	db       *gorm.DB
	migrated atomic.Bool
}

func NewReadiness(db *gorm.DB) *Readiness {
	return &Readiness{db: db}
}

// MarkMigrated skips the migration, used once the administrator has already
// migrated the jobs table.
func (r *Readiness) MarkMigrated() {
	r.migrated.Store(true)
}

func (r *Readiness) Check(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}
	if r.migrated.Load() {
		return nil
	}
	if err = Migrate(r.db.WithContext(ctx)); err != nil {
		return err
	}
	r.migrated.Store(true)
	return nil
}
