package cmd

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"scheduler/internal/adapters/out/postgres"
	"scheduler/internal/jobs"
	"scheduler/internal/pkg/errs"
)

const (
	defaultHTTPPort   = "5005"
	defaultDBHost     = "localhost"
	defaultDBPort     = 5432
	defaultDBName     = "scheduler"
	defaultBackupRoot = "backup"
)

// Lookuper reads process environment variables.
type Lookuper interface {
	Lookup(name string) (string, bool)
}

type Config struct {
	AppEnv   string
	HTTPPort string
	LogLevel slog.Level

	DBHost          string
	DBPort          int
	DBName          string
	DBAppUser       string
	DBAppPassword   string
	DBAdminUser     string
	DBAdminPassword string

	DashboardUsername string
	DashboardPassword string

	BackupRoot   string
	ProcessEvery time.Duration
	LockLifetime time.Duration
}

// LoadConfig reads the configuration after the config store has been synced
// into the environment.
func LoadConfig(env Lookuper) (Config, error) {
	cfg := Config{
		AppEnv:            value(env, "APP_ENV", ""),
		HTTPPort:          value(env, "server_port", defaultHTTPPort),
		DBHost:            value(env, "db_ip", defaultDBHost),
		DBName:            value(env, "db_name", defaultDBName),
		DBAppUser:         value(env, "db_app_username", ""),
		DBAppPassword:     value(env, "db_app_password", ""),
		DBAdminUser:       value(env, "db_admin_username", ""),
		DBAdminPassword:   value(env, "db_admin_password", ""),
		DashboardUsername: value(env, "dashboard_username", ""),
		DashboardPassword: value(env, "dashboard_password", ""),
		BackupRoot:        value(env, "backup_root", defaultBackupRoot),
	}

	var logLevelErr error
	if raw := value(env, "log_level", ""); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			logLevelErr = errs.NewValueIsInvalidErrorWithCause("log_level", err)
		}
	}

	var dbPortErr error
	cfg.DBPort, dbPortErr = intValue(env, "db_port", defaultDBPort)

	var processEveryErr, lockLifetimeErr error
	cfg.ProcessEvery, processEveryErr = durationValue(env, "process_every", jobs.DefaultProcessEvery)
	cfg.LockLifetime, lockLifetimeErr = durationValue(env, "lock_lifetime", jobs.DefaultLockLifetime)

	if err := errors.Join(logLevelErr, dbPortErr, processEveryErr, lockLifetimeErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AppDatabase is the connection used by the job store. Credentials are only
// used when both the username and the password are set.
func (c Config) AppDatabase() postgres.ConnectionSettings {
	settings := postgres.ConnectionSettings{Host: c.DBHost, Port: c.DBPort, Database: c.DBName}
	if c.DBAppUser != "" && c.DBAppPassword != "" {
		settings.Username = c.DBAppUser
		settings.Password = c.DBAppPassword
	}
	return settings
}

// AdminDatabase is the connection used for role provisioning and backups.
func (c Config) AdminDatabase() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		Database: c.DBName,
		Username: c.DBAdminUser,
		Password: c.DBAdminPassword,
	}
}

func value(env Lookuper, name, fallback string) string {
	if v, ok := env.Lookup(name); ok && v != "" {
		return v
	}
	return fallback
}

func intValue(env Lookuper, name string, fallback int) (int, error) {
	raw := value(env, name, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}

func durationValue(env Lookuper, name string, fallback time.Duration) (time.Duration, error) {
	raw := value(env, name, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(name, d, "1ns", "unbounded")
	}
	return d, nil
}
