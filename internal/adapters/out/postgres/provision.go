package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RoleProvisioner sets up the application role with administrator
// credentials before the scheduler connects as that role.
type RoleProvisioner struct {
	admin  ConnectionSettings
	logger *slog.Logger
}

func NewRoleProvisioner(admin ConnectionSettings, logger *slog.Logger) *RoleProvisioner {
	return &RoleProvisioner{
		admin:  admin,
		logger: logger.With("component", "role-provisioner"),
	}
}

// Provision creates role, or resets its password when it already exists,
// migrates the jobs table as the administrator and grants role read/write
// access to it. It is safe to run on every startup.
func (p *RoleProvisioner) Provision(ctx context.Context, role, password string) error {
	db, err := sql.Open("postgres", p.admin.URL())
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			p.logger.ErrorContext(ctx, "failed to close admin connection", "error", cerr)
		}
		p.logger.InfoContext(ctx, "disconnected from database with admin")
	}()

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect with admin: %w", err)
	}
	p.logger.InfoContext(ctx, "connected to database with admin", "database", p.admin.Database)

	if err = p.upsertRole(ctx, db, role, password); err != nil {
		return err
	}
	if err = p.migrate(ctx, db); err != nil {
		return err
	}
	return p.grant(ctx, db, role)
}

func (p *RoleProvisioner) upsertRole(ctx context.Context, db *sql.DB, role, password string) error {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = $1)", role).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up role %s: %w", role, err)
	}

	ident := pq.QuoteIdentifier(role)
	secret := pq.QuoteLiteral(password)
	if exists {
		if _, err = db.ExecContext(ctx, "ALTER ROLE "+ident+" WITH LOGIN PASSWORD "+secret); err != nil {
			return fmt.Errorf("failed to update role %s: %w", role, err)
		}
		p.logger.InfoContext(ctx, "role password updated", "role", role, "database", p.admin.Database)
		return nil
	}

	if _, err = db.ExecContext(ctx, "CREATE ROLE "+ident+" WITH LOGIN PASSWORD "+secret); err != nil {
		return fmt.Errorf("failed to create role %s: %w", role, err)
	}
	p.logger.InfoContext(ctx, "role created", "role", role, "database", p.admin.Database)
	return nil
}

// migrate runs the jobs table migration on the admin connection so the
// administrator owns the schema objects.
func (p *RoleProvisioner) migrate(ctx context.Context, db *sql.DB) error {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open admin gorm session: %w", err)
	}
	return Migrate(gdb.WithContext(ctx))
}

func (p *RoleProvisioner) grant(ctx context.Context, db *sql.DB, role string) error {
	ident := pq.QuoteIdentifier(role)
	stmts := []string{
		"GRANT CONNECT, TEMPORARY ON DATABASE " + pq.QuoteIdentifier(p.admin.Database) + " TO " + ident,
		"GRANT USAGE ON SCHEMA public TO " + ident,
		"GRANT SELECT, INSERT, UPDATE, DELETE ON ALL TABLES IN SCHEMA public TO " + ident,
		"ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT SELECT, INSERT, UPDATE, DELETE ON TABLES TO " + ident,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to grant role %s access: %w", role, err)
		}
	}

	p.logger.InfoContext(ctx, "role granted read/write access", "role", role, "database", p.admin.Database)
	return nil
}
