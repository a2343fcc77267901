// Package backup dumps the job database with pg_dump.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scheduler/internal/core/ports"
)

const dumpFileName = "scheduler.dump"

var _ ports.Backuper = (*PgDump)(nil)

// Target is the database a backup is taken from.
type Target struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// PgDump writes a custom-format pg_dump archive into the requested directory.
type PgDump struct {
	binary string
	target Target
	logger *slog.Logger
}

func NewPgDump(binary string, target Target, logger *slog.Logger) *PgDump {
	if binary == "" {
		binary = "pg_dump"
	}
	return &PgDump{
		binary: binary,
		target: target,
		logger: logger.With("component", "backup"),
	}
}

// Backup creates directory and blocks until pg_dump exits.
func (p *PgDump) Backup(ctx context.Context, directory string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", directory, err)
	}

	out := filepath.Join(directory, dumpFileName)
	cmd := exec.CommandContext(ctx, p.binary, p.args(out)...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+p.target.Password)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	p.logger.InfoContext(ctx, "starting database backup", "database", p.target.Database, "file", out)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pg_dump of %s failed: %w: %s", p.target.Database, err, strings.TrimSpace(stderr.String()))
	}
	p.logger.InfoContext(ctx, "database backup finished", "database", p.target.Database, "file", out)
	return nil
}

func (p *PgDump) args(out string) []string {
	args := []string{
		"--host", p.target.Host,
		"--port", strconv.Itoa(p.target.Port),
		"--dbname", p.target.Database,
		"--format", "custom",
		"--file", out,
		"--no-password",
	}
	if p.target.Username != "" {
		args = append(args, "--username", p.target.Username)
	}
	return args
}
