package cmd

import (
	"context"
	"log/slog"
	"time"

	httpadapter "scheduler/internal/adapters/in/http"
	"scheduler/internal/adapters/out/backup"
	"scheduler/internal/adapters/out/postgres"
	"scheduler/internal/core/application/usecases/commands"
	"scheduler/internal/core/application/usecases/queries"
	"scheduler/internal/core/application/workflows/export"
	"scheduler/internal/generated/servers"
	"scheduler/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg      Config
	gormDB   *gorm.DB
	registry *prometheus.Registry
	logger   *slog.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	readiness  *postgres.Readiness
	scheduler  *jobs.Scheduler
	workflow   *export.Workflow
}

// NewCompositionRoot wires the scheduler and the export workflow on top of
// gormDB. startedAt names this process's backup run directory.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, startedAt time.Time, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	readiness := postgres.NewReadiness(gormDB)
	scheduler := jobs.NewScheduler(
		uowFactory,
		readiness.Check,
		jobs.Config{ProcessEvery: cfg.ProcessEvery, LockLifetime: cfg.LockLifetime},
		jobs.NewMetrics(registry),
		logger,
	)

	admin := cfg.AdminDatabase()
	backuper := backup.NewPgDump("", backup.Target{
		Host:     admin.Host,
		Port:     admin.Port,
		Database: admin.Database,
		Username: admin.Username,
		Password: admin.Password,
	}, logger)

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		registry:   registry,
		logger:     logger,
		uowFactory: uowFactory,
		readiness:  readiness,
		scheduler:  scheduler,
		workflow:   export.NewWorkflow(scheduler, backuper, cfg.BackupRoot, startedAt, logger),
	}
}

// ProvisionAppRole sets up the application role when both the admin and the
// application credentials are configured. The administrator then owns the
// jobs table, so the scheduler skips its own migration.
func (c *CompositionRoot) ProvisionAppRole(ctx context.Context) {
	if c.cfg.DBAdminUser == "" || c.cfg.DBAppUser == "" || c.cfg.DBAppPassword == "" {
		c.logger.InfoContext(ctx, "Skipping role provisioning, credentials are not configured")
		return
	}

	provisioner := postgres.NewRoleProvisioner(c.cfg.AdminDatabase(), c.logger)
	if err := provisioner.Provision(ctx, c.cfg.DBAppUser, c.cfg.DBAppPassword); err != nil {
		c.logger.ErrorContext(ctx, "Role provisioning failed", "error", err)
		return
	}
	c.readiness.MarkMigrated()
}

func (c *CompositionRoot) Scheduler() *jobs.Scheduler {
	return c.scheduler
}

// StartScheduler starts processing with the export workflow and the alerts
// handler as job definitions.
func (c *CompositionRoot) StartScheduler() error {
	c.logger.Info("Backups of this process go to", "directory", c.workflow.RunDirectory())
	resolver := jobs.NewResolver(c.workflow.RunJob, jobs.AlertsHandler(c.logger), export.JobNames()...)
	return c.scheduler.Start(resolver)
}

func (c *CompositionRoot) CreateCreateExportJobCommandHandler() commands.CreateExportJobCommandHandler {
	return commands.NewCreateExportJobCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateDeleteExportJobCommandHandler() commands.DeleteExportJobCommandHandler {
	return commands.NewDeleteExportJobCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateRunJobNowCommandHandler() commands.RunJobNowCommandHandler {
	return commands.NewRunJobNowCommandHandler(c.scheduler)
}

func (c *CompositionRoot) CreateListJobsQueryHandler() queries.ListJobsQueryHandler {
	return queries.NewListJobsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the echo instance with every route registered.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := httpadapter.NewBodyValidator(swagger)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(
		c.CreateCreateExportJobCommandHandler(),
		c.CreateDeleteExportJobCommandHandler(),
		c.CreateRunJobNowCommandHandler(),
		c.CreateListJobsQueryHandler(),
		validator,
		c.logger,
	)
	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		DashboardUsername: c.cfg.DashboardUsername,
		DashboardPassword: c.cfg.DashboardPassword,
		Gatherer:          c.registry,
	}, c.logger), nil
}
