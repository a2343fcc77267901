package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"scheduler/internal/core/application/usecases/commands"
	"scheduler/internal/core/application/usecases/queries"
	"scheduler/internal/core/domain/model/export"
	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/generated/servers"
	"scheduler/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	exportPriority = "high"

	createdMessage = "Automatic audit export created!"
	deletedMessage = "Automatic audit export deleted!"
)

type (
	CreateExportJobHandler interface {
		Handle(ctx context.Context, cmd commands.CreateExportJobCommand) (string, error)
	}
	DeleteExportJobHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteExportJobCommand) error
	}
	RunJobNowHandler interface {
		Handle(ctx context.Context, cmd commands.RunJobNowCommand) (job.Data, error)
	}
	ListJobsHandler interface {
		Handle(ctx context.Context, query queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error)
	}
)

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	createExportJobHandler CreateExportJobHandler
	deleteExportJobHandler DeleteExportJobHandler
	runJobNowHandler       RunJobNowHandler

	// Query handlers
	listJobsHandler ListJobsHandler

	validator *BodyValidator
	logger    *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createExportJobHandler CreateExportJobHandler,
	deleteExportJobHandler DeleteExportJobHandler,
	runJobNowHandler RunJobNowHandler,
	listJobsHandler ListJobsHandler,
	validator *BodyValidator,
	logger *slog.Logger,
) *Server {
	return &Server{
		createExportJobHandler: createExportJobHandler,
		deleteExportJobHandler: deleteExportJobHandler,
		runJobNowHandler:       runJobNowHandler,
		listJobsHandler:        listJobsHandler,
		validator:              validator,
		logger:                 logger.With("component", "http"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateAutomaticExport handles POST /api/automatic-export/create.
func (s *Server) CreateAutomaticExport(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if err = s.validator.Validate(createExportJobSchema, body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	var request servers.CreateAutomaticExportJSONRequestBody
	if err = json.Unmarshal(body, &request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateExportJobCommand(export.ScheduleSpec{
		ExportHourOfDayUTC: request.Schedule.ExportHourOfDayUtc,
		Amount:             request.Schedule.Amount,
		Units:              request.Schedule.Units,
		Repeat:             request.Schedule.Repeat,
	}, exportPriority)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid schedule: "+err.Error())
	}

	name, err := s.createExportJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to create automatic export", "error", err)
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create automatic export")
	}

	s.logger.InfoContext(ctx.Request().Context(), "automatic export scheduled", "job", name)
	return ctx.JSON(http.StatusOK, servers.Message{Message: createdMessage})
}

// DeleteAutomaticExport handles POST /api/automatic-export/delete.
func (s *Server) DeleteAutomaticExport(ctx echo.Context) error {
	err := s.deleteExportJobHandler.Handle(ctx.Request().Context(), commands.NewDeleteExportJobCommand())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to delete automatic export", "error", err)
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to delete automatic export")
	}

	return ctx.JSON(http.StatusOK, servers.Message{Message: deletedMessage})
}

// RunJob handles POST /api/jobs/{name}/run.
func (s *Server) RunJob(ctx echo.Context, name string) error {
	cmd, err := commands.NewRunJobNowCommand(name)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	data, err := s.runJobNowHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, statusFor(err), err.Error())
	}

	response := servers.RunJobResponse{Name: cmd.Name()}
	if data != nil {
		m := map[string]interface{}(data)
		response.Data = &m
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListJobs handles GET /dashboard/jobs.
func (s *Server) ListJobs(ctx echo.Context, params servers.ListJobsParams) error {
	var name string
	if params.Name != nil {
		name = *params.Name
	}

	jobs, err := s.listJobsHandler.Handle(ctx.Request().Context(), queries.NewListJobsQuery(name))
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to list jobs", "error", err)
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve jobs")
	}

	response := make([]servers.Job, len(jobs))
	for i, item := range jobs {
		response[i] = servers.Job{
			Id:             item.ID.Bytes(),
			Name:           item.Name,
			Type:           servers.JobType(item.Type),
			Priority:       item.Priority,
			NextRunAt:      item.NextRunAt,
			RepeatInterval: optional(item.RepeatInterval),
			LockedAt:       item.LockedAt,
			LastRunAt:      item.LastRunAt,
			LastFinishedAt: item.LastFinishedAt,
			FailedAt:       item.FailedAt,
			FailReason:     optional(item.FailReason),
			FailCount:      item.FailCount,
			CreatedAt:      item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
