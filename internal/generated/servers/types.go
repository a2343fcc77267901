package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BasicAuthScopes = "basicAuth.Scopes"
)

// Defines values for JobType.
const (
	JobTypeNormal JobType = "normal"
	JobTypeSingle JobType = "single"
)

// CreateExportJobRequest defines model for CreateExportJobRequest.
type CreateExportJobRequest struct {
	Schedule ScheduleSpec `json:"schedule"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Job defines model for Job.
type Job struct {
	CreatedAt      time.Time          `json:"createdAt"`
	FailCount      int                `json:"failCount"`
	FailReason     *string            `json:"failReason,omitempty"`
	FailedAt       *time.Time         `json:"failedAt"`
	Id             openapi_types.UUID `json:"id"`
	LastFinishedAt *time.Time         `json:"lastFinishedAt"`
	LastRunAt      *time.Time         `json:"lastRunAt"`
	LockedAt       *time.Time         `json:"lockedAt"`
	Name           string             `json:"name"`
	NextRunAt      *time.Time         `json:"nextRunAt"`
	Priority       int                `json:"priority"`
	RepeatInterval *string            `json:"repeatInterval,omitempty"`
	Type           JobType            `json:"type"`
}

// JobType defines model for Job.Type.
type JobType string

// Message defines model for Message.
type Message struct {
	Message string `json:"message"`
}

// RunJobResponse defines model for RunJobResponse.
type RunJobResponse struct {
	Data *map[string]interface{} `json:"data,omitempty"`
	Name string                  `json:"name"`
}

// ScheduleSpec defines model for ScheduleSpec.
type ScheduleSpec struct {
	Amount             int    `json:"amount"`
	ExportHourOfDayUtc int    `json:"exportHourOfDayUtc"`
	Repeat             string `json:"repeat"`
	Units              string `json:"units"`
}

// ListJobsParams defines parameters for ListJobs.
type ListJobsParams struct {
	Name *string `form:"name,omitempty" json:"name,omitempty"`
}

// CreateAutomaticExportJSONRequestBody defines body for CreateAutomaticExport for application/json ContentType.
type CreateAutomaticExportJSONRequestBody = CreateExportJobRequest
