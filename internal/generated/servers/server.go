package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Liveness probe
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// Schedule the automatic export
	// (POST /api/automatic-export/create)
	CreateAutomaticExport(ctx echo.Context) error
	// Cancel the initial and recurring export jobs
	// (POST /api/automatic-export/delete)
	DeleteAutomaticExport(ctx echo.Context) error
	// Run the newest job with this name now
	// (POST /api/jobs/{name}/run)
	RunJob(ctx echo.Context, name string) error
	// List persisted jobs
	// (GET /dashboard/jobs)
	ListJobs(ctx echo.Context, params ListJobsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

// CreateAutomaticExport converts echo context to params.
func (w *ServerInterfaceWrapper) CreateAutomaticExport(ctx echo.Context) error {
	return w.Handler.CreateAutomaticExport(ctx)
}

// DeleteAutomaticExport converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteAutomaticExport(ctx echo.Context) error {
	return w.Handler.DeleteAutomaticExport(ctx)
}

// RunJob converts echo context to params.
func (w *ServerInterfaceWrapper) RunJob(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "name" -------------
	var name string

	err = runtime.BindStyledParameterWithOptions("simple", "name", ctx.Param("name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	return w.Handler.RunJob(ctx, name)
}

// ListJobs converts echo context to params.
func (w *ServerInterfaceWrapper) ListJobs(ctx echo.Context) error {
	var err error

	ctx.Set(BasicAuthScopes, []string{})

	// Parameter object where we will unmarshal all parameters from the context
	var params ListJobsParams
	// ------------- Optional query parameter "name" -------------

	err = runtime.BindQueryParameter("form", true, false, "name", ctx.QueryParams(), &params.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	return w.Handler.ListJobs(ctx, params)
}

// EchoRouter is an interface satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.POST(baseURL+"/api/automatic-export/create", wrapper.CreateAutomaticExport)
	router.POST(baseURL+"/api/automatic-export/delete", wrapper.DeleteAutomaticExport)
	router.POST(baseURL+"/api/jobs/:name/run", wrapper.RunJob)
	router.GET(baseURL+"/dashboard/jobs", wrapper.ListJobs)
}
