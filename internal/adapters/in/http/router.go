package http

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	_ "scheduler/internal/generated/docs"
	"scheduler/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const dashboardPrefix = "/dashboard"

type RouterConfig struct {
	DashboardUsername string
	DashboardPassword string
	Gatherer          prometheus.Gatherer
}

// NewRouter builds the echo instance serving the API, the dashboard, metrics
// and swagger UI.
func NewRouter(server servers.ServerInterface, cfg RouterConfig, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Path(), dashboardPrefix)
		},
		Validator: func(username, password string, _ echo.Context) (bool, error) {
			if cfg.DashboardUsername == "" {
				return false, nil
			}
			userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.DashboardUsername)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.DashboardPassword)) == 1
			return userOK && passOK, nil
		},
		Realm: "dashboard",
	}))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service is UP!")
	})
	servers.RegisterHandlers(e, server)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
