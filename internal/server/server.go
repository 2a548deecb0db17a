// Package server exposes the published output directory over HTTP: a listing
// endpoint and a byte-range capable file endpoint for seekable playback.
package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is a read-only HTTP front for the output directory. It shares no
// state with the pipeline; the filesystem is the only coupling.
type Server struct {
	*echo.Echo
	root string
}

// New builds the server rooted at the output directory.
func New(root string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	s := &Server{Echo: e, root: root}
	e.GET("/", s.handleListing)
	e.GET("/:filename", s.handleFile)
	return s
}
