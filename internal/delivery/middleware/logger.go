package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"vyapkart/config"
	deliverycontext "vyapkart/internal/delivery/context"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/errors"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one access log line per request when debug logging is enabled.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle logs the request after the rest of the chain has run, so the principal set by
// Authenticate is visible through the request-scoped logger.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	status, code := responseStatus(c, err)

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if code != "" {
		attrs = append(attrs, slog.String("error_code", code))
	}
	if err != nil && status >= http.StatusInternalServerError {
		attrs = append(attrs, slog.Any("error", err))
	}

	// The request logger already carries request_id, and account_id once authenticated.
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).
		LogAttrs(req.Context(), levelForStatus(status), "HTTP request", attrs...)
}

// responseStatus reports the status the error handler will write. Echo runs the error
// handler after the middleware chain returns, so c.Response().Status is not final yet.
func responseStatus(c echo.Context, err error) (int, string) {
	if err == nil {
		return c.Response().Status, ""
	}
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode(), appErr.ErrorCode()
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return httpErr.Code, ""
	}

	return http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode()
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
