package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates the process logger: text output in gin debug mode, JSON otherwise,
// level from LOG_LEVEL
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), gin.Mode() != gin.DebugMode)
}

// NewWithWriter builds a logger on an arbitrary sink
func NewWithWriter(w io.Writer, levelStr string, jsonOutput bool) *Logger {
	level := getLogLevel(levelStr)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error", false)
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogReservationSubmitted logs a persisted reservation
func (l *Logger) LogReservationSubmitted(ctx context.Context, reservationID, guideID, userID string, total int) {
	l.Logger.InfoContext(ctx,
		"Reservation Submitted",
		slog.String("reservation_id", reservationID),
		slog.String("guide_id", guideID),
		slog.String("user_id", userID),
		slog.Int("total_price", total),
	)
}

// LogSubmissionRejected logs a reservation refused before persistence
func (l *Logger) LogSubmissionRejected(ctx context.Context, draftID, kind, reason string) {
	l.Logger.WarnContext(ctx,
		"Reservation Rejected",
		slog.String("draft_id", draftID),
		slog.String("kind", kind),
		slog.String("reason", reason),
	)
}

// LogCatalogUnavailable logs a failed catalog read
func (l *Logger) LogCatalogUnavailable(ctx context.Context, operation string, err error) {
	l.Logger.ErrorContext(ctx,
		"Catalog Unavailable",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// LogServiceCreated logs a guide publishing a service
func (l *Logger) LogServiceCreated(ctx context.Context, serviceID, guideID string) {
	l.Logger.InfoContext(ctx,
		"Service Created",
		slog.String("service_id", serviceID),
		slog.String("guide_id", guideID),
	)
}

// LogDegraded logs an optional dependency failing without failing the request
func (l *Logger) LogDegraded(ctx context.Context, component string, err error) {
	l.Logger.WarnContext(ctx,
		"Degraded Response",
		slog.String("component", component),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
