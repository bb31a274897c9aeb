package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xyz-asif/imagetodo/internal/pkg/logger"
)

// LoggerConfig controls the request logger
type LoggerConfig struct {
	SkipPaths []string
	// MaxBodySize caps how much of an error response is captured for the log.
	MaxBodySize int
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths:   []string{"/health"},
		MaxBodySize: 1024,
	}
}

func Logger(log *zap.Logger) gin.HandlerFunc {
	return LoggerWithConfig(log, DefaultLoggerConfig())
}

// LoggerWithConfig logs one line per request. Client errors are logged at
// warn, server errors at error, with the captured response body.
func LoggerWithConfig(log *zap.Logger, config LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		writer := &limitedResponseWriter{ResponseWriter: c.Writer, maxSize: config.MaxBodySize}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		if level > zapcore.InfoLevel && writer.body.Len() > 0 {
			fields = append(fields, zap.String("response", writer.body.String()))
		}

		logger.WithRequestID(c.Request.Context(), log).Check(level, "request").Write(fields...)
	}
}

// limitedResponseWriter keeps the first maxSize bytes of the response.
type limitedResponseWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	maxSize int
}

func (w *limitedResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	if room := w.maxSize - w.body.Len(); room > 0 {
		if n < room {
			room = n
		}
		w.body.Write(b[:room])
	}
	return n, err
}
