package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
)

var mu sync.RWMutex
var output io.Writer = os.Stdout
var level = new(slog.LevelVar)

func init() {
	level.Set(slog.LevelDebug)
}

type Logger struct {
	*slog.Logger
}

// SetLevel changes the minimum level of every logger built from now on, as well as ones already built
func SetLevel(l slog.Level) {
	level.Set(l)
}

func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func BuildLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	logger := Logger{Logger: slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))}
	return &logger
}

func BuildLoggerFromCtx(ctx *gin.Context) *Logger {
	logger := BuildLogger()
	return &Logger{Logger: logger.With("path", ctx.Request.URL.Path, "method", ctx.Request.Method, "client_ip", ctx.ClientIP())}
}

func (l *Logger) WithError(err error) *Logger {
	modifiedLogger := Logger{Logger: l.With("error", err.Error())}
	return &modifiedLogger
}
