package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLoggerFromCtx(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	SetOutput(buf)
	defer SetOutput(os.Stdout)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPost, "/upload", nil)

	BuildLoggerFromCtx(ctx).WithError(errors.New("boom")).Error("Error merging images")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/upload", entry["path"])
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "Error merging images", entry["msg"])
}

func TestSetLevel(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	SetOutput(buf)
	SetLevel(slog.LevelWarn)
	defer func() {
		SetOutput(os.Stdout)
		SetLevel(slog.LevelDebug)
	}()

	logger := BuildLogger()
	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
