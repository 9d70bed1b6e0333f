package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nibsteg/internal/logging"
	"nibsteg/internal/storage"
)

// ResultHandler serves a previously produced result from the results directory by name
func (s *Server) ResultHandler(ctx *gin.Context) {
	name := ctx.Param("filename")

	resultPath, err := s.store.ResultPath(name)
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidResultName)
		return
	case errors.Is(err, storage.ErrResultNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, errResultNotFound)
		return
	case err != nil:
		logging.BuildLoggerFromCtx(ctx).WithError(err).Error("Error resolving result")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errStorage)
		return
	}

	ctx.Header("Cache-Control", "no-cache")
	ctx.File(resultPath)
}
