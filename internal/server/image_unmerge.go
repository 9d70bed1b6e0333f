package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nibsteg/api"
	"nibsteg/internal/logging"
	nibstegImage "nibsteg/pkg/image"
	"nibsteg/pkg/model"
)

// UnmergeImageHandler godoc
//
// @Summary Recover an image hidden by the merge endpoint
// @Description This endpoint moves the low nibble of every channel into the high nibble. Only the four most significant bits of the hidden image survive merging, so the recovered image is an approximation. The result is returned as PNG
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.UnmergeImageRequest true "Body with the merged image"
// @Success 200 {object} api.UnmergeImageResponse
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /unmerge/image [post]
func (s *Server) UnmergeImageHandler(ctx *gin.Context) {
	var requestBody api.UnmergeImageRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing image unmerge request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		logger.WithError(err).Error("Error decoding request body")
		status, apiErr := statusForError(err)
		if status == http.StatusInternalServerError {
			status, apiErr = http.StatusBadRequest, errRequestBodyDecode
		}
		ctx.AbortWithStatusJSON(status, apiErr)
		return
	}

	var stats model.TransformStats
	decodeStart := time.Now()
	merged, _, err := nibstegImage.DecodeRGBA(bytes.NewReader(requestBody.MergedImage))
	if err != nil {
		handleTransformError(ctx, logger, err)
		return
	}
	stats.ImageDecoding = time.Since(decodeStart)

	unmerged, took := s.unmerge(merged)
	stats.Transform = took

	unmergedImage, err := s.encodeOutput(unmerged, len(requestBody.MergedImage), &stats)
	if err != nil {
		handleTransformError(ctx, logger, err)
		return
	}

	logger.With("stats", toHumanizedTransformStats(stats)).Info("Image unmerging was successful")

	ctx.JSON(http.StatusOK, api.UnmergeImageResponse{UnmergedImage: unmergedImage, Stats: stats})
}
