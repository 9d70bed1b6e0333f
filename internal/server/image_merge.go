package server

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	flatbuffers "github.com/google/flatbuffers/go"

	"nibsteg/api"
	"nibsteg/api/nibsteg/MergeImage"
	"nibsteg/internal/logging"
	nibstegImage "nibsteg/pkg/image"
	"nibsteg/pkg/model"
)

// MergeImageHandler godoc
//
// @Summary Hide an image inside another image
// @Description This endpoint keeps the high nibble of every channel of the carrier and stores the high nibble of the payload in the low nibble. The payload must not be wider or taller than the carrier. The merged image is returned as PNG
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.MergeImageRequest true "Body with the carrier image and the payload image to hide in it"
// @Success 200 {object} api.MergeImageResponse
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 422 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /merge/image [post]
func (s *Server) MergeImageHandler(ctx *gin.Context) {
	var requestBody api.MergeImageRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing image merge request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		logger.WithError(err).Error("Error decoding request body")
		status, apiErr := statusForError(err)
		if status == http.StatusInternalServerError {
			status, apiErr = http.StatusBadRequest, errRequestBodyDecode
		}
		ctx.AbortWithStatusJSON(status, apiErr)
		return
	}

	mergedImage, stats, err := s.mergeEncodedImages(requestBody.Carrier, requestBody.Payload)
	if err != nil {
		handleTransformError(ctx, logger, err)
		return
	}

	logger.With("stats", toHumanizedTransformStats(stats)).Info("Image merging was successful")

	ctx.JSON(http.StatusOK, api.MergeImageResponse{MergedImage: mergedImage, Stats: stats})
}

// mergeEncodedImages decodes both images, merges them and returns the merged image encoded as PNG
func (s *Server) mergeEncodedImages(encodedCarrier, encodedPayload []byte) ([]byte, model.TransformStats, error) {
	var stats model.TransformStats

	decodeStart := time.Now()
	carrier, _, err := nibstegImage.DecodeRGBA(bytes.NewReader(encodedCarrier))
	if err != nil {
		return nil, stats, fmt.Errorf("carrier: %w", err)
	}
	payload, _, err := nibstegImage.DecodeRGBA(bytes.NewReader(encodedPayload))
	if err != nil {
		return nil, stats, fmt.Errorf("payload: %w", err)
	}
	stats.ImageDecoding = time.Since(decodeStart)

	merged, took, err := s.merge(carrier, payload)
	if err != nil {
		return nil, stats, err
	}
	stats.Transform = took

	encoded, err := s.encodeOutput(merged, len(encodedCarrier), &stats)
	return encoded, stats, err
}

func (s *Server) encodeOutput(img image.Image, sizeHint int, stats *model.TransformStats) ([]byte, error) {
	encodeStart := time.Now()
	defer func() {
		stats.OutputImageEncoding = time.Since(encodeStart)
	}()

	outputBuffer := bytes.NewBuffer(make([]byte, 0, sizeHint)) // pre allocate with size of original, since it should be similar
	if err := nibstegImage.EncodePNG(outputBuffer, img, s.pngCompression); err != nil {
		return nil, fmt.Errorf("%w: %w", errOutputEncode, err)
	}
	return outputBuffer.Bytes(), nil
}

func handleTransformError(ctx *gin.Context, logger *logging.Logger, err error) {
	status, apiErr := statusForError(err)
	logger.WithError(err).Error("Error transforming image")
	ctx.AbortWithStatusJSON(status, apiErr)
}

// handleImageMergeFlatbufferRequest is the binary counterpart of MergeImageHandler, for clients that would rather not
// base64 encode large images. Errors are plain text.
func (s *Server) handleImageMergeFlatbufferRequest(w http.ResponseWriter, r *http.Request) {
	logger := logging.BuildLogger().With("path", r.URL.Path)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		status, _ := statusForError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		http.Error(w, "error reading body", status)
		return
	}

	encodedCarrier, encodedPayload, err := readMergeImageRequest(requestBody)
	if err != nil {
		logger.Error("Malformed flatbuffer request", "error", err.Error())
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	mergedImage, _, err := s.mergeEncodedImages(encodedCarrier, encodedPayload)
	if err != nil {
		logger.Error("Error merging images", "error", err.Error())
		status, apiErr := statusForError(err)
		http.Error(w, apiErr.Error, status)
		return
	}

	fbResponseBuilder := flatbuffers.NewBuilder(len(mergedImage) + 64)
	offset := fbResponseBuilder.CreateByteVector(mergedImage)
	MergeImage.MergeImageResponseStart(fbResponseBuilder)
	MergeImage.MergeImageResponseAddMergedImage(fbResponseBuilder, offset)
	response := MergeImage.MergeImageResponseEnd(fbResponseBuilder)
	fbResponseBuilder.Finish(response)

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err = w.Write(fbResponseBuilder.FinishedBytes()); err != nil {
		logger.Error("Error writing response", "error", err.Error())
	}
}

// readMergeImageRequest reads both images out of a flatbuffer, turning out of range reads from corrupt buffers into
// errors
func readMergeImageRequest(buf []byte) (carrier, payload []byte, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, nil, errMalformedFlatbuffer
	}

	defer func() {
		if r := recover(); r != nil {
			carrier, payload, err = nil, nil, fmt.Errorf("%w: %v", errMalformedFlatbuffer, r)
		}
	}()

	request := MergeImage.GetRootAsMergeImageRequest(buf, 0)
	carrier, payload = request.CarrierBytes(), request.PayloadBytes()
	if len(carrier) == 0 || len(payload) == 0 {
		return nil, nil, errMalformedFlatbuffer
	}
	return carrier, payload, nil
}
