package server

import (
	"errors"
	"image"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"nibsteg/api"
	"nibsteg/internal/logging"
	nibstegImage "nibsteg/pkg/image"
	"nibsteg/pkg/model"
)

const (
	carrierFormField = "image1"
	payloadFormField = "image2"
	mergedFormField  = "image"

	mergedResultPrefix   = "merged_image"
	unmergedResultPrefix = "unmerged_image"
)

func (s *Server) IndexHandler(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, indexTemplate, gin.H{})
}

// MergeFormHandler merges the payload uploaded as image2 into the carrier uploaded as image1, stores the result and
// renders the page with a link to it. Submissions missing either file are sent back to the form.
func (s *Server) MergeFormHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)
	if err := parseMultipartForm(ctx); err != nil {
		s.renderFormError(ctx, logger, err)
		return
	}

	carrierHeader, carrierFound := formFile(ctx, carrierFormField)
	payloadHeader, payloadFound := formFile(ctx, payloadFormField)
	if !carrierFound || !payloadFound {
		logger.Debug("Merge submission is missing an image, redirecting to form")
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	uploads := make([]string, 0, 2)
	carrier, err := s.persistAndDecode(carrierHeader, &uploads)
	if err != nil {
		s.renderFormError(ctx, logger, err, uploads...)
		return
	}
	payload, err := s.persistAndDecode(payloadHeader, &uploads)
	if err != nil {
		s.renderFormError(ctx, logger, err, uploads...)
		return
	}

	merged, took, err := s.merge(carrier, payload)
	if err != nil {
		s.renderFormError(ctx, logger, err, uploads...)
		return
	}

	result, err := s.store.SaveResult(mergedResultPrefix, merged, s.pngCompression)
	if err != nil {
		s.renderFormError(ctx, logger, err, uploads...)
		return
	}

	logger.With("result", result.Name, "transform", took.String()).Info("Images merged")
	ctx.HTML(http.StatusOK, indexTemplate, gin.H{"MergedImageURL": resultURL(result)})
}

// UnmergeFormHandler recovers the image hidden in the upload named image, stores it and renders a link to it
func (s *Server) UnmergeFormHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)
	if err := parseMultipartForm(ctx); err != nil {
		s.renderFormError(ctx, logger, err)
		return
	}

	mergedHeader, found := formFile(ctx, mergedFormField)
	if !found {
		logger.Debug("Unmerge submission is missing an image, redirecting to form")
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	uploads := make([]string, 0, 1)
	merged, err := s.persistAndDecode(mergedHeader, &uploads)
	if err != nil {
		s.renderFormError(ctx, logger, err, uploads...)
		return
	}

	unmerged, took := s.unmerge(merged)
	result, err := s.store.SaveResult(unmergedResultPrefix, unmerged, s.pngCompression)
	if err != nil {
		s.renderFormError(ctx, logger, err, uploads...)
		return
	}

	logger.With("result", result.Name, "transform", took.String()).Info("Image unmerged")
	ctx.HTML(http.StatusOK, indexTemplate, gin.H{"UnmergedImageURL": resultURL(result)})
}

// parseMultipartForm only fails for bodies over the upload limit, any other parse failure is treated as a
// submission without files
func parseMultipartForm(ctx *gin.Context) error {
	var maxBytesErr *http.MaxBytesError
	if _, err := ctx.MultipartForm(); errors.As(err, &maxBytesErr) {
		return err
	}
	return nil
}

// formFile reports a field as missing when it is absent, unnamed or empty
func formFile(ctx *gin.Context, field string) (*multipart.FileHeader, bool) {
	header, err := ctx.FormFile(field)
	if err != nil || header.Filename == "" || header.Size == 0 {
		return nil, false
	}
	return header, true
}

// persistAndDecode saves the upload in the upload directory, records its path in uploads and decodes it from there
func (s *Server) persistAndDecode(header *multipart.FileHeader, uploads *[]string) (*image.RGBA, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	uploadPath, err := s.store.SaveUpload(model.InputFile{Name: header.Filename, Content: f, Size: header.Size})
	if err != nil {
		return nil, err
	}
	*uploads = append(*uploads, uploadPath)
	return nibstegImage.ReadRGBAFile(uploadPath)
}

// renderFormError renders the page with the error, and removes the uploads of the failed submission
func (s *Server) renderFormError(ctx *gin.Context, logger *logging.Logger, err error, uploads ...string) {
	status, apiErr := statusForError(err)
	logger.WithError(err).Error("Error processing form submission")
	for _, upload := range uploads {
		if rmErr := s.store.RemoveUpload(upload); rmErr != nil {
			logger.WithError(rmErr).Warn("Could not remove upload of failed submission", "upload", upload)
		}
	}
	ctx.HTML(status, indexTemplate, gin.H{"Error": apiErr.Error})
}

func resultURL(result model.ResultFile) string {
	return path.Join("/results", result.Name)
}

func statusForError(err error) (int, api.Error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, nibstegImage.ErrDimensionMismatch):
		return http.StatusUnprocessableEntity, errDimensionMismatch
	case errors.Is(err, nibstegImage.ErrInvalidImage):
		return http.StatusBadRequest, errInvalidImage
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, errRequestTooLarge
	case errors.Is(err, errOutputEncode):
		return http.StatusInternalServerError, errEncode
	default:
		return http.StatusInternalServerError, errStorage
	}
}
