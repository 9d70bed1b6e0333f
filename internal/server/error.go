package server

import (
	"errors"

	"nibsteg/api"
)

var (
	errRequestBodyDecode = api.Error{Code: "request_body", Error: "Error reading request body"}
	errRequestTooLarge   = api.Error{Code: "request_too_large", Error: "Request body exceeds the maximum upload size"}
	errInvalidImage      = api.Error{Code: "invalid_image", Error: "Invalid image supplied in request body"}
	errDimensionMismatch = api.Error{Code: "dimension_mismatch", Error: "Payload image must not be wider or taller than the carrier image"}
	errEncode            = api.Error{Code: "encode_error", Error: "An error occurred while encoding the output image"}
	errStorage           = api.Error{Code: "storage_error", Error: "An error occurred while storing images"}
	errInvalidResultName = api.Error{Code: "invalid_name", Error: "Result names must be plain file names"}
	errResultNotFound    = api.Error{Code: "not_found", Error: "Requested result does not exist"}
)

var (
	errOutputEncode        = errors.New("encoding output image")
	errMalformedFlatbuffer = errors.New("malformed flatbuffer merge request")
)
