package model

import (
	"time"
)

// TransformStats records how long each phase of a merge or unmerge took
type TransformStats struct {
	ImageDecoding       time.Duration `json:"image_decoding"`
	Transform           time.Duration `json:"transform"`
	OutputImageEncoding time.Duration `json:"output_image_encoding"`
}
