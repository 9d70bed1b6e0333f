package server

import (
	"nibsteg/pkg/model"
)

type humanizedTransformStats struct {
	model.TransformStats
	ImageDecodingHuman       string `json:"image_decoding_human"`
	TransformHuman           string `json:"transform_human"`
	OutputImageEncodingHuman string `json:"output_image_encoding_human"`
}

func toHumanizedTransformStats(stats model.TransformStats) humanizedTransformStats {
	return humanizedTransformStats{
		TransformStats:           stats,
		ImageDecodingHuman:       stats.ImageDecoding.String(),
		TransformHuman:           stats.Transform.String(),
		OutputImageEncodingHuman: stats.OutputImageEncoding.String(),
	}
}
