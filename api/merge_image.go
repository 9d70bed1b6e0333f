package api

import "nibsteg/pkg/model"

type MergeImageRequest struct {
	// Carrier is the image whose visible content is kept
	Carrier []byte `json:"carrier" binding:"required"`
	// Payload is the image hidden inside the carrier, it must not be wider or taller than the carrier
	Payload []byte `json:"payload" binding:"required"`
}

type MergeImageResponse struct {
	MergedImage []byte               `json:"merged_image"`
	Stats       model.TransformStats `json:"stats"`
}

type UnmergeImageRequest struct {
	MergedImage []byte `json:"merged_image" binding:"required"`
}

type UnmergeImageResponse struct {
	UnmergedImage []byte               `json:"unmerged_image"`
	Stats         model.TransformStats `json:"stats"`
}
