package model

import "io"

type InputFile struct {
	Name    string
	Content io.Reader
	Size    int64
}

// ResultFile describes a PNG produced by a merge or unmerge and stored in the results directory
type ResultFile struct {
	Name string `json:"name"`
	Path string `json:"-"`
	Size int64  `json:"size"`
}
