package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nibsteg/api/nibsteg/MergeImage"
	nibstegImage "nibsteg/pkg/image"
	"nibsteg/test"
)

func buildFlatbufferMergeRequest(carrier, payload []byte) []byte {
	builder := flatbuffers.NewBuilder(len(carrier) + len(payload))
	carrierOffset := builder.CreateByteVector(carrier)
	payloadOffset := builder.CreateByteVector(payload)
	MergeImage.MergeImageRequestStart(builder)
	MergeImage.MergeImageRequestAddCarrier(builder, carrierOffset)
	MergeImage.MergeImageRequestAddPayload(builder, payloadOffset)
	builder.Finish(MergeImage.MergeImageRequestEnd(builder))
	return builder.FinishedBytes()
}

func TestFlatbufferMerge(t *testing.T) {
	s := newTestServer(t)
	carrier := test.GenerateRandomImage(16, 16)
	payload := test.GenerateRandomImage(16, 8)

	body := buildFlatbufferMergeRequest(test.EncodePNGBytes(carrier), test.EncodePNGBytes(payload))
	w := serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/merge/image/fb", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))

	response := MergeImage.GetRootAsMergeImageResponse(w.Body.Bytes(), 0)
	merged, _, err := nibstegImage.DecodeRGBA(bytes.NewReader(response.MergedImageBytes()))
	require.NoError(t, err)

	expected, err := nibstegImage.Merge(carrier, payload)
	require.NoError(t, err)
	assert.Equal(t, expected.Pix, merged.Pix)
}

func TestFlatbufferMergeErrors(t *testing.T) {
	s := newTestServer(t)
	small := test.EncodePNGBytes(test.GenerateRandomImage(2, 2))
	large := test.EncodePNGBytes(test.GenerateRandomImage(4, 4))

	tests := map[string]struct {
		body         []byte
		expectedCode int
	}{
		"too-short":         {body: []byte{1, 2}, expectedCode: http.StatusBadRequest},
		"corrupt":           {body: []byte{0xFF, 0xFF, 0xFF, 0x7F, 0, 0, 0, 0}, expectedCode: http.StatusBadRequest},
		"missing-payload":   {body: buildFlatbufferMergeRequest(small, nil), expectedCode: http.StatusBadRequest},
		"payload-too-large": {body: buildFlatbufferMergeRequest(small, large), expectedCode: http.StatusUnprocessableEntity},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/merge/image/fb", bytes.NewReader(tt.body)))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestReadMergeImageRequest(t *testing.T) {
	carrier, payload, err := readMergeImageRequest(buildFlatbufferMergeRequest([]byte{1, 2, 3}, []byte{4, 5}))

	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, carrier)
	assert.Equal(t, []byte{4, 5}, payload)
}
