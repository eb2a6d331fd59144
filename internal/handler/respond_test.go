package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func largeJSONBody(t *testing.T, size int) *bytes.Reader {
	t.Helper()
	payload := `{"file_content":"` + strings.Repeat("A", size) + `"}`
	return bytes.NewReader([]byte(payload))
}

func TestDecodeJSONMaxAllowsLargeDocuments(t *testing.T) {
	var dst struct {
		FileContent string `json:"file_content"`
	}

	// ~2MB payload: over the default body cap, within the document cap
	req := httptest.NewRequest("POST", "/", largeJSONBody(t, 2<<20))
	w := httptest.NewRecorder()

	err := decodeJSONMax(w, req, &dst, maxDocumentBytes)
	require.NoError(t, err)
	assert.Len(t, dst.FileContent, 2<<20)
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	var dst struct {
		FileContent string `json:"file_content"`
	}

	req := httptest.NewRequest("POST", "/", largeJSONBody(t, 2<<20))
	w := httptest.NewRecorder()

	err := decodeJSON(w, req, &dst)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
