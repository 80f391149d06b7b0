package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokertools/marketplace/api/internal/platform/logger"
)

func TestParsePositiveInt(t *testing.T) {
	v, ok := ParsePositiveInt(" 12 ", 5)
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		v, ok := ParsePositiveInt(raw, 5)
		assert.False(t, ok, raw)
		assert.Equal(t, 5, v, raw)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(logger.NewNop(), rec, http.StatusBadRequest, "bad")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"bad"}`, rec.Body.String())
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxRequestBody) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var dst map[string]string
	require.Error(t, DecodeJSON(req, &dst))
}
