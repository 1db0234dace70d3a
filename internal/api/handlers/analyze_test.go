package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchesOf(t *testing.T, response map[string]interface{}) []map[string]interface{} {
	t.Helper()

	raw, ok := response["matches"].([]interface{})
	require.True(t, ok, "Response should have 'matches' array")

	matches := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		require.True(t, ok)
		matches = append(matches, m)
	}
	return matches
}

func TestAnalyzeOpenCMajor(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "x32010",
	})
	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, "x32010", response["tab"])
	assert.Equal(t, "Guitar", response["instrument"])
	assert.Equal(t, []interface{}{"C", "E", "G"}, response["notes"])

	matches := matchesOf(t, response)
	require.NotEmpty(t, matches)
	assert.Equal(t, "C", matches[0]["name"])
	assert.Equal(t, float64(100), matches[0]["confidence"])
	assert.Equal(t, "100% complete with root in bass", matches[0]["explanation"])
}

func TestAnalyzeSeventhChord(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "320001",
	})
	require.Equal(t, http.StatusOK, w.Code)

	matches := matchesOf(t, decodeBody(t, w))
	require.NotEmpty(t, matches)
	assert.Equal(t, "G7", matches[0]["name"])
	assert.Equal(t, "100% complete with root in bass", matches[0]["explanation"])
}

func TestAnalyzePartialChord(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "x32xxx",
	})
	require.Equal(t, http.StatusOK, w.Code)

	matches := matchesOf(t, decodeBody(t, w))
	require.NotEmpty(t, matches)
	assert.Equal(t, "C", matches[0]["name"])
	assert.Equal(t, float64(66), matches[0]["confidence"], "Two of three triad tones")
}

func TestAnalyzeInversionLosesBassBonus(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "032010",
	})
	require.Equal(t, http.StatusOK, w.Code)

	matches := matchesOf(t, decodeBody(t, w))
	require.NotEmpty(t, matches)
	assert.Equal(t, "C", matches[0]["name"])
	assert.Equal(t, "100% complete", matches[0]["explanation"])
}

func TestAnalyzeAllMuted(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "xxxxxx",
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Empty(t, response["notes"])
	assert.Empty(t, response["matches"])
}

func TestAnalyzeStringCountMismatch(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "0003",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "fingering has 4 strings but Guitar has 6", response["error"])
}

func TestAnalyzeInvalidTab(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab": "zz!",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeMissingTab(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeUkulele(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyze", map[string]interface{}{
		"tab":        "0003",
		"instrument": "ukulele",
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Ukulele", response["instrument"])

	matches := matchesOf(t, response)
	require.NotEmpty(t, matches)
	assert.Equal(t, "C", matches[0]["name"])
	assert.Equal(t, float64(100), matches[0]["confidence"])
}
