package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryUnavailableWithoutDatabase(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/library/progressions", map[string]interface{}{
		"title":      "Campfire set",
		"chords":     []string{"C", "G"},
		"fingerings": []string{"x32010", "320003"},
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Persistence not configured", response["error"])

	w = getPath(t, router, "/api/v1/library/progressions")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = postJSON(t, router, "/api/v1/library/fingerings", map[string]interface{}{
		"chord": "C",
		"tab":   "x32010",
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
