package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Conceptual-Machines/fretboard-api/internal/api/middleware"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRouter creates a minimal test router with just the endpoints we need
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:   "test",
		DefaultLimit:  10,
		MaxSearchFret: 12,
		AuthMode:      "none",
	}
	cloudwatch, _ := metrics.NewClient(context.Background(), cfg.Environment, false, "")

	router := gin.New()
	router.Use(gin.Recovery())

	healthHandler := NewHealthHandler(nil)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := NewMetricsHandler("test-version")
	router.GET("/api/v1/metrics", metricsHandler.GetMetrics)

	instrumentsHandler := NewInstrumentsHandler()
	router.GET("/api/v1/instruments", instrumentsHandler.ListInstruments)

	fingeringsHandler := NewFingeringsHandler(cfg, cloudwatch)
	router.POST("/api/v1/fingerings", fingeringsHandler.GenerateFingerings)

	analyzeHandler := NewAnalyzeHandler()
	router.POST("/api/v1/analyze", analyzeHandler.AnalyzeFingering)

	progressionsHandler := NewProgressionsHandler(cfg, cloudwatch)
	router.POST("/api/v1/progressions", progressionsHandler.GenerateProgression)

	libraryHandler := NewLibraryHandler(nil)
	library := router.Group("/api/v1/library")
	library.Use(middleware.NoAuth())
	{
		library.POST("/progressions", libraryHandler.SaveProgression)
		library.GET("/progressions", libraryHandler.ListProgressions)
		library.POST("/fingerings", libraryHandler.SaveFavorite)
	}

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHealthWithoutDatabase(t *testing.T) {
	router := setupTestRouter()

	w := getPath(t, router, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "healthy", response["status"])

	database, ok := response["database"].(map[string]interface{})
	require.True(t, ok, "Response should have 'database' object")
	assert.Equal(t, "disabled", database["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter()

	w := getPath(t, router, "/api/v1/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "test-version", response["version"])
	assert.NotEmpty(t, response["uptime"])

	system, ok := response["system"].(map[string]interface{})
	require.True(t, ok, "Response should have 'system' object")
	assert.NotEmpty(t, system["go_version"])

	engineInfo, ok := response["engine"].(map[string]interface{})
	require.True(t, ok, "Response should have 'engine' object")
	assert.Equal(t, float64(11), engineInfo["instruments"])
	assert.Equal(t, float64(29), engineInfo["chord_qualities"])
}

func TestListInstruments(t *testing.T) {
	router := setupTestRouter()

	w := getPath(t, router, "/api/v1/instruments")
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	instruments, ok := response["instruments"].([]interface{})
	require.True(t, ok, "Response should have 'instruments' array")
	require.Len(t, instruments, 11)

	var guitar map[string]interface{}
	for _, entry := range instruments {
		info := entry.(map[string]interface{})
		if info["id"] == "guitar" {
			guitar = info
			break
		}
	}
	require.NotNil(t, guitar, "Catalog should include guitar")
	assert.Equal(t, "Guitar", guitar["name"])
	assert.Equal(t, float64(6), guitar["stringCount"])

	names, ok := guitar["stringNames"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"E", "A", "D", "G", "B", "e"}, names)

	tuning, ok := guitar["tuning"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"E2", "A2", "D3", "G3", "B3", "E4"}, tuning)
}
