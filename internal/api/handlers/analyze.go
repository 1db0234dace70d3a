package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/engine"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

type AnalyzeHandler struct {
	sentryMetrics *metrics.SentryMetrics
}

func NewAnalyzeHandler() *AnalyzeHandler {
	return &AnalyzeHandler{
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

type AnalyzeRequest struct {
	Tab        string `json:"tab" binding:"required"`
	Instrument string `json:"instrument"`
	Tuning     string `json:"tuning"`
}

type ChordMatchResponse struct {
	Name        string `json:"name"`
	Confidence  int    `json:"confidence"`
	Explanation string `json:"explanation"`
}

// AnalyzeFingering names the chords a tab could be
func (h *AnalyzeHandler) AnalyzeFingering(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fingering, err := fretboard.ParseFingering(req.Tab)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inst, err := resolveInstrument(req.Instrument, req.Tuning)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if fingering.StringCount() != inst.StringCount() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("fingering has %d strings but %s has %d", fingering.StringCount(), inst.Name(), inst.StringCount()),
		})
		return
	}

	start := time.Now()
	matches := engine.AnalyzeFingering(fingering, inst)
	duration := time.Since(start)

	logger.LogEngineRequest(c.Request.Context(), "analyze", duration,
		map[string]interface{}{"results": len(matches)},
		logger.Fields{
			"request_id": c.GetString("request_id"),
			"tab":        req.Tab,
			"instrument": inst.Name(),
		})
	h.sentryMetrics.RecordEngineSearch(c.Request.Context(), "analyze", inst.Name(), len(matches))

	pitches := fingering.UniquePitchClasses(inst)
	notes := make([]string, len(pitches))
	for i, p := range pitches {
		notes[i] = p.String()
	}

	responses := make([]ChordMatchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, chordMatchResponse(m))
	}

	c.JSON(http.StatusOK, gin.H{
		"tab":        req.Tab,
		"instrument": inst.Name(),
		"notes":      notes,
		"matches":    responses,
	})
}

func chordMatchResponse(m engine.ChordMatch) ChordMatchResponse {
	confidence := int(m.Completeness * 100)
	explanation := fmt.Sprintf("%d%% complete", confidence)
	if m.RootInBass {
		explanation += " with root in bass"
	}

	return ChordMatchResponse{
		Name:        m.Chord.String(),
		Confidence:  confidence,
		Explanation: explanation,
	}
}
