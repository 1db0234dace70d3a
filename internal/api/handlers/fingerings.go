package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/engine"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

var errInvalidVoicing = errors.New("Invalid voicing. Allowed: full, core, jazzy")

type FingeringsHandler struct {
	cfg           *config.Config
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

func NewFingeringsHandler(cfg *config.Config, cloudwatch *metrics.Client) *FingeringsHandler {
	return &FingeringsHandler{
		cfg:           cfg,
		cloudwatch:    cloudwatch,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

type GenerationOptions struct {
	Limit    int    `json:"limit"`
	Position *int   `json:"position"`
	Voicing  string `json:"voicing"` // full, core or jazzy
	Context  string `json:"context"` // solo (default) or band
}

type FingeringsRequest struct {
	Chord      string             `json:"chord" binding:"required"`
	Instrument string             `json:"instrument"`
	Tuning     string             `json:"tuning"`
	Capo       int                `json:"capo"`
	Options    *GenerationOptions `json:"options"`
}

type FingeringResponse struct {
	Tab           string   `json:"tab"`
	Score         int      `json:"score"`
	VoicingType   string   `json:"voicingType"`
	HasRootInBass bool     `json:"hasRootInBass"`
	Position      int      `json:"position"`
	Notes         []string `json:"notes"`
	Diagram       string   `json:"diagram,omitempty"`
}

// GenerateFingerings returns scored fingerings for a chord name
func (h *FingeringsHandler) GenerateFingerings(c *gin.Context) {
	var req FingeringsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chord, err := theory.ParseChord(req.Chord)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inst, err := resolveInstrument(req.Instrument, req.Tuning)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// With a capo the search runs on the transposed shape; results
	// keep the requested chord's name.
	searchChord := chord
	if req.Capo != 0 {
		if req.Capo < 0 || req.Capo > inst.MaxCapoFret() {
			capoErr := &fretboard.InvalidCapoPositionError{Fret: req.Capo, Min: 0, Max: inst.MaxCapoFret()}
			c.JSON(http.StatusBadRequest, gin.H{"error": capoErr.Error()})
			return
		}
		searchChord = chord.Transpose(-req.Capo)
	}

	opts, err := h.generatorOptions(req.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	results := engine.GenerateFingerings(searchChord, inst, opts)
	duration := time.Since(start)

	logger.LogEngineRequest(c.Request.Context(), "fingerings", duration,
		map[string]interface{}{"results": len(results)},
		logger.Fields{
			"request_id": c.GetString("request_id"),
			"chord":      req.Chord,
			"instrument": inst.Name(),
		})
	h.cloudwatch.RecordGeneration(inst.Name(), duration, len(results))
	h.sentryMetrics.RecordEngineSearch(c.Request.Context(), "fingerings", inst.Name(), len(results))

	fingerings := make([]FingeringResponse, 0, len(results))
	for _, scored := range results {
		fr := fingeringResponse(scored, inst)
		fr.Diagram = engine.FormatFingeringDiagram(scored, inst)
		fingerings = append(fingerings, fr)
	}

	response := gin.H{
		"chord":      req.Chord,
		"instrument": inst.Name(),
		"count":      len(fingerings),
		"fingerings": fingerings,
	}
	if req.Capo != 0 {
		response["capo"] = req.Capo
		response["shape"] = searchChord.String()
	}

	c.JSON(http.StatusOK, response)
}

// generatorOptions merges request options over the configured defaults.
func (h *FingeringsHandler) generatorOptions(in *GenerationOptions) (engine.GeneratorOptions, error) {
	opts := engine.DefaultGeneratorOptions()
	opts.Limit = h.cfg.DefaultLimit
	opts.MaxFret = h.cfg.MaxSearchFret

	if in == nil {
		return opts, nil
	}

	if in.Limit > 0 {
		opts.Limit = in.Limit
	}
	if opts.Limit > maxFingeringLimit {
		opts.Limit = maxFingeringLimit
	}
	opts.PreferredPosition = in.Position
	if in.Voicing != "" {
		voicing, ok := engine.ParseVoicingType(in.Voicing)
		if !ok {
			return opts, errInvalidVoicing
		}
		opts.VoicingType = voicing
	}
	opts.PlayingContext = engine.ParsePlayingContext(in.Context)

	return opts, nil
}

// fingeringResponse leaves Diagram empty; callers fill it where the
// payload wants rendered diagrams.
func fingeringResponse(scored engine.ScoredFingering, inst fretboard.Instrument) FingeringResponse {
	pitches := scored.Fingering.UniquePitchClasses(inst)
	notes := make([]string, len(pitches))
	for i, p := range pitches {
		notes[i] = p.String()
	}

	return FingeringResponse{
		Tab:           scored.Fingering.String(),
		Score:         scored.Score,
		VoicingType:   string(scored.VoicingType),
		HasRootInBass: scored.HasRootInBass,
		Position:      scored.Position,
		Notes:         notes,
	}
}
