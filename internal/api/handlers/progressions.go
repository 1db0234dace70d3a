package handlers

import (
	"fmt"
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

type ProgressionsHandler struct {
	cfg           *config.Config
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

func NewProgressionsHandler(cfg *config.Config, cloudwatch *metrics.Client) *ProgressionsHandler {
	return &ProgressionsHandler{
		cfg:           cfg,
		cloudwatch:    cloudwatch,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

type ProgressionOptions struct {
	Limit       int    `json:"limit"`
	MaxDistance *int   `json:"maxDistance"` // Largest fret jump between consecutive chords
	Position    *int   `json:"position"`
	Voicing     string `json:"voicing"`
	Context     string `json:"context"`
}

type ProgressionsRequest struct {
	Chords     []string            `json:"chords" binding:"required"`
	Instrument string              `json:"instrument"`
	Tuning     string              `json:"tuning"`
	Capo       int                 `json:"capo"`
	Options    *ProgressionOptions `json:"options"`
}

type TransitionResponse struct {
	FromChord        string            `json:"fromChord"`
	ToChord          string            `json:"toChord"`
	FromFingering    FingeringResponse `json:"fromFingering"`
	ToFingering      FingeringResponse `json:"toFingering"`
	Score            int               `json:"score"`
	FingerMovements  int               `json:"fingerMovements"`
	CommonAnchors    int               `json:"commonAnchors"`
	PositionDistance int               `json:"positionDistance"`
}

type SequenceResponse struct {
	Chords             []string             `json:"chords"`
	Fingerings         []FingeringResponse  `json:"fingerings"`
	Transitions        []TransitionResponse `json:"transitions"`
	TotalScore         int                  `json:"totalScore"`
	AvgTransitionScore float64              `json:"avgTransitionScore"`
}

// GenerateProgression returns fingering sequences for a chord progression
func (h *ProgressionsHandler) GenerateProgression(c *gin.Context) {
	var req ProgressionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Chords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No chords provided"})
		return
	}
	if len(req.Chords) > maxProgressionChords {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Too many chords. Maximum: %d", maxProgressionChords),
		})
		return
	}

	inst, err := resolveInstrument(req.Instrument, req.Tuning)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Capo != 0 && (req.Capo < 0 || req.Capo > inst.MaxCapoFret()) {
		capoErr := &fretboard.InvalidCapoPositionError{Fret: req.Capo, Min: 0, Max: inst.MaxCapoFret()}
		c.JSON(http.StatusBadRequest, gin.H{"error": capoErr.Error()})
		return
	}

	// Names that fail to parse are dropped, matching the generator.
	// With a capo the search runs on the transposed shapes and the
	// response keeps the requested names.
	labels := make([]string, 0, len(req.Chords))
	searchNames := make([]string, 0, len(req.Chords))
	for _, name := range req.Chords {
		chord, err := theory.ParseChord(name)
		if err != nil {
			continue
		}
		labels = append(labels, name)
		if req.Capo != 0 {
			chord = chord.Transpose(-req.Capo)
		}
		searchNames = append(searchNames, chord.String())
	}

	opts := h.progressionOptions(req.Options)

	start := time.Now()
	sequences := engine.GenerateProgression(searchNames, inst, opts)
	duration := time.Since(start)

	logger.LogEngineRequest(c.Request.Context(), "progressions", duration,
		map[string]interface{}{"results": len(sequences)},
		logger.Fields{
			"request_id": c.GetString("request_id"),
			"chords":     len(req.Chords),
			"instrument": inst.Name(),
		})
	h.cloudwatch.RecordProgression(inst.Name(), duration, len(searchNames), len(sequences))
	h.sentryMetrics.RecordEngineSearch(c.Request.Context(), "progressions", inst.Name(), len(sequences))

	responses := make([]SequenceResponse, 0, len(sequences))
	for _, seq := range sequences {
		responses = append(responses, sequenceResponse(seq, labels, inst))
	}

	response := gin.H{
		"chords":     labels,
		"instrument": inst.Name(),
		"count":      len(responses),
		"sequences":  responses,
	}
	if req.Capo != 0 {
		response["capo"] = req.Capo
		response["shapes"] = searchNames
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProgressionsHandler) progressionOptions(in *ProgressionOptions) engine.ProgressionOptions {
	opts := engine.DefaultProgressionOptions()
	opts.Generator.MaxFret = h.cfg.MaxSearchFret

	if in == nil {
		return opts
	}

	if in.Limit > 0 {
		opts.Limit = in.Limit
	}
	if opts.Limit > maxProgressionLimit {
		opts.Limit = maxProgressionLimit
	}
	if in.MaxDistance != nil {
		opts.MaxFretDistance = *in.MaxDistance
	}
	opts.Generator.PreferredPosition = in.Position
	if voicing, ok := engine.ParseVoicingType(in.Voicing); ok {
		opts.Generator.VoicingType = voicing
	}
	opts.Generator.PlayingContext = engine.ParsePlayingContext(in.Context)

	return opts
}

// sequenceResponse relabels search names with the requested chord
// names. The engine preserves chord order, so labels line up by index.
func sequenceResponse(seq engine.ProgressionSequence, labels []string, inst fretboard.Instrument) SequenceResponse {
	fingerings := make([]FingeringResponse, 0, len(seq.Fingerings))
	for _, scored := range seq.Fingerings {
		fr := fingeringResponse(scored, inst)
		fr.Diagram = engine.FormatFingeringDiagram(scored, inst)
		fingerings = append(fingerings, fr)
	}

	transitions := make([]TransitionResponse, 0, len(seq.Transitions))
	for i, t := range seq.Transitions {
		from, to := t.FromChord, t.ToChord
		if i < len(labels)-1 {
			from, to = labels[i], labels[i+1]
		}
		transitions = append(transitions, TransitionResponse{
			FromChord:        from,
			ToChord:          to,
			FromFingering:    fingeringResponse(t.FromFingering, inst),
			ToFingering:      fingeringResponse(t.ToFingering, inst),
			Score:            t.Score,
			FingerMovements:  t.FingerMovements,
			CommonAnchors:    t.CommonAnchors,
			PositionDistance: t.PositionDistance,
		})
	}

	chords := seq.Chords
	if len(labels) == len(seq.Chords) {
		chords = labels
	}

	return SequenceResponse{
		Chords:             chords,
		Fingerings:         fingerings,
		Transitions:        transitions,
		TotalScore:         seq.TotalScore,
		AvgTransitionScore: seq.AvgTransitionScore,
	}
}
