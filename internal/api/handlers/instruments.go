package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/gin-gonic/gin"
)

type InstrumentsHandler struct{}

func NewInstrumentsHandler() *InstrumentsHandler {
	return &InstrumentsHandler{}
}

type InstrumentInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	StringCount int      `json:"stringCount"`
	StringNames []string `json:"stringNames"`
	Tuning      []string `json:"tuning"`
}

// ListInstruments returns the embedded instrument catalog
func (h *InstrumentsHandler) ListInstruments(c *gin.Context) {
	presets, err := fretboard.Presets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load instrument presets"})
		return
	}

	instruments := make([]InstrumentInfo, 0, len(presets))
	for _, p := range presets {
		inst, err := p.Instrument()
		if err != nil {
			continue
		}
		instruments = append(instruments, InstrumentInfo{
			ID:          p.ID,
			Name:        p.Name,
			StringCount: inst.StringCount(),
			StringNames: inst.StringNames(),
			Tuning:      p.Tuning,
		})
	}

	c.JSON(http.StatusOK, gin.H{"instruments": instruments})
}

// resolveInstrument builds the instrument for a request. An explicit
// tuning string wins over the preset id; an empty id means guitar.
func resolveInstrument(instrumentID, tuning string) (fretboard.Instrument, error) {
	if tuning != "" {
		notes, err := fretboard.ParseTuning(tuning)
		if err != nil {
			return nil, err
		}
		return fretboard.NewCustomFromTuning(notes)
	}
	if instrumentID == "" {
		instrumentID = "guitar"
	}
	return fretboard.NewPresetInstrument(instrumentID)
}
