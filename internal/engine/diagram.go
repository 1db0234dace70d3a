package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
)

// FormatFingeringDiagram renders a fingering as a text diagram, highest
// string on top, followed by the score line and the sounding notes.
func FormatFingeringDiagram(scored ScoredFingering, inst fretboard.Instrument) string {
	states := scored.Fingering.Strings()
	names := inst.StringNames()

	var lines []string
	for i := len(states) - 1; i >= 0; i-- {
		name := "?"
		if i < len(names) {
			name = names[i]
		}
		fret := "x"
		if f, ok := states[i].Fret(); ok {
			fret = strconv.Itoa(f)
		}
		lines = append(lines, fmt.Sprintf("%s|---%s---", name, fret))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Score: %d | Position: Fret %d | Voicing: %s",
		scored.Score, scored.Position, voicingLabel(scored.VoicingType)))

	if scored.HasRootInBass {
		lines = append(lines, "Root in bass: Yes")
	}

	pitches := scored.Fingering.UniquePitchClasses(inst)
	pitchNames := make([]string, len(pitches))
	for i, p := range pitches {
		pitchNames[i] = p.String()
	}
	lines = append(lines, "Notes: "+strings.Join(pitchNames, ", "))

	return strings.Join(lines, "\n")
}

func voicingLabel(v VoicingType) string {
	switch v {
	case VoicingFull:
		return "Full"
	case VoicingCore:
		return "Core"
	default:
		return "Jazzy"
	}
}
