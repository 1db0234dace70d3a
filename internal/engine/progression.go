package engine

import (
	"sort"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// Transition scoring weights. Band mode weights movement and position
// jumps more heavily than solo.
const (
	transitionBaseScore        = 100
	movementWeight             = 30
	anchorBonus                = 20
	sameShapeBonus             = 50
	barreSimilarityBonus       = 15
	openPositionBonus          = 10
	stringCountSimilarityBonus = 5
	distancePenalty            = 5

	bandMovementWeight  = 40
	bandDistancePenalty = 8
)

// ProgressionOptions control the beam search over chord sequences.
type ProgressionOptions struct {
	// Limit caps the number of returned sequences.
	Limit int
	// MaxFretDistance is the largest allowed position jump between
	// consecutive fingerings.
	MaxFretDistance int
	// CandidatesPerChord bounds the fingerings considered per chord.
	CandidatesPerChord int
	// Generator configures per-chord fingering generation.
	Generator GeneratorOptions
}

// DefaultProgressionOptions returns the options used when a caller
// supplies none.
func DefaultProgressionOptions() ProgressionOptions {
	return ProgressionOptions{
		Limit:              3,
		MaxFretDistance:    3,
		CandidatesPerChord: 20,
		Generator:          DefaultGeneratorOptions(),
	}
}

// ChordTransition scores the hand movement between two consecutive
// fingerings.
type ChordTransition struct {
	FromChord        string
	ToChord          string
	FromFingering    ScoredFingering
	ToFingering      ScoredFingering
	Score            int
	FingerMovements  int
	CommonAnchors    int
	PositionDistance int
}

// ProgressionSequence is one fingering per chord plus the transitions
// between them.
type ProgressionSequence struct {
	Chords             []string
	Fingerings         []ScoredFingering
	Transitions        []ChordTransition
	TotalScore         int
	AvgTransitionScore float64
}

// GenerateProgression picks one fingering per chord so that consecutive
// changes stay easy. A beam search carries the best partial sequences
// forward chord by chord; names that fail to parse are skipped. When a
// chord has no playable fingerings, or no transition stays within the
// distance limit, there is no sequence to return.
func GenerateProgression(chordNames []string, inst fretboard.Instrument, opts ProgressionOptions) []ProgressionSequence {
	var (
		chords []theory.Chord
		names  []string
	)
	for _, name := range chordNames {
		chord, err := theory.ParseChord(name)
		if err != nil {
			continue
		}
		chords = append(chords, chord)
		names = append(names, name)
	}
	if len(chords) == 0 {
		return nil
	}

	genOpts := opts.Generator
	genOpts.Limit = opts.CandidatesPerChord
	candidates := make([][]ScoredFingering, len(chords))
	for i, chord := range chords {
		candidates[i] = GenerateFingerings(chord, inst, genOpts)
		if len(candidates[i]) == 0 {
			return nil
		}
	}

	shapes := fretboard.ShapesFor(inst)

	beam := make([]beamEntry, 0, len(candidates[0]))
	for _, start := range candidates[0] {
		beam = append(beam, beamEntry{fingerings: []ScoredFingering{start}})
	}
	width := beamWidth(opts.Limit)

	for i := 1; i < len(chords); i++ {
		var expanded []beamEntry
		for _, entry := range beam {
			from := entry.fingerings[len(entry.fingerings)-1]
			for _, to := range candidates[i] {
				transition := scoreTransition(names[i-1], names[i], from, to, inst, shapes, opts.Generator.PlayingContext)
				if transition.PositionDistance > opts.MaxFretDistance {
					continue
				}
				expanded = append(expanded, entry.extend(to, transition))
			}
		}
		if len(expanded) == 0 {
			return nil
		}

		sort.SliceStable(expanded, func(a, b int) bool { return expanded[a].score > expanded[b].score })
		if len(expanded) > width {
			expanded = expanded[:width]
		}
		beam = expanded
	}

	sort.SliceStable(beam, func(a, b int) bool { return beam[a].score > beam[b].score })
	limit := opts.Limit
	if limit < 0 {
		limit = 0
	}
	if len(beam) > limit {
		beam = beam[:limit]
	}

	sequences := make([]ProgressionSequence, 0, len(beam))
	for _, entry := range beam {
		avg := 0.0
		if len(entry.transitions) > 0 {
			avg = float64(entry.score) / float64(len(entry.transitions))
		}
		sequences = append(sequences, ProgressionSequence{
			Chords:             names,
			Fingerings:         entry.fingerings,
			Transitions:        entry.transitions,
			TotalScore:         entry.score,
			AvgTransitionScore: avg,
		})
	}
	return sequences
}

// beamEntry is one partial sequence: the fingerings chosen so far and
// the accumulated transition score.
type beamEntry struct {
	fingerings  []ScoredFingering
	transitions []ChordTransition
	score       int
}

func (e beamEntry) extend(next ScoredFingering, transition ChordTransition) beamEntry {
	fingerings := make([]ScoredFingering, 0, len(e.fingerings)+1)
	fingerings = append(fingerings, e.fingerings...)
	fingerings = append(fingerings, next)

	transitions := make([]ChordTransition, 0, len(e.transitions)+1)
	transitions = append(transitions, e.transitions...)
	transitions = append(transitions, transition)

	return beamEntry{
		fingerings:  fingerings,
		transitions: transitions,
		score:       e.score + transition.Score,
	}
}

// beamWidth is three times the requested limit, with a floor that keeps
// narrow requests from starving the search.
func beamWidth(limit int) int {
	width := limit * 3
	if width < 10 {
		width = 10
	}
	return width
}

func scoreTransition(fromChord, toChord string, from, to ScoredFingering, inst fretboard.Instrument, shapes []fretboard.StandardShape, ctx PlayingContext) ChordTransition {
	moveWeight, distWeight := movementWeight, distancePenalty
	if ctx == ContextBand {
		moveWeight, distWeight = bandMovementWeight, bandDistancePenalty
	}

	score := transitionBaseScore

	movements, anchors := calculateFingerChanges(from.Fingering, to.Fingering)
	score += (4 - movements) * moveWeight
	score += anchors * anchorBonus
	score += shapeSimilarity(from.Fingering, to.Fingering, inst, shapes)

	distance := abs(to.Position - from.Position)
	score -= distance * distWeight

	return ChordTransition{
		FromChord:        fromChord,
		ToChord:          toChord,
		FromFingering:    from,
		ToFingering:      to,
		Score:            score,
		FingerMovements:  movements,
		CommonAnchors:    anchors,
		PositionDistance: distance,
	}
}

// calculateFingerChanges counts strings whose fretted or muted state
// differs (movements) and strings fretted identically in both
// (anchors).
func calculateFingerChanges(from, to fretboard.Fingering) (movements, anchors int) {
	fromStrings := from.Strings()
	toStrings := to.Strings()
	count := len(fromStrings)
	if len(toStrings) < count {
		count = len(toStrings)
	}

	for i := 0; i < count; i++ {
		fromFret, fromPlayed := fromStrings[i].Fret()
		toFret, toPlayed := toStrings[i].Fret()
		switch {
		case fromPlayed && toPlayed && fromFret == toFret:
			anchors++
		case fromPlayed || toPlayed:
			movements++
		}
	}
	return movements, anchors
}

// shapeSimilarity rewards transitions between related hand shapes. A
// slide of one movable shape is the easiest change of all.
func shapeSimilarity(from, to fretboard.Fingering, inst fretboard.Instrument, shapes []fretboard.StandardShape) int {
	bonus := 0

	if len(shapes) > 0 {
		fromShape, _, fromOK := fretboard.FindMatchingShape(from, shapes)
		toShape, _, toOK := fretboard.FindMatchingShape(to, shapes)
		if fromOK && toOK && fromShape.Name == toShape.Name {
			bonus += sameShapeBonus
		}
	}

	if from.HasBarre() && to.HasBarre() {
		bonus += barreSimilarityBonus
	}
	if from.IsOpenPosition(inst) && to.IsOpenPosition(inst) {
		bonus += openPositionBonus
	}
	if abs(from.PlayedCount()-to.PlayedCount()) <= 1 {
		bonus += stringCountSimilarityBonus
	}
	return bonus
}
