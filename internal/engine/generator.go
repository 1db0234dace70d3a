// Package engine turns chords into ranked playable fingerings and back,
// and optimizes fingering sequences across chord progressions.
package engine

import (
	"sort"
	"strings"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// PlayingContext selects a scoring profile. Solo favors complete,
// root-grounded voicings; Band favors compact mid-neck voicings that
// leave the low strings to a bass player.
type PlayingContext string

const (
	ContextSolo PlayingContext = "solo"
	ContextBand PlayingContext = "band"
)

// ParsePlayingContext is lenient: anything that is not "band" plays
// solo.
func ParsePlayingContext(s string) PlayingContext {
	if strings.EqualFold(strings.TrimSpace(s), string(ContextBand)) {
		return ContextBand
	}
	return ContextSolo
}

// VoicingType classifies how much of a chord's tone set a fingering
// carries.
type VoicingType string

const (
	// VoicingFull sounds every chord tone.
	VoicingFull VoicingType = "full"
	// VoicingCore sounds every essential tone but not all of them.
	VoicingCore VoicingType = "core"
	// VoicingJazzy is a partial voicing missing at least one essential
	// tone.
	VoicingJazzy VoicingType = "jazzy"
)

// ParseVoicingType parses a voicing name, case-insensitively.
func ParseVoicingType(s string) (VoicingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return VoicingFull, true
	case "core":
		return VoicingCore, true
	case "jazzy":
		return VoicingJazzy, true
	}
	return "", false
}

// GeneratorOptions control fingering search and scoring.
type GeneratorOptions struct {
	// Limit caps the number of returned fingerings.
	Limit int
	// PreferredPosition pulls scoring toward a fret position when set.
	PreferredPosition *int
	// VoicingType keeps only one voicing class when set.
	VoicingType VoicingType
	// RootInBass is not read by the current scoring profiles; the
	// context profiles already weight root placement.
	RootInBass bool
	// MaxFret bounds the fret range searched on every string.
	MaxFret int
	// PlayingContext selects the solo or band scoring profile.
	PlayingContext PlayingContext
}

// DefaultGeneratorOptions returns the options used when a caller
// supplies none.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Limit:          10,
		RootInBass:     true,
		MaxFret:        12,
		PlayingContext: ContextSolo,
	}
}

// ScoredFingering is one generated fingering with its ranking data.
type ScoredFingering struct {
	Fingering     fretboard.Fingering
	Score         int
	VoicingType   VoicingType
	HasRootInBass bool
	// Position is the truncated mean of the fretted frets, 0 for
	// all-open fingerings.
	Position int
}

// GenerateFingerings searches every per-string fret assignment that
// sounds only chord tones, filters the unplayable ones, and returns
// the highest scoring fingerings first. It never fails: a chord no
// string can voice simply yields an empty list.
func GenerateFingerings(chord theory.Chord, inst fretboard.Instrument, opts GeneratorOptions) []ScoredFingering {
	tuning := inst.Tuning()
	allTones := chord.Tones()
	coreTones := chord.CoreTones()
	allSet := pitchSet(allTones)

	stringOptions := make([][]fretboard.StringState, len(tuning))
	for i, open := range tuning {
		options := []fretboard.StringState{fretboard.Muted}
		for fret := 0; fret <= opts.MaxFret; fret++ {
			if allSet[open.Pitch.AddSemitones(fret)] {
				options = append(options, fretboard.StringState(fret))
			}
		}
		stringOptions[i] = options
	}

	var combinations [][]fretboard.StringState
	collectCombinations(stringOptions, make([]fretboard.StringState, 0, len(tuning)), &combinations,
		inst.MaxStretch(), inst.MinPlayedStrings())

	scored := make([]ScoredFingering, 0, len(combinations))
	for _, states := range combinations {
		fingering := fretboard.NewFingering(states)

		if !fingering.IsPlayable(inst) {
			continue
		}
		playedCount := fingering.PlayedCount()
		if playedCount < inst.MinPlayedStrings() {
			continue
		}

		sounding := pitchSet(fingering.UniquePitchClasses(inst))
		hasAllCore := containsAll(sounding, coreTones)
		hasAllNotes := containsAll(sounding, allTones)

		voicing := VoicingJazzy
		switch {
		case hasAllNotes:
			voicing = VoicingFull
		case hasAllCore:
			voicing = VoicingCore
		}
		if opts.VoicingType != "" && voicing != opts.VoicingType {
			continue
		}

		hasRootInBass := false
		if bass, ok := fingering.BassNote(inst); ok {
			hasRootInBass = bass.Pitch == chord.Root
		}

		position := frettedPosition(fingering)

		score := scoreFingering(fingering, inst, opts, scoreInputs{
			hasAllNotes:   hasAllNotes,
			hasAllCore:    hasAllCore,
			hasRootInBass: hasRootInBass,
			position:      position,
			playedCount:   playedCount,
			voicing:       voicing,
		})
		if score < 0 {
			score = 0
		}

		scored = append(scored, ScoredFingering{
			Fingering:     fingering,
			Score:         score,
			VoicingType:   voicing,
			HasRootInBass: hasRootInBass,
			Position:      position,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	scored = deduplicateFingerings(scored)

	limit := opts.Limit
	if limit < 0 {
		limit = 0
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func collectCombinations(stringOptions [][]fretboard.StringState, current []fretboard.StringState,
	results *[][]fretboard.StringState, maxStretch, minPlayed int) {
	if len(current) == len(stringOptions) {
		*results = append(*results, append([]fretboard.StringState(nil), current...))
		return
	}

	for _, state := range stringOptions[len(current)] {
		next := append(current, state)
		if shouldContinueBranch(next, len(stringOptions), maxStretch, minPlayed) {
			collectCombinations(stringOptions, next, results, maxStretch, minPlayed)
		}
	}
}

// shouldContinueBranch prunes branches that can no longer reach the
// minimum played strings or already exceed the stretch limit.
func shouldContinueBranch(current []fretboard.StringState, totalStrings, maxStretch, minPlayed int) bool {
	played := 0
	for _, s := range current {
		if s.IsPlayed() {
			played++
		}
	}
	remaining := totalStrings - len(current)
	if played+remaining < minPlayed {
		return false
	}
	if played < 2 {
		return true
	}

	min, max, hasFretted := 0, 0, false
	for _, s := range current {
		if fret, ok := s.Fret(); ok && fret > 0 {
			if !hasFretted || fret < min {
				min = fret
			}
			if !hasFretted || fret > max {
				max = fret
			}
			hasFretted = true
		}
	}
	if !hasFretted {
		return true
	}
	return max-min <= maxStretch
}

// Fingering scoring weights, context-independent first.
const (
	stringUsageBonus        = 8
	interiorMutePenalty     = 30
	positionDistancePenalty = 3

	soloRootInBassBonus         = 30
	soloFullVoicingBonus        = 20
	soloCoreVoicingBonus        = 5
	soloJazzyWithoutRootPenalty = 15
	soloPositionThreshold       = 5
	soloHighPositionPenalty     = 5

	bandRootInBassBonus      = 5
	bandCompactVoicingBonus  = 20
	bandFullVoicingBonus     = 5
	bandAvoidLowStringsBonus = 10
	bandMidNeckMin           = 3
	bandMidNeckMax           = 10
	bandPositionPenalty      = 3
)

type scoreInputs struct {
	hasAllNotes   bool
	hasAllCore    bool
	hasRootInBass bool
	position      int
	playedCount   int
	voicing       VoicingType
}

func scoreFingering(f fretboard.Fingering, inst fretboard.Instrument, opts GeneratorOptions, in scoreInputs) int {
	score := f.PlayabilityScore(inst)
	score += in.playedCount * stringUsageBonus

	// Interior mutes kill strums; leading and trailing mutes are free.
	score -= interiorMuteCount(f) * interiorMutePenalty

	if opts.PlayingContext == ContextBand {
		if in.hasRootInBass {
			score += bandRootInBassBonus
		}

		// Compactness over completeness: another instrument covers the
		// missing tones.
		if in.voicing == VoicingFull {
			score += bandFullVoicingBonus
		} else {
			score += bandCompactVoicingBonus
		}

		states := f.Strings()
		usesLowE := len(states) > 0 && states[0].IsPlayed()
		usesLowA := len(states) > 1 && states[1].IsPlayed()
		if !usesLowE && !usesLowA {
			score += bandAvoidLowStringsBonus
		}

		switch {
		case opts.PreferredPosition != nil:
			score -= abs(in.position-*opts.PreferredPosition) * positionDistancePenalty
		case in.position < bandMidNeckMin:
			score -= (bandMidNeckMin - in.position) * bandPositionPenalty
		case in.position > bandMidNeckMax:
			score -= (in.position - bandMidNeckMax) * bandPositionPenalty
		}
		return score
	}

	if in.hasRootInBass {
		score += soloRootInBassBonus
	}

	if in.hasAllNotes {
		score += soloFullVoicingBonus
	} else if in.hasAllCore {
		score += soloCoreVoicingBonus
	}

	if in.voicing == VoicingJazzy && !in.hasRootInBass {
		score -= soloJazzyWithoutRootPenalty
	}

	if opts.PreferredPosition != nil {
		score -= abs(in.position-*opts.PreferredPosition) * positionDistancePenalty
	} else if in.position > soloPositionThreshold {
		score -= (in.position - soloPositionThreshold) * soloHighPositionPenalty
	}
	return score
}

// interiorMuteCount counts muted strings between the outermost played
// strings.
func interiorMuteCount(f fretboard.Fingering) int {
	states := f.Strings()
	first, last := -1, -1
	for i, s := range states {
		if s.IsPlayed() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0
	}

	count := 0
	for i := first; i <= last; i++ {
		if !states[i].IsPlayed() {
			count++
		}
	}
	return count
}

// frettedPosition is the truncated mean fret of the fretted strings.
func frettedPosition(f fretboard.Fingering) int {
	sum, count := 0, 0
	for _, s := range f.Strings() {
		if fret, ok := s.Fret(); ok && fret > 0 {
			sum += fret
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// deduplicateFingerings keeps the first entry per string pattern; after
// the sort that is the highest scoring one.
func deduplicateFingerings(scored []ScoredFingering) []ScoredFingering {
	seen := make(map[string]bool, len(scored))
	unique := scored[:0]
	for _, sf := range scored {
		key := sf.Fingering.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, sf)
	}
	return unique
}

func pitchSet(pitches []theory.PitchClass) map[theory.PitchClass]bool {
	set := make(map[theory.PitchClass]bool, len(pitches))
	for _, p := range pitches {
		set[p] = true
	}
	return set
}

func containsAll(set map[theory.PitchClass]bool, pitches []theory.PitchClass) bool {
	for _, p := range pitches {
		if !set[p] {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
