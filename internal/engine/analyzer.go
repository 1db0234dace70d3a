package engine

import (
	"sort"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// ChordMatch is one reading of a fingering as a named chord.
type ChordMatch struct {
	Chord      theory.Chord
	Score      int
	RootInBass bool
	// Completeness is the fraction of the chord's required tones that
	// actually sound.
	Completeness float64
}

// AnalyzeFingering names the chords a fingering could be, best reading
// first. Every sounding pitch is tried as the root against every known
// quality; partial matches rank by completeness, specificity and bass
// placement.
func AnalyzeFingering(f fretboard.Fingering, inst fretboard.Instrument) []ChordMatch {
	pitches := f.UniquePitchClasses(inst)
	if len(pitches) == 0 {
		return nil
	}

	var bassPitch *theory.PitchClass
	if bass, ok := f.BassNote(inst); ok {
		p := bass.Pitch
		bassPitch = &p
	}

	var matches []ChordMatch
	for _, root := range pitches {
		intervals := intervalsFromRoot(root, pitches)
		for _, quality := range theory.AllChordQualities {
			if m, ok := tryMatchChord(root, quality, intervals, bassPitch); ok {
				matches = append(matches, m)
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return deduplicateMatches(matches)
}

func intervalsFromRoot(root theory.PitchClass, pitches []theory.PitchClass) []theory.Interval {
	intervals := make([]theory.Interval, len(pitches))
	for i, p := range pitches {
		intervals[i] = theory.IntervalFromSemitones(root.SemitoneDistanceTo(p))
	}
	return intervals
}

func tryMatchChord(root theory.PitchClass, quality theory.ChordQuality, sounding []theory.Interval, bassPitch *theory.PitchClass) (ChordMatch, bool) {
	required, optional := quality.Intervals()

	requiredPresent := 0
	for _, req := range required {
		if containsInterval(sounding, req) {
			requiredPresent++
		}
	}
	if requiredPresent < 2 {
		return ChordMatch{}, false
	}

	completeness := float64(requiredPresent) / float64(len(required))
	rootInBass := bassPitch != nil && *bassPitch == root

	score := int(completeness * 100)
	if rootInBass {
		score += 20
	}

	optionalPresent := 0
	for _, opt := range optional {
		if containsInterval(sounding, opt) {
			optionalPresent++
		}
	}
	score += optionalPresent * 5

	extras := 0
	for _, iv := range sounding {
		if !containsInterval(required, iv) && !containsInterval(optional, iv) {
			extras++
		}
	}
	score -= extras * 10
	if score < 0 {
		score = 0
	}

	// Prefer more specific chords (G7 over G when the 7th sounds).
	score += len(required) * 3

	if completeness >= 1 && (quality == theory.MajorTriad || quality == theory.MinorTriad) {
		score += 5
	}

	return ChordMatch{
		Chord:        theory.NewChord(root, quality),
		Score:        score,
		RootInBass:   rootInBass,
		Completeness: completeness,
	}, true
}

func containsInterval(intervals []theory.Interval, target theory.Interval) bool {
	for _, iv := range intervals {
		if iv == target {
			return true
		}
	}
	return false
}

// deduplicateMatches keeps the first entry per root and quality; after
// the sort that is the highest scoring one.
func deduplicateMatches(matches []ChordMatch) []ChordMatch {
	type chordKey struct {
		root    theory.PitchClass
		quality theory.ChordQuality
	}

	seen := make(map[chordKey]bool, len(matches))
	unique := matches[:0]
	for _, m := range matches {
		key := chordKey{root: m.Chord.Root, quality: m.Chord.Quality}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, m)
	}
	return unique
}
