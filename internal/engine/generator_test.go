package engine

import (
	"testing"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

func mustFingering(t *testing.T, notation string) fretboard.Fingering {
	t.Helper()
	f, err := fretboard.ParseFingering(notation)
	if err != nil {
		t.Fatalf("ParseFingering(%q): %v", notation, err)
	}
	return f
}

func mustChord(t *testing.T, name string) theory.Chord {
	t.Helper()
	chord, err := theory.ParseChord(name)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", name, err)
	}
	return chord
}

func notations(results []ScoredFingering) []string {
	out := make([]string, len(results))
	for i, sf := range results {
		out[i] = sf.Fingering.String()
	}
	return out
}

func containsNotation(results []ScoredFingering, notation string) bool {
	for _, sf := range results {
		if sf.Fingering.String() == notation {
			return true
		}
	}
	return false
}

func TestGenerateCMajorTopFive(t *testing.T) {
	guitar := fretboard.NewGuitar()
	opts := DefaultGeneratorOptions()
	opts.Limit = 5

	results := GenerateFingerings(mustChord(t, "C"), guitar, opts)
	if len(results) == 0 {
		t.Fatal("no fingerings generated for C")
	}
	if len(results) > 5 {
		t.Fatalf("got %d results, want at most 5", len(results))
	}
	if !containsNotation(results, "x32010") {
		t.Errorf("top 5 for C = %v, want x32010 among them", notations(results))
	}
}

func TestGenerateAmContainsOpenShape(t *testing.T) {
	guitar := fretboard.NewGuitar()
	opts := DefaultGeneratorOptions()
	opts.Limit = 20

	results := GenerateFingerings(mustChord(t, "Am"), guitar, opts)
	if !containsNotation(results, "x02210") {
		t.Errorf("results for Am = %v, want x02210 among them", notations(results))
	}
}

func TestGeneratePlayabilityInvariant(t *testing.T) {
	guitar := fretboard.NewGuitar()
	uke := fretboard.NewUkulele()

	cases := []struct {
		chord string
		inst  fretboard.Instrument
	}{
		{"C", guitar},
		{"G7", guitar},
		{"Am", guitar},
		{"F#m7", guitar},
		{"C", uke},
		{"Dm", uke},
	}

	for _, tc := range cases {
		opts := DefaultGeneratorOptions()
		opts.Limit = 50
		results := GenerateFingerings(mustChord(t, tc.chord), tc.inst, opts)

		for _, sf := range results {
			f := sf.Fingering
			if f.FretSpan() > tc.inst.MaxStretch() {
				t.Errorf("%s on %s: %s spans %d frets, limit %d",
					tc.chord, tc.inst.Name(), f.String(), f.FretSpan(), tc.inst.MaxStretch())
			}
			if f.MinFingersRequired() > tc.inst.MaxFingers() {
				t.Errorf("%s on %s: %s needs %d fingers, limit %d",
					tc.chord, tc.inst.Name(), f.String(), f.MinFingersRequired(), tc.inst.MaxFingers())
			}
			if f.PlayedCount() < tc.inst.MinPlayedStrings() {
				t.Errorf("%s on %s: %s plays %d strings, minimum %d",
					tc.chord, tc.inst.Name(), f.String(), f.PlayedCount(), tc.inst.MinPlayedStrings())
			}
		}
	}
}

func TestGenerateSortedAndLimited(t *testing.T) {
	guitar := fretboard.NewGuitar()

	for _, limit := range []int{1, 3, 10} {
		opts := DefaultGeneratorOptions()
		opts.Limit = limit

		results := GenerateFingerings(mustChord(t, "G"), guitar, opts)
		if len(results) > limit {
			t.Errorf("limit %d: got %d results", limit, len(results))
		}
		for i := 1; i < len(results); i++ {
			if results[i].Score > results[i-1].Score {
				t.Errorf("limit %d: results out of order at %d: %d after %d",
					limit, i, results[i].Score, results[i-1].Score)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	guitar := fretboard.NewGuitar()
	opts := DefaultGeneratorOptions()

	first := notations(GenerateFingerings(mustChord(t, "Dm7"), guitar, opts))
	second := notations(GenerateFingerings(mustChord(t, "Dm7"), guitar, opts))

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	guitar := fretboard.NewGuitar()
	opts := DefaultGeneratorOptions()
	opts.Limit = 50

	seen := make(map[string]bool)
	for _, notation := range notations(GenerateFingerings(mustChord(t, "C"), guitar, opts)) {
		if seen[notation] {
			t.Errorf("duplicate fingering %q", notation)
		}
		seen[notation] = true
	}
}

func TestGenerateVoicingFilter(t *testing.T) {
	guitar := fretboard.NewGuitar()
	chord := mustChord(t, "G")

	opts := DefaultGeneratorOptions()
	opts.VoicingType = VoicingFull

	results := GenerateFingerings(chord, guitar, opts)
	if len(results) == 0 {
		t.Fatal("no full voicings generated for G")
	}
	for _, sf := range results {
		if sf.VoicingType != VoicingFull {
			t.Errorf("%s classified %s, want full", sf.Fingering.String(), sf.VoicingType)
		}
		pitches := pitchSet(sf.Fingering.UniquePitchClasses(guitar))
		for _, want := range []theory.PitchClass{theory.G, theory.B, theory.D} {
			if !pitches[want] {
				t.Errorf("%s is missing %v", sf.Fingering.String(), want)
			}
		}
	}
}

func TestGenerateUnvoiceableChord(t *testing.T) {
	// Two C strings capped at fret 1 reach only C and C#, so no D tone
	// is available anywhere.
	tuning := []theory.Note{theory.NewNote(theory.C, 3), theory.NewNote(theory.C, 4)}
	inst, err := fretboard.NewCustom(fretboard.Config{Tuning: tuning, MaxFret: 1, MinPlayedStrings: 2})
	if err != nil {
		t.Fatalf("NewCustom: %v", err)
	}

	opts := DefaultGeneratorOptions()
	opts.MaxFret = 1
	results := GenerateFingerings(mustChord(t, "D"), inst, opts)
	if len(results) != 0 {
		t.Errorf("expected no fingerings, got %v", notations(results))
	}
}

func TestScoreFingeringSoloAndBand(t *testing.T) {
	guitar := fretboard.NewGuitar()
	f := mustFingering(t, "x32010")
	in := scoreInputs{
		hasAllNotes:   true,
		hasAllCore:    true,
		hasRootInBass: true,
		position:      2,
		playedCount:   5,
		voicing:       VoicingFull,
	}

	solo := DefaultGeneratorOptions()
	if got := scoreFingering(f, guitar, solo, in); got != 155 {
		t.Errorf("solo score = %d, want 155", got)
	}

	band := DefaultGeneratorOptions()
	band.PlayingContext = ContextBand
	if got := scoreFingering(f, guitar, band, in); got != 112 {
		t.Errorf("band score = %d, want 112", got)
	}
}

func TestScoreFingeringPreferredPosition(t *testing.T) {
	guitar := fretboard.NewGuitar()
	f := mustFingering(t, "x32010")
	in := scoreInputs{
		hasAllNotes:   true,
		hasAllCore:    true,
		hasRootInBass: true,
		position:      2,
		playedCount:   5,
		voicing:       VoicingFull,
	}

	opts := DefaultGeneratorOptions()
	pos := 7
	opts.PreferredPosition = &pos

	// Five frets from the preferred position costs 15 against the
	// unconstrained solo score.
	if got := scoreFingering(f, guitar, opts, in); got != 140 {
		t.Errorf("score = %d, want 140", got)
	}
}

func TestGeneratePositionIsTruncatedMean(t *testing.T) {
	f := mustFingering(t, "x35553")
	if got := frettedPosition(f); got != 4 {
		t.Errorf("position = %d, want 4", got)
	}
	if got := frettedPosition(mustFingering(t, "000000")); got != 0 {
		t.Errorf("all-open position = %d, want 0", got)
	}
}

func TestParsePlayingContext(t *testing.T) {
	if got := ParsePlayingContext("band"); got != ContextBand {
		t.Errorf("ParsePlayingContext(band) = %v", got)
	}
	if got := ParsePlayingContext("Band "); got != ContextBand {
		t.Errorf("ParsePlayingContext(Band ) = %v", got)
	}
	for _, s := range []string{"solo", "", "orchestra"} {
		if got := ParsePlayingContext(s); got != ContextSolo {
			t.Errorf("ParsePlayingContext(%q) = %v, want solo", s, got)
		}
	}
}

func TestParseVoicingType(t *testing.T) {
	tests := []struct {
		in   string
		want VoicingType
		ok   bool
	}{
		{"full", VoicingFull, true},
		{"Core", VoicingCore, true},
		{"JAZZY", VoicingJazzy, true},
		{" full ", VoicingFull, true},
		{"incomplete", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseVoicingType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVoicingType(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
