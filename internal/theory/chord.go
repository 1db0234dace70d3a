package theory

import (
	"fmt"
	"strings"
)

// ChordQuality identifies a chord type (major triad, minor 7th, ...).
type ChordQuality int

const (
	// Triads
	MajorTriad ChordQuality = iota
	MinorTriad
	DiminishedTriad
	AugmentedTriad

	// Suspended
	Sus2
	Sus4

	// 7th chords
	Dominant7
	Major7
	Minor7
	MinorMajor7
	Diminished7
	HalfDiminished7

	// Extended chords
	Dominant9
	Major9
	Minor9
	Dominant11
	Minor11
	Dominant13
	Major13
	Minor13

	// Altered dominants
	Dominant7Flat9
	Dominant7Sharp9
	Dominant7Flat5
	Dominant7Sharp5

	// Add chords
	Add9
	MinorAdd9
	Add11

	// 6th chords
	Major6
	Minor6
)

// AllChordQualities lists every quality, for reverse-lookup iteration.
var AllChordQualities = []ChordQuality{
	MajorTriad, MinorTriad, DiminishedTriad, AugmentedTriad,
	Sus2, Sus4,
	Dominant7, Major7, Minor7, MinorMajor7, Diminished7, HalfDiminished7,
	Dominant9, Major9, Minor9, Dominant11, Minor11, Dominant13, Major13, Minor13,
	Dominant7Flat9, Dominant7Sharp9, Dominant7Flat5, Dominant7Sharp5,
	Add9, MinorAdd9, Add11,
	Major6, Minor6,
}

// InvalidChordError reports a chord name that could not be parsed.
type InvalidChordError struct {
	Input string
}

func (e *InvalidChordError) Error() string {
	return fmt.Sprintf("invalid chord name: %s", e.Input)
}

// Intervals returns the interval formula for the quality as required and
// optional sets. Extended chords list the 5th (and the 11th for 13ths)
// as optional because jazz voicings routinely omit them.
func (q ChordQuality) Intervals() (required, optional []Interval) {
	switch q {
	case MajorTriad:
		return []Interval{Unison, MajorThird, PerfectFifth}, nil
	case MinorTriad:
		return []Interval{Unison, MinorThird, PerfectFifth}, nil
	case DiminishedTriad:
		return []Interval{Unison, MinorThird, DiminishedFifth}, nil
	case AugmentedTriad:
		return []Interval{Unison, MajorThird, AugmentedFifth}, nil

	case Sus2:
		return []Interval{Unison, MajorSecond, PerfectFifth}, nil
	case Sus4:
		return []Interval{Unison, PerfectFourth, PerfectFifth}, nil

	case Dominant7:
		return []Interval{Unison, MajorThird, PerfectFifth, MinorSeventh}, nil
	case Major7:
		return []Interval{Unison, MajorThird, PerfectFifth, MajorSeventh}, nil
	case Minor7:
		return []Interval{Unison, MinorThird, PerfectFifth, MinorSeventh}, nil
	case MinorMajor7:
		return []Interval{Unison, MinorThird, PerfectFifth, MajorSeventh}, nil
	case Diminished7:
		return []Interval{Unison, MinorThird, DiminishedFifth, {Diminished, 7}}, nil
	case HalfDiminished7:
		return []Interval{Unison, MinorThird, DiminishedFifth, MinorSeventh}, nil

	case Dominant9:
		return []Interval{Unison, MajorThird, MinorSeventh, MajorNinth},
			[]Interval{PerfectFifth}
	case Major9:
		return []Interval{Unison, MajorThird, MajorSeventh, MajorNinth},
			[]Interval{PerfectFifth}
	case Minor9:
		return []Interval{Unison, MinorThird, MinorSeventh, MajorNinth},
			[]Interval{PerfectFifth}

	case Dominant11:
		return []Interval{Unison, MajorThird, MinorSeventh, MajorNinth, PerfectEleventh},
			[]Interval{PerfectFifth}
	case Minor11:
		return []Interval{Unison, MinorThird, MinorSeventh, MajorNinth, PerfectEleventh},
			[]Interval{PerfectFifth}

	case Dominant13:
		return []Interval{Unison, MajorThird, MinorSeventh, MajorNinth, MajorThirteenth},
			[]Interval{PerfectFifth, PerfectEleventh}
	case Major13:
		return []Interval{Unison, MajorThird, MajorSeventh, MajorNinth, MajorThirteenth},
			[]Interval{PerfectFifth, PerfectEleventh}
	case Minor13:
		return []Interval{Unison, MinorThird, MinorSeventh, MajorNinth, MajorThirteenth},
			[]Interval{PerfectFifth, PerfectEleventh}

	case Dominant7Flat9:
		return []Interval{Unison, MajorThird, PerfectFifth, MinorSeventh, MinorNinth}, nil
	case Dominant7Sharp9:
		return []Interval{Unison, MajorThird, PerfectFifth, MinorSeventh, AugmentedNinth}, nil
	case Dominant7Flat5:
		return []Interval{Unison, MajorThird, DiminishedFifth, MinorSeventh}, nil
	case Dominant7Sharp5:
		return []Interval{Unison, MajorThird, AugmentedFifth, MinorSeventh}, nil

	case Add9:
		return []Interval{Unison, MajorThird, PerfectFifth, MajorNinth}, nil
	case MinorAdd9:
		return []Interval{Unison, MinorThird, PerfectFifth, MajorNinth}, nil
	case Add11:
		return []Interval{Unison, MajorThird, PerfectFifth, PerfectEleventh}, nil

	case Major6:
		return []Interval{Unison, MajorThird, PerfectFifth, MajorSixth}, nil
	case Minor6:
		return []Interval{Unison, MinorThird, PerfectFifth, MajorSixth}, nil
	}
	return []Interval{Unison, MajorThird, PerfectFifth}, nil
}

// CanOmitFifth reports whether voicings of this quality keep their
// identity without the perfect 5th (true for 7th and extended chords).
func (q ChordQuality) CanOmitFifth() bool {
	switch q {
	case Dominant7, Major7, Minor7, MinorMajor7,
		Dominant9, Major9, Minor9,
		Dominant11, Minor11,
		Dominant13, Major13, Minor13,
		Dominant7Flat9, Dominant7Sharp9, Dominant7Flat5, Dominant7Sharp5:
		return true
	}
	return false
}

// DisplayName returns the conventional suffix for the quality ("" for
// major, "m7" for minor 7th, ...).
func (q ChordQuality) DisplayName() string {
	switch q {
	case MajorTriad:
		return ""
	case MinorTriad:
		return "m"
	case DiminishedTriad:
		return "dim"
	case AugmentedTriad:
		return "aug"
	case Sus2:
		return "sus2"
	case Sus4:
		return "sus4"
	case Dominant7:
		return "7"
	case Major7:
		return "maj7"
	case Minor7:
		return "m7"
	case MinorMajor7:
		return "m(maj7)"
	case Diminished7:
		return "dim7"
	case HalfDiminished7:
		return "m7b5"
	case Dominant9:
		return "9"
	case Major9:
		return "maj9"
	case Minor9:
		return "m9"
	case Dominant11:
		return "11"
	case Minor11:
		return "m11"
	case Dominant13:
		return "13"
	case Major13:
		return "maj13"
	case Minor13:
		return "m13"
	case Dominant7Flat9:
		return "7b9"
	case Dominant7Sharp9:
		return "7#9"
	case Dominant7Flat5:
		return "7b5"
	case Dominant7Sharp5:
		return "7#5"
	case Add9:
		return "add9"
	case MinorAdd9:
		return "madd9"
	case Add11:
		return "add11"
	case Major6:
		return "6"
	case Minor6:
		return "m6"
	}
	return ""
}

// Chord is a root pitch class plus a quality, with an optional slash
// bass (C/G).
type Chord struct {
	Root    PitchClass
	Quality ChordQuality
	Bass    *PitchClass
}

// NewChord builds a chord without a slash bass.
func NewChord(root PitchClass, quality ChordQuality) Chord {
	return Chord{Root: root, Quality: quality}
}

// ParseChord parses chord symbols like "C", "Abm7", "F#maj9" or "G7/B".
func ParseChord(s string) (Chord, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Chord{}, &InvalidChordError{Input: s}
	}

	// Slash chords: parse both halves.
	if slash := strings.Index(trimmed, "/"); slash >= 0 {
		chord, err := ParseChord(trimmed[:slash])
		if err != nil {
			return Chord{}, err
		}
		bass, err := ParsePitchClass(trimmed[slash+1:])
		if err != nil {
			return Chord{}, &InvalidChordError{Input: s}
		}
		chord.Bass = &bass
		return chord, nil
	}

	// Root is 1-2 characters (letter plus optional accidental).
	rootEnd := 1
	if len(trimmed) > 1 && (trimmed[1] == '#' || trimmed[1] == 'b') {
		rootEnd = 2
	}
	root, err := ParsePitchClass(trimmed[:rootEnd])
	if err != nil {
		return Chord{}, &InvalidChordError{Input: s}
	}

	quality, ok := parseChordQuality(trimmed[rootEnd:])
	if !ok {
		return Chord{}, &InvalidChordError{Input: s}
	}
	return Chord{Root: root, Quality: quality}, nil
}

func parseChordQuality(s string) (ChordQuality, bool) {
	if s == "" {
		return MajorTriad, true
	}

	normalized := strings.ReplaceAll(s, "♭", "b")
	normalized = strings.ReplaceAll(normalized, "♯", "#")
	normalized = strings.ReplaceAll(normalized, "Δ", "maj")
	normalized = strings.ToLower(normalized)
	normalized = strings.ReplaceAll(normalized, "δ", "maj")

	switch normalized {
	// Minor family
	case "m(maj7)", "mmaj7", "mm7", "minmaj7":
		return MinorMajor7, true
	case "m7b5", "ø", "half-dim", "halfdim":
		return HalfDiminished7, true
	case "madd9", "m(add9)":
		return MinorAdd9, true
	case "m13", "min13":
		return Minor13, true
	case "m11", "min11":
		return Minor11, true
	case "m9", "min9":
		return Minor9, true
	case "m7", "min7":
		return Minor7, true
	case "m6", "min6":
		return Minor6, true
	case "m", "min", "-":
		return MinorTriad, true

	// Major family
	case "maj13":
		return Major13, true
	case "maj9":
		return Major9, true
	case "maj7":
		return Major7, true
	case "maj":
		return MajorTriad, true

	// Dominants
	case "13":
		return Dominant13, true
	case "11":
		return Dominant11, true
	case "9":
		return Dominant9, true
	case "7#9":
		return Dominant7Sharp9, true
	case "7b9":
		return Dominant7Flat9, true
	case "7#5", "7aug", "+7":
		return Dominant7Sharp5, true
	case "7b5":
		return Dominant7Flat5, true
	case "7":
		return Dominant7, true

	// Diminished and augmented
	case "dim7", "°7", "o7":
		return Diminished7, true
	case "dim", "°", "o":
		return DiminishedTriad, true
	case "aug", "+":
		return AugmentedTriad, true

	// Suspended
	case "sus4", "sus":
		return Sus4, true
	case "sus2":
		return Sus2, true

	// Adds and 6ths
	case "add11":
		return Add11, true
	case "add9":
		return Add9, true
	case "6":
		return Major6, true
	}

	return MajorTriad, false
}

// Tones returns every pitch class of the chord, required then optional.
func (c Chord) Tones() []PitchClass {
	required, optional := c.Quality.Intervals()
	tones := make([]PitchClass, 0, len(required)+len(optional))
	for _, iv := range required {
		tones = append(tones, c.Root.AddSemitones(iv.Semitones()))
	}
	for _, iv := range optional {
		tones = append(tones, c.Root.AddSemitones(iv.Semitones()))
	}
	return tones
}

// RequiredTones returns the pitch classes of the required intervals.
func (c Chord) RequiredTones() []PitchClass {
	required, _ := c.Quality.Intervals()
	tones := make([]PitchClass, 0, len(required))
	for _, iv := range required {
		tones = append(tones, c.Root.AddSemitones(iv.Semitones()))
	}
	return tones
}

// CoreTones returns the harmonically essential pitch classes: the
// required set, minus the perfect 5th when the quality can omit it.
func (c Chord) CoreTones() []PitchClass {
	required, _ := c.Quality.Intervals()
	skipFifth := c.Quality.CanOmitFifth()

	tones := make([]PitchClass, 0, len(required))
	for _, iv := range required {
		if skipFifth && iv == PerfectFifth {
			continue
		}
		tones = append(tones, c.Root.AddSemitones(iv.Semitones()))
	}
	return tones
}

// Transpose shifts the chord (and any slash bass) by the given number
// of semitones.
func (c Chord) Transpose(semitones int) Chord {
	out := Chord{Root: c.Root.AddSemitones(semitones), Quality: c.Quality}
	if c.Bass != nil {
		bass := c.Bass.AddSemitones(semitones)
		out.Bass = &bass
	}
	return out
}

func (c Chord) String() string {
	s := c.Root.String() + c.Quality.DisplayName()
	if c.Bass != nil {
		s += "/" + c.Bass.String()
	}
	return s
}
