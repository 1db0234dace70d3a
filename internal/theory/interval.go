package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// IntervalQuality distinguishes perfect, major, minor, augmented and
// diminished intervals.
type IntervalQuality int

const (
	Perfect IntervalQuality = iota
	Major
	Minor
	Augmented
	Diminished
)

// Interval is a musical interval: a quality plus a 1-based diatonic
// distance (1 = unison, 3 = third, 9 = ninth, ...).
type Interval struct {
	Quality  IntervalQuality
	Distance int
}

// InvalidIntervalError reports interval notation that could not be parsed.
type InvalidIntervalError struct {
	Input string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: %s", e.Input)
}

// Common intervals.
var (
	Unison          = Interval{Perfect, 1}
	MinorSecond     = Interval{Minor, 2}
	MajorSecond     = Interval{Major, 2}
	MinorThird      = Interval{Minor, 3}
	MajorThird      = Interval{Major, 3}
	PerfectFourth   = Interval{Perfect, 4}
	Tritone         = Interval{Augmented, 4}
	PerfectFifth    = Interval{Perfect, 5}
	DiminishedFifth = Interval{Diminished, 5}
	AugmentedFifth  = Interval{Augmented, 5}
	MinorSixth      = Interval{Minor, 6}
	MajorSixth      = Interval{Major, 6}
	MinorSeventh    = Interval{Minor, 7}
	MajorSeventh    = Interval{Major, 7}
	Octave          = Interval{Perfect, 8}
	MinorNinth      = Interval{Minor, 9}
	MajorNinth      = Interval{Major, 9}
	AugmentedNinth  = Interval{Augmented, 9}
	PerfectEleventh = Interval{Perfect, 11}
	MajorThirteenth = Interval{Major, 13}
)

// Semitones returns the chromatic size of the interval.
func (iv Interval) Semitones() int {
	var base int
	switch iv.Distance {
	case 1:
		base = 0
	case 2:
		base = 2
	case 3:
		base = 4
	case 4:
		base = 5
	case 5:
		base = 7
	case 6:
		base = 9
	case 7:
		base = 11
	case 8:
		base = 12
	default:
		// Compound intervals: fold into one octave and add it back.
		octaves := (iv.Distance - 1) / 7
		remainder := (iv.Distance-1)%7 + 1
		return octaves*semitonesPerOctave + Interval{iv.Quality, remainder}.Semitones()
	}

	perfectDistance := iv.isPerfectDistance()
	switch {
	case iv.Quality == Perfect && perfectDistance, iv.Quality == Major && !perfectDistance:
		return base
	case iv.Quality == Minor && !perfectDistance:
		return base - 1
	case iv.Quality == Augmented:
		return base + 1
	case iv.Quality == Diminished && perfectDistance:
		return base - 1
	case iv.Quality == Diminished:
		// Imperfect distances diminish from the minor size.
		return base - 2
	default:
		return base
	}
}

// IntervalFromSemitones returns the canonical interval for a semitone
// count: major/perfect where possible, and the tritone as an augmented
// fourth.
func IntervalFromSemitones(semitones int) Interval {
	switch ((semitones % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave {
	case 0:
		return Unison
	case 1:
		return MinorSecond
	case 2:
		return MajorSecond
	case 3:
		return MinorThird
	case 4:
		return MajorThird
	case 5:
		return PerfectFourth
	case 6:
		return Tritone
	case 7:
		return PerfectFifth
	case 8:
		return MinorSixth
	case 9:
		return MajorSixth
	case 10:
		return MinorSeventh
	default:
		return MajorSeventh
	}
}

// Unisons, fourths and fifths (and their compounds) take perfect quality.
func (iv Interval) isPerfectDistance() bool {
	normalized := (iv.Distance-1)%7 + 1
	return normalized == 1 || normalized == 4 || normalized == 5
}

// ShortName returns compact notation like "M3", "P5" or "m7".
func (iv Interval) ShortName() string {
	var q string
	switch iv.Quality {
	case Perfect:
		q = "P"
	case Major:
		q = "M"
	case Minor:
		q = "m"
	case Augmented:
		q = "A"
	case Diminished:
		q = "d"
	}
	return q + strconv.Itoa(iv.Distance)
}

// FullName returns spelled-out notation like "Major 3rd".
func (iv Interval) FullName() string {
	var q string
	switch iv.Quality {
	case Perfect:
		q = "Perfect"
	case Major:
		q = "Major"
	case Minor:
		q = "Minor"
	case Augmented:
		q = "Augmented"
	case Diminished:
		q = "Diminished"
	}

	var d string
	switch iv.Distance {
	case 1:
		d = "Unison"
	case 2:
		d = "2nd"
	case 3:
		d = "3rd"
	case 4:
		d = "4th"
	case 5:
		d = "5th"
	case 6:
		d = "6th"
	case 7:
		d = "7th"
	case 8:
		d = "Octave"
	case 9:
		d = "9th"
	case 11:
		d = "11th"
	case 13:
		d = "13th"
	default:
		return fmt.Sprintf("%s %d", q, iv.Distance)
	}
	return q + " " + d
}

// ParseInterval parses short notation like "M3", "P5" or "m7".
func ParseInterval(s string) (Interval, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Interval{}, &InvalidIntervalError{Input: s}
	}

	var quality IntervalQuality
	switch trimmed[0] {
	case 'P', 'p':
		quality = Perfect
	case 'M':
		quality = Major
	case 'm':
		quality = Minor
	case 'A', 'a':
		quality = Augmented
	case 'd', 'D':
		quality = Diminished
	default:
		return Interval{}, &InvalidIntervalError{Input: s}
	}

	distance, err := strconv.Atoi(trimmed[1:])
	if err != nil || distance <= 0 {
		return Interval{}, &InvalidIntervalError{Input: s}
	}
	return Interval{Quality: quality, Distance: distance}, nil
}

func (iv Interval) String() string {
	return iv.ShortName()
}
