package theory

import (
	"testing"
)

func TestIntervalSemitones(t *testing.T) {
	tests := []struct {
		interval Interval
		want     int
	}{
		{Unison, 0},
		{MinorSecond, 1},
		{MajorSecond, 2},
		{MinorThird, 3},
		{MajorThird, 4},
		{PerfectFourth, 5},
		{Tritone, 6},
		{PerfectFifth, 7},
		{DiminishedFifth, 6},
		{AugmentedFifth, 8},
		{MinorSixth, 8},
		{MajorSixth, 9},
		{MinorSeventh, 10},
		{MajorSeventh, 11},
		{Octave, 12},
		{MinorNinth, 13},
		{MajorNinth, 14},
		{AugmentedNinth, 15},
		{PerfectEleventh, 17},
		{MajorThirteenth, 21},
		{Interval{Diminished, 7}, 9},
		{Interval{Perfect, 12}, 19},
		{Interval{Perfect, 15}, 24},
	}

	for _, tt := range tests {
		if got := tt.interval.Semitones(); got != tt.want {
			t.Errorf("%v.Semitones() = %d, want %d", tt.interval.ShortName(), got, tt.want)
		}
	}
}

func TestIntervalFromSemitones(t *testing.T) {
	tests := []struct {
		semitones int
		want      Interval
	}{
		{0, Unison},
		{3, MinorThird},
		{4, MajorThird},
		{6, Tritone},
		{7, PerfectFifth},
		{10, MinorSeventh},
		{11, MajorSeventh},
		{12, Unison},
		{14, MajorSecond},
		{-5, PerfectFifth},
	}

	for _, tt := range tests {
		if got := IntervalFromSemitones(tt.semitones); got != tt.want {
			t.Errorf("IntervalFromSemitones(%d) = %v, want %v",
				tt.semitones, got.ShortName(), tt.want.ShortName())
		}
	}
}

func TestIntervalNames(t *testing.T) {
	tests := []struct {
		interval  Interval
		shortName string
		fullName  string
	}{
		{MajorThird, "M3", "Major 3rd"},
		{PerfectFifth, "P5", "Perfect 5th"},
		{MinorSeventh, "m7", "Minor 7th"},
		{Tritone, "A4", "Augmented 4th"},
		{DiminishedFifth, "d5", "Diminished 5th"},
		{Unison, "P1", "Perfect Unison"},
		{Octave, "P8", "Perfect Octave"},
		{MajorNinth, "M9", "Major 9th"},
		{MajorThirteenth, "M13", "Major 13th"},
	}

	for _, tt := range tests {
		if got := tt.interval.ShortName(); got != tt.shortName {
			t.Errorf("ShortName = %q, want %q", got, tt.shortName)
		}
		if got := tt.interval.FullName(); got != tt.fullName {
			t.Errorf("FullName = %q, want %q", got, tt.fullName)
		}
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input string
		want  Interval
	}{
		{"P1", Unison},
		{"M3", MajorThird},
		{"m3", MinorThird},
		{"P5", PerfectFifth},
		{"A4", Tritone},
		{"d5", DiminishedFifth},
		{"m7", MinorSeventh},
		{"M13", MajorThirteenth},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			if err != nil {
				t.Fatalf("ParseInterval(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseInterval(%q) = %v, want %v", tt.input, got.ShortName(), tt.want.ShortName())
			}
		})
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	for _, input := range []string{"", "X3", "M", "M0", "Mx", "3"} {
		if _, err := ParseInterval(input); err == nil {
			t.Errorf("ParseInterval(%q) should fail", input)
		}
	}
}
