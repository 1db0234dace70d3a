package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// PitchClass identifies one of the twelve chromatic pitch classes.
// Values are sharp-canonical: flat spellings parse to their sharp
// equivalent (Db -> CSharp).
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

const semitonesPerOctave = 12

// InvalidNoteError reports a note or pitch-class name that could not be parsed.
type InvalidNoteError struct {
	Input string
}

func (e *InvalidNoteError) Error() string {
	return fmt.Sprintf("invalid note name: %s", e.Input)
}

// Accepted pitch-class spellings after normalization (uppercased,
// unicode accidentals folded to ASCII). "CS" is the keyboard-friendly
// alias for "C#".
var pitchClassNames = map[string]PitchClass{
	"C": C,
	"C#": CSharp, "CS": CSharp, "DB": CSharp,
	"D": D,
	"D#": DSharp, "DS": DSharp, "EB": DSharp,
	"E": E,
	"F": F,
	"F#": FSharp, "FS": FSharp, "GB": FSharp,
	"G": G,
	"G#": GSharp, "GS": GSharp, "AB": GSharp,
	"A": A,
	"A#": ASharp, "AS": ASharp, "BB": ASharp,
	"B": B,
}

var sharpNames = [semitonesPerOctave]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

var flatNames = [semitonesPerOctave]string{
	"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B",
}

// ParsePitchClass parses a pitch-class name like "C", "F#", "Bb" or "D♭".
// Matching is case-insensitive.
func ParsePitchClass(s string) (PitchClass, error) {
	normalized := normalizePitchName(s)
	if pc, ok := pitchClassNames[normalized]; ok {
		return pc, nil
	}
	return C, &InvalidNoteError{Input: s}
}

func normalizePitchName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "♯", "#")
	s = strings.ReplaceAll(s, "♭", "b")
	return strings.ToUpper(s)
}

// Semitone returns the chromatic offset from C (0-11).
func (pc PitchClass) Semitone() int {
	return int(pc)
}

// PitchClassFromSemitone maps any semitone count onto a pitch class,
// wrapping negative values correctly.
func PitchClassFromSemitone(semitone int) PitchClass {
	wrapped := semitone % semitonesPerOctave
	if wrapped < 0 {
		wrapped += semitonesPerOctave
	}
	return PitchClass(wrapped)
}

// AddSemitones transposes the pitch class, wrapping around the octave.
func (pc PitchClass) AddSemitones(semitones int) PitchClass {
	return PitchClassFromSemitone(int(pc) + semitones)
}

// SemitoneDistanceTo returns the upward chromatic distance to other (0-11).
func (pc PitchClass) SemitoneDistanceTo(other PitchClass) int {
	return (int(other) - int(pc) + semitonesPerOctave) % semitonesPerOctave
}

// SharpName returns the sharp spelling ("C#").
func (pc PitchClass) SharpName() string {
	return sharpNames[int(pc)%semitonesPerOctave]
}

// FlatName returns the flat spelling ("Db").
func (pc PitchClass) FlatName() string {
	return flatNames[int(pc)%semitonesPerOctave]
}

func (pc PitchClass) String() string {
	return pc.SharpName()
}

// Note is a pitch class anchored to an octave. The zero value is C0.
type Note struct {
	Pitch  PitchClass
	Octave int
}

// NewNote builds a note from a pitch class and octave (scientific pitch
// notation, so C4 is middle C).
func NewNote(pitch PitchClass, octave int) Note {
	return Note{Pitch: pitch, Octave: octave}
}

// MIDI returns the MIDI note number. C4 = 60, so the formula is
// (octave+1)*12 + semitone. The number is used purely as a semitone
// index for pitch arithmetic.
func (n Note) MIDI() int {
	return (n.Octave+1)*semitonesPerOctave + n.Pitch.Semitone()
}

// NoteFromMIDI converts a MIDI note number back to a note.
func NoteFromMIDI(midi int) Note {
	return Note{
		Pitch:  PitchClassFromSemitone(midi % semitonesPerOctave),
		Octave: midi/semitonesPerOctave - 1,
	}
}

// ParseNote parses scientific pitch notation like "C4", "F#3" or "C-1".
// The octave starts at the first digit or minus sign.
func ParseNote(s string) (Note, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Note{}, &InvalidNoteError{Input: s}
	}

	split := -1
	for i, r := range trimmed {
		if i == 0 {
			continue
		}
		if r == '-' || (r >= '0' && r <= '9') {
			split = i
			break
		}
	}
	if split < 0 {
		return Note{}, &InvalidNoteError{Input: s}
	}

	pitch, err := ParsePitchClass(trimmed[:split])
	if err != nil {
		return Note{}, &InvalidNoteError{Input: s}
	}
	octave, err := strconv.Atoi(trimmed[split:])
	if err != nil {
		return Note{}, &InvalidNoteError{Input: s}
	}
	return Note{Pitch: pitch, Octave: octave}, nil
}

// AddSemitones transposes a note, clamping to the MIDI range 0-127.
func (n Note) AddSemitones(semitones int) Note {
	midi := n.MIDI() + semitones
	if midi < 0 {
		midi = 0
	}
	if midi > 127 {
		midi = 127
	}
	return NoteFromMIDI(midi)
}

// IsBassRegister reports whether the note sits below C3 (MIDI 48),
// the register a bass line typically occupies.
func (n Note) IsBassRegister() bool {
	return n.MIDI() < 48
}

func (n Note) String() string {
	return n.Pitch.String() + strconv.Itoa(n.Octave)
}
