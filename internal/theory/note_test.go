package theory

import (
	"testing"
)

func TestParsePitchClass(t *testing.T) {
	tests := []struct {
		input string
		want  PitchClass
	}{
		{"C", C},
		{"c", C},
		{"C#", CSharp},
		{"c#", CSharp},
		{"Db", CSharp},
		{"db", CSharp},
		{"D", D},
		{"Eb", DSharp},
		{"E", E},
		{"F", F},
		{"F#", FSharp},
		{"Gb", FSharp},
		{"G", G},
		{"Ab", GSharp},
		{"A", A},
		{"Bb", ASharp},
		{"B", B},
		{"  G  ", G},
		{"B♭", ASharp},
		{"F♯", FSharp},
		{"Cs", CSharp},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePitchClass(tt.input)
			if err != nil {
				t.Fatalf("ParsePitchClass(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePitchClass(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePitchClassInvalid(t *testing.T) {
	for _, input := range []string{"", "H", "C##", "Xb", "123"} {
		if _, err := ParsePitchClass(input); err == nil {
			t.Errorf("ParsePitchClass(%q) should fail", input)
		}
	}
}

func TestPitchClassFromSemitone(t *testing.T) {
	tests := []struct {
		semitone int
		want     PitchClass
	}{
		{0, C},
		{4, E},
		{7, G},
		{11, B},
		{12, C},
		{13, CSharp},
		{-1, B},
		{-12, C},
	}

	for _, tt := range tests {
		if got := PitchClassFromSemitone(tt.semitone); got != tt.want {
			t.Errorf("PitchClassFromSemitone(%d) = %v, want %v", tt.semitone, got, tt.want)
		}
	}
}

func TestPitchClassAddSemitones(t *testing.T) {
	tests := []struct {
		start     PitchClass
		semitones int
		want      PitchClass
	}{
		{C, 4, E},
		{C, 7, G},
		{A, 3, C},
		{B, 1, C},
		{C, -1, B},
		{E, 12, E},
		{G, -7, C},
	}

	for _, tt := range tests {
		if got := tt.start.AddSemitones(tt.semitones); got != tt.want {
			t.Errorf("%v.AddSemitones(%d) = %v, want %v", tt.start, tt.semitones, got, tt.want)
		}
	}
}

func TestSemitoneDistanceTo(t *testing.T) {
	tests := []struct {
		from, to PitchClass
		want     int
	}{
		{C, G, 7},
		{G, C, 5},
		{C, C, 0},
		{E, C, 8},
		{B, C, 1},
	}

	for _, tt := range tests {
		if got := tt.from.SemitoneDistanceTo(tt.to); got != tt.want {
			t.Errorf("%v.SemitoneDistanceTo(%v) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPitchClassNames(t *testing.T) {
	if got := CSharp.SharpName(); got != "C#" {
		t.Errorf("SharpName = %q, want C#", got)
	}
	if got := CSharp.FlatName(); got != "Db" {
		t.Errorf("FlatName = %q, want Db", got)
	}
	if got := G.String(); got != "G" {
		t.Errorf("String = %q, want G", got)
	}
}

func TestNoteMIDI(t *testing.T) {
	tests := []struct {
		note Note
		want int
	}{
		{NewNote(C, 4), 60},
		{NewNote(A, 4), 69},
		{NewNote(E, 2), 40},
		{NewNote(A, 2), 45},
		{NewNote(D, 3), 50},
		{NewNote(G, 3), 55},
		{NewNote(B, 3), 59},
		{NewNote(E, 4), 64},
		{NewNote(C, -1), 0},
	}

	for _, tt := range tests {
		if got := tt.note.MIDI(); got != tt.want {
			t.Errorf("%v.MIDI() = %d, want %d", tt.note, got, tt.want)
		}
	}
}

func TestNoteFromMIDI(t *testing.T) {
	tests := []struct {
		midi       int
		wantPitch  PitchClass
		wantOctave int
	}{
		{60, C, 4},
		{69, A, 4},
		{40, E, 2},
		{0, C, -1},
		{127, G, 9},
	}

	for _, tt := range tests {
		got := NoteFromMIDI(tt.midi)
		if got.Pitch != tt.wantPitch || got.Octave != tt.wantOctave {
			t.Errorf("NoteFromMIDI(%d) = %v, want %v%d", tt.midi, got, tt.wantPitch, tt.wantOctave)
		}
	}
}

func TestNoteMIDIRoundTrip(t *testing.T) {
	for midi := 0; midi <= 127; midi++ {
		if got := NoteFromMIDI(midi).MIDI(); got != midi {
			t.Fatalf("round trip of MIDI %d gave %d", midi, got)
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		input      string
		wantPitch  PitchClass
		wantOctave int
	}{
		{"E2", E, 2},
		{"A2", A, 2},
		{"C#3", CSharp, 3},
		{"Bb2", ASharp, 2},
		{"G4", G, 4},
		{"C4", C, 4},
		{"C-1", C, -1},
		{"e2", E, 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNote(tt.input)
			if err != nil {
				t.Fatalf("ParseNote(%q) returned error: %v", tt.input, err)
			}
			if got.Pitch != tt.wantPitch || got.Octave != tt.wantOctave {
				t.Errorf("ParseNote(%q) = %v, want %v%d", tt.input, got, tt.wantPitch, tt.wantOctave)
			}
		})
	}
}

func TestParseNoteInvalid(t *testing.T) {
	for _, input := range []string{"", "E", "X2", "C#", "4", "E2x"} {
		if _, err := ParseNote(input); err == nil {
			t.Errorf("ParseNote(%q) should fail", input)
		}
	}
}

func TestNoteAddSemitones(t *testing.T) {
	e2 := NewNote(E, 2)

	up := e2.AddSemitones(12)
	if up.Pitch != E || up.Octave != 3 {
		t.Errorf("E2 + 12 = %v, want E3", up)
	}

	down := NewNote(C, 4).AddSemitones(-1)
	if down.Pitch != B || down.Octave != 3 {
		t.Errorf("C4 - 1 = %v, want B3", down)
	}

	// Transposition clamps to the MIDI range.
	top := NoteFromMIDI(120).AddSemitones(24)
	if top.MIDI() != 127 {
		t.Errorf("clamped high note MIDI = %d, want 127", top.MIDI())
	}
	bottom := NoteFromMIDI(5).AddSemitones(-24)
	if bottom.MIDI() != 0 {
		t.Errorf("clamped low note MIDI = %d, want 0", bottom.MIDI())
	}
}

func TestIsBassRegister(t *testing.T) {
	if !NewNote(E, 2).IsBassRegister() {
		t.Error("E2 should be in the bass register")
	}
	if !NewNote(B, 2).IsBassRegister() {
		t.Error("B2 should be in the bass register")
	}
	if NewNote(C, 3).IsBassRegister() {
		t.Error("C3 should not be in the bass register")
	}
	if NewNote(E, 4).IsBassRegister() {
		t.Error("E4 should not be in the bass register")
	}
}

func TestNoteString(t *testing.T) {
	if got := NewNote(CSharp, 3).String(); got != "C#3" {
		t.Errorf("String = %q, want C#3", got)
	}
	if got := NewNote(A, 4).String(); got != "A4" {
		t.Errorf("String = %q, want A4", got)
	}
}
