package fretboard

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// Instrument exposes the physical properties that fingering generation
// and scoring depend on. Implementations are immutable after
// construction, so one value can serve concurrent searches.
type Instrument interface {
	Name() string
	// Tuning lists open-string notes from lowest string to highest.
	Tuning() []theory.Note
	// FretRange returns the usable fret range, inclusive.
	FretRange() (min, max int)
	// MaxStretch is the widest fret span one fretting hand can cover.
	MaxStretch() int
	StringCount() int
	MaxFingers() int
	// OpenPositionThreshold is the highest fret still counted as open
	// position.
	OpenPositionThreshold() int
	// MainBarreThreshold is the minimum number of contiguous strings
	// for a barre to count as the main barre.
	MainBarreThreshold() int
	MinPlayedStrings() int
	MaxCapoFret() int
	// BassStringIndex is the string that normally carries the bass
	// note. Re-entrant tunings (ukulele, banjo) put it above string 0.
	BassStringIndex() int
	StringNames() []string
}

// InvalidCapoPositionError reports a capo fret outside the valid range.
type InvalidCapoPositionError struct {
	Fret int
	Min  int
	Max  int
}

func (e *InvalidCapoPositionError) Error() string {
	return fmt.Sprintf("invalid capo position %d: valid range is %d to %d", e.Fret, e.Min, e.Max)
}

// InvalidInstrumentError reports an instrument configuration that
// cannot be built.
type InvalidInstrumentError struct {
	Reason string
}

func (e *InvalidInstrumentError) Error() string {
	return fmt.Sprintf("invalid instrument: %s", e.Reason)
}

// StringedInstrument is the concrete Instrument used for every built-in
// and custom instrument.
type StringedInstrument struct {
	name                  string
	tuning                []theory.Note
	minFret               int
	maxFret               int
	maxStretch            int
	maxFingers            int
	openPositionThreshold int
	mainBarreThreshold    int
	minPlayedStrings      int
	maxCapoFret           int
	bassStringIndex       int
	stringNames           []string
}

// Config describes a custom instrument. Zero-valued fields fall back to
// defaults derived from the tuning.
type Config struct {
	Name                  string
	Tuning                []theory.Note
	MaxFret               int
	MaxStretch            int
	MaxFingers            int
	OpenPositionThreshold int
	MainBarreThreshold    int
	MinPlayedStrings      int
	MaxCapoFret           int
	BassStringIndex       int
	StringNames           []string
}

// NewGuitar returns a standard 6-string guitar in EADGBE tuning.
func NewGuitar() *StringedInstrument {
	return &StringedInstrument{
		name: "Guitar",
		tuning: []theory.Note{
			theory.NewNote(theory.E, 2),
			theory.NewNote(theory.A, 2),
			theory.NewNote(theory.D, 3),
			theory.NewNote(theory.G, 3),
			theory.NewNote(theory.B, 3),
			theory.NewNote(theory.E, 4),
		},
		minFret:               0,
		maxFret:               24,
		maxStretch:            4,
		maxFingers:            4,
		openPositionThreshold: 4,
		mainBarreThreshold:    3,
		minPlayedStrings:      3,
		maxCapoFret:           12,
		bassStringIndex:       0,
		stringNames:           []string{"E", "A", "D", "G", "B", "e"},
	}
}

// NewUkulele returns a standard ukulele in re-entrant GCEA tuning. The
// high-G string means the lowest pitch sits on string 1, and the short
// scale permits a wider stretch and sparser voicings.
func NewUkulele() *StringedInstrument {
	return &StringedInstrument{
		name: "Ukulele",
		tuning: []theory.Note{
			theory.NewNote(theory.G, 4),
			theory.NewNote(theory.C, 4),
			theory.NewNote(theory.E, 4),
			theory.NewNote(theory.A, 4),
		},
		minFret:               0,
		maxFret:               15,
		maxStretch:            5,
		maxFingers:            4,
		openPositionThreshold: 5,
		mainBarreThreshold:    2,
		minPlayedStrings:      1,
		maxCapoFret:           7,
		bassStringIndex:       1,
		stringNames:           []string{"G", "C", "E", "A"},
	}
}

// NewCustom builds an instrument from a Config, filling unset fields
// with defaults. Tunings need between 2 and 12 strings.
func NewCustom(cfg Config) (*StringedInstrument, error) {
	count := len(cfg.Tuning)
	if count < 2 {
		return nil, &InvalidInstrumentError{Reason: "tuning must have at least 2 strings"}
	}
	if count > 12 {
		return nil, &InvalidInstrumentError{Reason: "tuning cannot have more than 12 strings"}
	}

	inst := &StringedInstrument{
		name:                  cfg.Name,
		tuning:                append([]theory.Note(nil), cfg.Tuning...),
		minFret:               0,
		maxFret:               cfg.MaxFret,
		maxStretch:            cfg.MaxStretch,
		maxFingers:            cfg.MaxFingers,
		openPositionThreshold: cfg.OpenPositionThreshold,
		mainBarreThreshold:    cfg.MainBarreThreshold,
		minPlayedStrings:      cfg.MinPlayedStrings,
		maxCapoFret:           cfg.MaxCapoFret,
		bassStringIndex:       cfg.BassStringIndex,
		stringNames:           cfg.StringNames,
	}

	if inst.name == "" {
		inst.name = "Custom"
	}
	if inst.maxFret == 0 {
		inst.maxFret = 24
	}
	if inst.maxStretch == 0 {
		inst.maxStretch = 4
	}
	if inst.maxFingers == 0 {
		inst.maxFingers = 4
	}
	if inst.openPositionThreshold == 0 {
		inst.openPositionThreshold = 4
	}
	if inst.mainBarreThreshold == 0 {
		inst.mainBarreThreshold = halfStringsMinTwo(count)
	}
	if inst.minPlayedStrings == 0 {
		inst.minPlayedStrings = halfStringsMinTwo(count)
	}
	if inst.maxCapoFret == 0 {
		inst.maxCapoFret = defaultMaxCapoFret(inst.maxFret)
	}
	if inst.bassStringIndex < 0 || inst.bassStringIndex >= count {
		return nil, &InvalidInstrumentError{Reason: fmt.Sprintf("bass string index %d out of range", cfg.BassStringIndex)}
	}
	if len(inst.stringNames) == 0 {
		inst.stringNames = pitchNames(inst.tuning)
	} else if len(inst.stringNames) != count {
		return nil, &InvalidInstrumentError{Reason: "string names must match tuning length"}
	}

	return inst, nil
}

// ParseTuning reads a comma separated list of note names with octaves,
// low string first, e.g. "E2,A2,D3,G3,B3,E4".
func ParseTuning(s string) ([]theory.Note, error) {
	parts := strings.Split(s, ",")
	tuning := make([]theory.Note, 0, len(parts))
	for _, part := range parts {
		note, err := theory.ParseNote(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		tuning = append(tuning, note)
	}
	return tuning, nil
}

// NewCustomFromTuning builds a custom instrument from open-string notes
// alone, sizing stretch, fret range and the minimum played strings to
// the string count.
func NewCustomFromTuning(tuning []theory.Note) (*StringedInstrument, error) {
	var maxStretch, maxFret, minPlayed int
	switch count := len(tuning); {
	case count <= 4:
		maxStretch, maxFret, minPlayed = 5, 17, 1
	case count <= 8:
		maxStretch, maxFret, minPlayed = 4, 24, 3
	default:
		maxStretch, maxFret, minPlayed = 3, 22, 4
	}

	return NewCustom(Config{
		Name:             "Custom Tuning",
		Tuning:           tuning,
		MaxFret:          maxFret,
		MaxStretch:       maxStretch,
		MinPlayedStrings: minPlayed,
	})
}

// WithCapo returns a new instrument with every open string transposed
// up by fret semitones and the usable fret range shortened to match.
// Stretch, finger and threshold properties pass through unchanged.
func WithCapo(inst Instrument, fret int) (*StringedInstrument, error) {
	maxCapo := inst.MaxCapoFret()
	if fret < 0 || fret > maxCapo {
		return nil, &InvalidCapoPositionError{Fret: fret, Min: 0, Max: maxCapo}
	}

	tuning := make([]theory.Note, 0, inst.StringCount())
	for _, open := range inst.Tuning() {
		tuning = append(tuning, open.AddSemitones(fret))
	}

	_, maxFret := inst.FretRange()
	maxFret -= fret
	if maxFret < 0 {
		maxFret = 0
	}

	return &StringedInstrument{
		name:                  inst.Name(),
		tuning:                tuning,
		minFret:               0,
		maxFret:               maxFret,
		maxStretch:            inst.MaxStretch(),
		maxFingers:            inst.MaxFingers(),
		openPositionThreshold: inst.OpenPositionThreshold(),
		mainBarreThreshold:    inst.MainBarreThreshold(),
		minPlayedStrings:      inst.MinPlayedStrings(),
		maxCapoFret:           defaultMaxCapoFret(maxFret),
		bassStringIndex:       inst.BassStringIndex(),
		stringNames:           pitchNames(tuning),
	}, nil
}

func (si *StringedInstrument) Name() string { return si.name }

func (si *StringedInstrument) Tuning() []theory.Note { return si.tuning }

func (si *StringedInstrument) FretRange() (int, int) { return si.minFret, si.maxFret }

func (si *StringedInstrument) MaxStretch() int { return si.maxStretch }

func (si *StringedInstrument) StringCount() int { return len(si.tuning) }

func (si *StringedInstrument) MaxFingers() int { return si.maxFingers }

func (si *StringedInstrument) OpenPositionThreshold() int { return si.openPositionThreshold }

func (si *StringedInstrument) MainBarreThreshold() int { return si.mainBarreThreshold }

func (si *StringedInstrument) MinPlayedStrings() int { return si.minPlayedStrings }

func (si *StringedInstrument) MaxCapoFret() int { return si.maxCapoFret }

func (si *StringedInstrument) BassStringIndex() int { return si.bassStringIndex }

func (si *StringedInstrument) StringNames() []string { return si.stringNames }

func halfStringsMinTwo(stringCount int) int {
	if half := stringCount / 2; half > 2 {
		return half
	}
	return 2
}

func defaultMaxCapoFret(maxFret int) int {
	if half := maxFret / 2; half < 12 {
		return half
	}
	return 12
}

func pitchNames(tuning []theory.Note) []string {
	names := make([]string, len(tuning))
	for i, note := range tuning {
		names[i] = note.Pitch.String()
	}
	return names
}
