package fretboard

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/Conceptual-Machines/fretboard-api/pkg/embedded"
)

// Preset is one entry from the embedded instrument catalog.
type Preset struct {
	ID                    string   `yaml:"id"`
	Name                  string   `yaml:"name"`
	Tuning                []string `yaml:"tuning"`
	MaxFret               int      `yaml:"max_fret"`
	MaxStretch            int      `yaml:"max_stretch"`
	MinPlayedStrings      int      `yaml:"min_played_strings"`
	OpenPositionThreshold int      `yaml:"open_position_threshold"`
	MainBarreThreshold    int      `yaml:"main_barre_threshold"`
	MaxCapoFret           int      `yaml:"max_capo_fret"`
	BassStringIndex       int      `yaml:"bass_string_index"`
	StringNames           []string `yaml:"string_names"`
}

// Instrument builds the playable instrument the preset describes.
func (p Preset) Instrument() (*StringedInstrument, error) {
	tuning := make([]theory.Note, 0, len(p.Tuning))
	for _, s := range p.Tuning {
		note, err := theory.ParseNote(s)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ID, err)
		}
		tuning = append(tuning, note)
	}

	inst, err := NewCustom(Config{
		Name:                  p.Name,
		Tuning:                tuning,
		MaxFret:               p.MaxFret,
		MaxStretch:            p.MaxStretch,
		MinPlayedStrings:      p.MinPlayedStrings,
		OpenPositionThreshold: p.OpenPositionThreshold,
		MainBarreThreshold:    p.MainBarreThreshold,
		MaxCapoFret:           p.MaxCapoFret,
		BassStringIndex:       p.BassStringIndex,
		StringNames:           p.StringNames,
	})
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", p.ID, err)
	}
	return inst, nil
}

var (
	presetsOnce sync.Once
	presetList  []Preset
	presetsByID map[string]Preset
	presetsErr  error
)

func loadPresets() {
	var catalog struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(embedded.InstrumentPresetsYAML, &catalog); err != nil {
		presetsErr = fmt.Errorf("failed to parse instrument presets: %w", err)
		return
	}

	presetList = catalog.Presets
	presetsByID = make(map[string]Preset, len(catalog.Presets))
	for _, p := range catalog.Presets {
		presetsByID[p.ID] = p
	}
}

// Presets returns every embedded preset in catalog order.
func Presets() ([]Preset, error) {
	presetsOnce.Do(loadPresets)
	if presetsErr != nil {
		return nil, presetsErr
	}
	return presetList, nil
}

// PresetByID looks up a preset by its catalog id, such as "guitar" or
// "drop-d".
func PresetByID(id string) (Preset, error) {
	presetsOnce.Do(loadPresets)
	if presetsErr != nil {
		return Preset{}, presetsErr
	}
	p, ok := presetsByID[id]
	if !ok {
		return Preset{}, &InvalidInstrumentError{Reason: fmt.Sprintf("unknown preset %q", id)}
	}
	return p, nil
}

// NewPresetInstrument builds an instrument straight from a preset id.
func NewPresetInstrument(id string) (*StringedInstrument, error) {
	p, err := PresetByID(id)
	if err != nil {
		return nil, err
	}
	return p.Instrument()
}
