package fretboard

import (
	"errors"
	"testing"
)

func TestPresetsCatalog(t *testing.T) {
	presets, err := Presets()
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}

	wantIDs := []string{
		"guitar", "ukulele", "bass", "bass-5", "mandolin", "banjo",
		"bari-uke", "guitar-7", "drop-d", "open-g", "dadgad",
	}
	if len(presets) != len(wantIDs) {
		t.Fatalf("got %d presets, want %d", len(presets), len(wantIDs))
	}
	for i, want := range wantIDs {
		if presets[i].ID != want {
			t.Errorf("preset %d = %q, want %q", i, presets[i].ID, want)
		}
	}
}

func TestPresetInstrumentsBuild(t *testing.T) {
	presets, err := Presets()
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}

	for _, p := range presets {
		t.Run(p.ID, func(t *testing.T) {
			inst, err := p.Instrument()
			if err != nil {
				t.Fatalf("Instrument: %v", err)
			}
			if inst.Name() != p.Name {
				t.Errorf("Name() = %q, want %q", inst.Name(), p.Name)
			}
			if inst.StringCount() != len(p.Tuning) {
				t.Errorf("StringCount() = %d, want %d", inst.StringCount(), len(p.Tuning))
			}
			if len(inst.StringNames()) != inst.StringCount() {
				t.Errorf("got %d string names for %d strings", len(inst.StringNames()), inst.StringCount())
			}
			if inst.MaxStretch() <= 0 || inst.MaxFingers() <= 0 {
				t.Error("stretch and finger limits must be positive")
			}
		})
	}
}

func TestGuitarPresetMatchesConstructor(t *testing.T) {
	inst, err := NewPresetInstrument("guitar")
	if err != nil {
		t.Fatalf("NewPresetInstrument: %v", err)
	}
	assertSameInstrument(t, inst, NewGuitar())
}

func TestUkulelePresetMatchesConstructor(t *testing.T) {
	inst, err := NewPresetInstrument("ukulele")
	if err != nil {
		t.Fatalf("NewPresetInstrument: %v", err)
	}
	assertSameInstrument(t, inst, NewUkulele())
}

func assertSameInstrument(t *testing.T, got, want *StringedInstrument) {
	t.Helper()

	if got.Name() != want.Name() {
		t.Errorf("Name() = %q, want %q", got.Name(), want.Name())
	}
	if g, w := midiValues(got.Tuning()), midiValues(want.Tuning()); !intsEqual(g, w) {
		t.Errorf("Tuning() = %v, want %v", g, w)
	}
	gotMin, gotMax := got.FretRange()
	wantMin, wantMax := want.FretRange()
	if gotMin != wantMin || gotMax != wantMax {
		t.Errorf("FretRange() = (%d, %d), want (%d, %d)", gotMin, gotMax, wantMin, wantMax)
	}
	if got.MaxStretch() != want.MaxStretch() {
		t.Errorf("MaxStretch() = %d, want %d", got.MaxStretch(), want.MaxStretch())
	}
	if got.MaxFingers() != want.MaxFingers() {
		t.Errorf("MaxFingers() = %d, want %d", got.MaxFingers(), want.MaxFingers())
	}
	if got.OpenPositionThreshold() != want.OpenPositionThreshold() {
		t.Errorf("OpenPositionThreshold() = %d, want %d", got.OpenPositionThreshold(), want.OpenPositionThreshold())
	}
	if got.MainBarreThreshold() != want.MainBarreThreshold() {
		t.Errorf("MainBarreThreshold() = %d, want %d", got.MainBarreThreshold(), want.MainBarreThreshold())
	}
	if got.MinPlayedStrings() != want.MinPlayedStrings() {
		t.Errorf("MinPlayedStrings() = %d, want %d", got.MinPlayedStrings(), want.MinPlayedStrings())
	}
	if got.MaxCapoFret() != want.MaxCapoFret() {
		t.Errorf("MaxCapoFret() = %d, want %d", got.MaxCapoFret(), want.MaxCapoFret())
	}
	if got.BassStringIndex() != want.BassStringIndex() {
		t.Errorf("BassStringIndex() = %d, want %d", got.BassStringIndex(), want.BassStringIndex())
	}
	if !stringsEqual(got.StringNames(), want.StringNames()) {
		t.Errorf("StringNames() = %v, want %v", got.StringNames(), want.StringNames())
	}
}

func TestBanjoPresetIsReentrant(t *testing.T) {
	inst, err := NewPresetInstrument("banjo")
	if err != nil {
		t.Fatalf("NewPresetInstrument: %v", err)
	}

	if inst.BassStringIndex() != 1 {
		t.Errorf("BassStringIndex() = %d, want 1", inst.BassStringIndex())
	}
	// The drone string 0 sounds above the others.
	tuning := inst.Tuning()
	if tuning[0].MIDI() <= tuning[1].MIDI() {
		t.Errorf("drone %d should sit above string 1 at %d", tuning[0].MIDI(), tuning[1].MIDI())
	}
	if got, want := inst.StringNames(), []string{"g", "D", "G", "B", "D"}; !stringsEqual(got, want) {
		t.Errorf("StringNames() = %v, want %v", got, want)
	}
}

func TestDropDPreset(t *testing.T) {
	inst, err := NewPresetInstrument("drop-d")
	if err != nil {
		t.Fatalf("NewPresetInstrument: %v", err)
	}
	if got, want := midiValues(inst.Tuning()), []int{38, 45, 50, 55, 59, 64}; !intsEqual(got, want) {
		t.Errorf("Tuning() = %v, want %v", got, want)
	}
	if inst.Name() != "Drop D Guitar" {
		t.Errorf("Name() = %q, want Drop D Guitar", inst.Name())
	}
}

func TestPresetByIDUnknown(t *testing.T) {
	_, err := PresetByID("piano")
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	var instErr *InvalidInstrumentError
	if !errors.As(err, &instErr) {
		t.Errorf("error type = %T, want *InvalidInstrumentError", err)
	}
}
