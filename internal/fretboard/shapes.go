package fretboard

import "strings"

// mutedString marks a muted string in a shape pattern.
const mutedString = -1

// StandardShape is a movable chord shape players learn as a named
// pattern. Pattern entries are fret offsets from the base (barre)
// position, or mutedString. Barring the Am shape (x02210) at fret 2
// produces Bm (x24432).
type StandardShape struct {
	Name    string
	Pattern []int
}

// Matches reports whether the fingering is this shape at some base
// fret, and returns that base fret.
func (s StandardShape) Matches(f Fingering) (int, bool) {
	states := f.Strings()
	if len(states) != len(s.Pattern) {
		return 0, false
	}

	// Offset-0 slots pin the base fret; they must all agree.
	baseFret, haveBase := 0, false
	for i, state := range states {
		if s.Pattern[i] != 0 {
			continue
		}
		if fret, ok := state.Fret(); ok {
			if haveBase && baseFret != fret {
				return 0, false
			}
			baseFret = fret
			haveBase = true
		}
	}
	if !haveBase {
		baseFret, _ = f.MinFret()
	}

	for i, state := range states {
		expected := s.Pattern[i]
		fret, played := state.Fret()
		switch {
		case expected == mutedString && !played:
		case expected == mutedString && played:
			return 0, false
		case !played:
			return 0, false
		case fret != baseFret+expected:
			return 0, false
		}
	}
	return baseFret, true
}

// GuitarShapes are the foundational 6-string patterns (CAGED system
// plus their minor forms).
var GuitarShapes = []StandardShape{
	{Name: "Am", Pattern: []int{mutedString, 0, 2, 2, 1, 0}},
	{Name: "A", Pattern: []int{mutedString, 0, 2, 2, 2, 0}},
	{Name: "Em", Pattern: []int{0, 2, 2, 0, 0, 0}},
	{Name: "E", Pattern: []int{0, 2, 2, 1, 0, 0}},
	{Name: "C", Pattern: []int{mutedString, 3, 2, 0, 1, 0}},
	{Name: "G", Pattern: []int{3, 2, 0, 0, 0, 3}},
	{Name: "D", Pattern: []int{mutedString, mutedString, 0, 2, 3, 2}},
	{Name: "Dm", Pattern: []int{mutedString, mutedString, 0, 2, 3, 1}},
}

// UkuleleShapes are the common GCEA patterns.
var UkuleleShapes = []StandardShape{
	{Name: "A", Pattern: []int{2, 1, 0, 0}},
	{Name: "Am", Pattern: []int{2, 0, 0, 0}},
	{Name: "C", Pattern: []int{0, 0, 0, 3}},
	{Name: "F", Pattern: []int{2, 0, 1, 0}},
	{Name: "G", Pattern: []int{0, 2, 3, 2}},
	{Name: "D", Pattern: []int{2, 2, 2, 0}},
	{Name: "Dm", Pattern: []int{2, 2, 1, 0}},
	{Name: "E", Pattern: []int{4, 4, 4, 2}},
	{Name: "Em", Pattern: []int{0, 4, 3, 2}},
	{Name: "Bb", Pattern: []int{3, 2, 1, 1}},
}

// MandolinShapes cover GDAE fifths tuning, where shapes stay symmetric
// and movable.
var MandolinShapes = []StandardShape{
	{Name: "G", Pattern: []int{0, 0, 2, 3}},
	{Name: "C", Pattern: []int{0, 2, 3, 0}},
	{Name: "D", Pattern: []int{2, 0, 0, 2}},
	{Name: "A", Pattern: []int{2, 2, 4, 5}},
	{Name: "E", Pattern: []int{0, 4, 4, 2}},
	{Name: "F", Pattern: []int{3, 5, 5, 3}},
	{Name: "Am", Pattern: []int{2, 2, 0, 0}},
	{Name: "Em", Pattern: []int{0, 4, 0, 2}},
	{Name: "Dm", Pattern: []int{2, 0, 0, 1}},
	{Name: "Gm", Pattern: []int{0, 0, 2, 1}},
}

// BanjoShapes cover 5-string open-G tuning (gDGBD); the high-G drone
// string stays open or muted in most shapes.
var BanjoShapes = []StandardShape{
	{Name: "G", Pattern: []int{0, 0, 0, 0, 0}},
	{Name: "C", Pattern: []int{mutedString, 2, 0, 1, 2}},
	{Name: "C-alt", Pattern: []int{0, 2, 0, 1, 2}},
	{Name: "D", Pattern: []int{mutedString, 0, 0, 2, 4}},
	{Name: "D7", Pattern: []int{mutedString, 0, 0, 2, 0}},
	{Name: "Em", Pattern: []int{mutedString, 0, 0, 0, 2}},
	{Name: "Am", Pattern: []int{mutedString, 2, 2, 0, 0}},
	{Name: "F", Pattern: []int{mutedString, 2, 1, 0, 0}},
	{Name: "A", Pattern: []int{mutedString, 0, 0, 0, 0}},
	{Name: "Bm", Pattern: []int{mutedString, 2, 2, 1, 0}},
	{Name: "E", Pattern: []int{mutedString, 2, 1, 0, 0}},
}

// ShapesFor picks the shape catalog for an instrument, by name first
// and by string count as a fallback. Unknown layouts get no catalog.
func ShapesFor(inst Instrument) []StandardShape {
	name := strings.ToLower(inst.Name())
	switch {
	case strings.Contains(name, "mandolin"):
		return MandolinShapes
	case strings.Contains(name, "banjo"):
		return BanjoShapes
	case strings.Contains(name, "ukulele"):
		return UkuleleShapes
	case strings.Contains(name, "guitar"):
		if inst.StringCount() == 6 {
			return GuitarShapes
		}
		return nil
	}

	switch inst.StringCount() {
	case 6:
		return GuitarShapes
	case 5:
		return BanjoShapes
	case 4:
		return UkuleleShapes
	}
	return nil
}

// FindMatchingShape returns the first catalog shape the fingering
// matches, with its base fret.
func FindMatchingShape(f Fingering, shapes []StandardShape) (StandardShape, int, bool) {
	for _, shape := range shapes {
		if baseFret, ok := shape.Matches(f); ok {
			return shape, baseFret, true
		}
	}
	return StandardShape{}, 0, false
}
