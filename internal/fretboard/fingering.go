package fretboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// maxNotationFret is the hard ceiling accepted by the tab notation,
// independent of any instrument's fret range.
const maxNotationFret = 24

// StringState is the state of one string in a fingering: Muted, or a
// fret number where 0 means the open string.
type StringState int

// Muted marks a string that is not played.
const Muted StringState = -1

// IsPlayed reports whether the string sounds (open or fretted).
func (s StringState) IsPlayed() bool { return s >= 0 }

// Fret returns the fret number and true when the string is played.
func (s StringState) Fret() (int, bool) {
	if s < 0 {
		return 0, false
	}
	return int(s), true
}

func (s StringState) String() string {
	switch {
	case s < 0:
		return "x"
	case s < 10:
		return strconv.Itoa(int(s))
	default:
		return "(" + strconv.Itoa(int(s)) + ")"
	}
}

// InvalidFingeringError reports tab notation that could not be parsed.
type InvalidFingeringError struct {
	Reason string
}

func (e *InvalidFingeringError) Error() string {
	return fmt.Sprintf("invalid fingering: %s", e.Reason)
}

// Fingering is one way of playing a chord, one state per string ordered
// from the lowest (bass) string to the highest.
type Fingering struct {
	strings []StringState
}

// NewFingering builds a fingering from per-string states. The slice is
// copied, so the fingering is immutable afterwards.
func NewFingering(states []StringState) Fingering {
	return Fingering{strings: append([]StringState(nil), states...)}
}

// ParseFingering parses compact tab notation: 'x' = muted, '0'-'9' = a
// fret, '(12)' = a fret of 10 or more. Spaces and dashes separate
// strings and are ignored.
func ParseFingering(s string) (Fingering, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Fingering{}, &InvalidFingeringError{Reason: "empty notation"}
	}

	var states []StringState
	runes := []rune(trimmed)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == 'x' || c == 'X':
			states = append(states, Muted)
		case c >= '0' && c <= '9':
			states = append(states, StringState(c-'0'))
		case c == '(':
			end := i + 1
			for end < len(runes) && runes[end] != ')' {
				end++
			}
			if end >= len(runes) {
				return Fingering{}, &InvalidFingeringError{Reason: "unclosed parenthesis in fret notation"}
			}
			digits := string(runes[i+1 : end])
			fret, err := strconv.Atoi(digits)
			if err != nil || fret < 0 {
				return Fingering{}, &InvalidFingeringError{Reason: fmt.Sprintf("invalid fret number: %q", digits)}
			}
			if fret > maxNotationFret {
				return Fingering{}, &InvalidFingeringError{Reason: fmt.Sprintf("fret %d exceeds maximum of %d", fret, maxNotationFret)}
			}
			states = append(states, StringState(fret))
			i = end
		case c == ' ' || c == '-':
			// separators
		default:
			return Fingering{}, &InvalidFingeringError{Reason: fmt.Sprintf("invalid character %q", string(c))}
		}
	}

	if len(states) == 0 {
		return Fingering{}, &InvalidFingeringError{Reason: "no strings found"}
	}
	return Fingering{strings: states}, nil
}

// Strings returns the per-string states, lowest string first.
func (f Fingering) Strings() []StringState { return f.strings }

// StringCount returns the number of strings in the fingering.
func (f Fingering) StringCount() int { return len(f.strings) }

// PlayedCount returns the number of sounding strings.
func (f Fingering) PlayedCount() int {
	count := 0
	for _, s := range f.strings {
		if s.IsPlayed() {
			count++
		}
	}
	return count
}

// MinFret returns the lowest fretted fret, ignoring open strings.
func (f Fingering) MinFret() (int, bool) {
	min, found := 0, false
	for _, s := range f.strings {
		if fret, ok := s.Fret(); ok && fret > 0 {
			if !found || fret < min {
				min = fret
				found = true
			}
		}
	}
	return min, found
}

// MaxFret returns the highest fret in use, counting open strings as
// fret 0.
func (f Fingering) MaxFret() (int, bool) {
	max, found := 0, false
	for _, s := range f.strings {
		if fret, ok := s.Fret(); ok {
			if !found || fret > max {
				max = fret
			}
			found = true
		}
	}
	return max, found
}

// FretSpan returns the distance between the lowest and highest fretted
// frets, 0 when fewer than one string is fretted.
func (f Fingering) FretSpan() int {
	min, ok := f.MinFret()
	if !ok {
		return 0
	}
	max := min
	for _, s := range f.strings {
		if fret, fretted := s.Fret(); fretted && fret > max {
			max = fret
		}
	}
	return max - min
}

// IsOpenPosition reports whether the fingering uses an open string and
// stays within the instrument's open-position threshold.
func (f Fingering) IsOpenPosition(inst Instrument) bool {
	hasOpen := false
	for _, s := range f.strings {
		if s == 0 {
			hasOpen = true
			break
		}
	}
	if !hasOpen {
		return false
	}
	max, _ := f.MaxFret()
	return max <= inst.OpenPositionThreshold()
}

// HasBarre reports whether at least two strings sit at the lowest
// fretted fret.
func (f Fingering) HasBarre() bool {
	min, ok := f.MinFret()
	if !ok {
		return false
	}
	count := 0
	for _, s := range f.strings {
		if fret, fretted := s.Fret(); fretted && fret == min {
			count++
		}
	}
	return count >= 2
}

// HasHighBarre reports whether the longest barre sits above the lowest
// fret in use. A barre at the foundation position is normal technique;
// one above it needs an awkward ring or pinky barre.
func (f Fingering) HasHighBarre(inst Instrument) bool {
	return f.hasHighBarre(inst.MainBarreThreshold())
}

func (f Fingering) hasHighBarre(threshold int) bool {
	minFret, ok := f.MinFret()
	if !ok {
		return false
	}

	groups := f.frettedGroups()
	frets := sortedFrets(groups)

	maxBarreLength := 0
	maxBarreFret := 0
	for _, fret := range frets {
		consecutive := longestRun(groups[fret])
		if consecutive > maxBarreLength {
			maxBarreLength = consecutive
			maxBarreFret = fret
		}
	}

	return maxBarreLength >= threshold && maxBarreFret > minFret
}

// MinFingersRequired estimates the fretting fingers needed. Strings at
// the same fret with contiguous indexes share one finger (a barre);
// gaps need separate fingers. The estimate is conservative: it never
// under-counts, but can over-count some barre-plus-extension shapes.
func (f Fingering) MinFingersRequired() int {
	groups := f.frettedGroups()
	total := 0
	for _, fret := range sortedFrets(groups) {
		total += runCount(groups[fret])
	}
	return total
}

// frettedGroups maps each fret above 0 to the ascending string indexes
// fretted there.
func (f Fingering) frettedGroups() map[int][]int {
	groups := make(map[int][]int)
	for i, s := range f.strings {
		if fret, ok := s.Fret(); ok && fret > 0 {
			groups[fret] = append(groups[fret], i)
		}
	}
	return groups
}

func sortedFrets(groups map[int][]int) []int {
	frets := make([]int, 0, len(groups))
	for fret := range groups {
		frets = append(frets, fret)
	}
	sort.Ints(frets)
	return frets
}

// longestRun returns the length of the longest consecutive run in an
// ascending index list.
func longestRun(indexes []int) int {
	if len(indexes) == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < len(indexes); i++ {
		if indexes[i] == indexes[i-1]+1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// runCount returns the number of consecutive runs in an ascending index
// list, each run playable with a single finger.
func runCount(indexes []int) int {
	if len(indexes) == 0 {
		return 0
	}
	count := 1
	for i := 1; i < len(indexes); i++ {
		if indexes[i] != indexes[i-1]+1 {
			count++
		}
	}
	return count
}

// IsPlayable reports whether the fingering fits within the instrument's
// stretch and finger limits.
func (f Fingering) IsPlayable(inst Instrument) bool {
	if f.FretSpan() > inst.MaxStretch() {
		return false
	}
	return f.MinFingersRequired() <= inst.MaxFingers()
}

// Notes returns the sounding notes, lowest string first.
func (f Fingering) Notes(inst Instrument) []theory.Note {
	tuning := inst.Tuning()
	notes := make([]theory.Note, 0, len(f.strings))
	for i, s := range f.strings {
		if i >= len(tuning) {
			break
		}
		if fret, ok := s.Fret(); ok {
			notes = append(notes, tuning[i].AddSemitones(fret))
		}
	}
	return notes
}

// PitchClasses returns the pitch class of each sounding note, lowest
// string first, duplicates included.
func (f Fingering) PitchClasses(inst Instrument) []theory.PitchClass {
	notes := f.Notes(inst)
	pitches := make([]theory.PitchClass, len(notes))
	for i, n := range notes {
		pitches[i] = n.Pitch
	}
	return pitches
}

// UniquePitchClasses returns the distinct sounding pitch classes in
// ascending semitone order.
func (f Fingering) UniquePitchClasses(inst Instrument) []theory.PitchClass {
	pitches := f.PitchClasses(inst)
	sort.Slice(pitches, func(i, j int) bool {
		return pitches[i].Semitone() < pitches[j].Semitone()
	})

	unique := pitches[:0]
	for _, p := range pitches {
		if len(unique) == 0 || p != unique[len(unique)-1] {
			unique = append(unique, p)
		}
	}
	return unique
}

// BassNote returns the note carrying the bass. The scan starts at the
// instrument's bass string and falls back to the strings before it, so
// re-entrant tunings report the true lowest-sounding string.
func (f Fingering) BassNote(inst Instrument) (theory.Note, bool) {
	tuning := inst.Tuning()
	bassIdx := inst.BassStringIndex()
	count := len(f.strings)
	if len(tuning) < count {
		count = len(tuning)
	}
	if bassIdx > count {
		bassIdx = count
	}

	for i := bassIdx; i < count; i++ {
		if fret, ok := f.strings[i].Fret(); ok {
			return tuning[i].AddSemitones(fret), true
		}
	}
	for i := 0; i < bassIdx; i++ {
		if fret, ok := f.strings[i].Fret(); ok {
			return tuning[i].AddSemitones(fret), true
		}
	}
	return theory.Note{}, false
}

// PlayabilityScore rates how easy the fingering is to fret, from 0
// (unplayable) to 100 (trivial).
func (f Fingering) PlayabilityScore(inst Instrument) int {
	score := 100

	span := f.FretSpan()
	if span > inst.MaxStretch() {
		return 0
	}
	score -= span * 10

	fingers := f.MinFingersRequired()
	if fingers > inst.MaxFingers() {
		return 0
	}

	// Fewer fingers mean easier transitions. Using all four is normal
	// for barre chords, so the top band only loses a little.
	ratio := float64(fingers) / float64(inst.MaxFingers())
	switch {
	case ratio <= 0.25:
		score += 15
	case ratio <= 0.5:
		score += 10
	case ratio <= 0.75:
	default:
		score -= 5
	}

	if f.hasHighBarre(inst.MainBarreThreshold()) {
		score -= 40
	}

	// Open strings sandwiched between fretted ones ring against the
	// fretted notes and need precise muting.
	interiorOpens := f.interiorOpenCount()
	score -= interiorOpens * 15

	hasOpen := false
	for _, s := range f.strings {
		if s == 0 {
			hasOpen = true
			break
		}
	}
	maxFret, _ := f.MaxFret()
	if hasOpen && maxFret <= inst.OpenPositionThreshold() && interiorOpens == 0 {
		score += 10
	}

	if min, ok := f.MinFret(); ok && min > 7 {
		score -= (min - 7) * 2
	}

	muted := len(f.strings) - f.PlayedCount()
	if muted > 1 {
		score -= (muted - 1) * 5
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// interiorOpenCount counts open strings between the outermost fretted
// strings.
func (f Fingering) interiorOpenCount() int {
	first, last := -1, -1
	for i, s := range f.strings {
		if fret, ok := s.Fret(); ok && fret > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || last <= first {
		return 0
	}

	count := 0
	for i := first; i <= last; i++ {
		if f.strings[i] == 0 {
			count++
		}
	}
	return count
}

func (f Fingering) String() string {
	var b strings.Builder
	for _, s := range f.strings {
		b.WriteString(s.String())
	}
	return b.String()
}

// Builder assembles a fingering string by string; unset strings stay
// muted.
type Builder struct {
	strings []StringState
}

func NewBuilder(stringCount int) *Builder {
	states := make([]StringState, stringCount)
	for i := range states {
		states[i] = Muted
	}
	return &Builder{strings: states}
}

func (b *Builder) Fret(stringIdx, fret int) *Builder {
	if stringIdx >= 0 && stringIdx < len(b.strings) && fret >= 0 {
		b.strings[stringIdx] = StringState(fret)
	}
	return b
}

func (b *Builder) Mute(stringIdx int) *Builder {
	if stringIdx >= 0 && stringIdx < len(b.strings) {
		b.strings[stringIdx] = Muted
	}
	return b
}

func (b *Builder) Build() Fingering {
	return NewFingering(b.strings)
}
