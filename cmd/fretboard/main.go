// Package main provides the fretboard command line interface.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/fretboard-api/internal/engine"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

const (
	defaultFindLimit        = 5
	defaultProgressionLimit = 3
	defaultMaxDistance      = 3
)

var (
	findLimit      int
	findPosition   int
	findVoicing    string
	findContext    string
	findCapo       int
	findInstrument string
	findTuning     string

	nameCapo       int
	nameInstrument string
	nameTuning     string

	progLimit       int
	progMaxDistance int
	progPosition    int
	progVoicing     string
	progContext     string
	progCapo        int
	progInstrument  string
	progTuning      string
)

// version is set via ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fretboard",
		Short:         "Chord fingerings for fretted string instruments",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newNameCmd())
	rootCmd.AddCommand(newProgressionCmd())
	rootCmd.AddCommand(newInstrumentsCmd())

	return rootCmd
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find CHORD",
		Short: "Find fingerings for a chord",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var position *int
			if cmd.Flags().Changed("position") {
				position = &findPosition
			}
			return runFind(args[0], findCapo, findInstrument, findTuning, searchFlags{
				limit:    findLimit,
				position: position,
				voicing:  findVoicing,
				context:  findContext,
			})
		},
	}

	cmd.Flags().IntVarP(&findLimit, "limit", "l", defaultFindLimit, "number of fingerings to show")
	cmd.Flags().IntVarP(&findPosition, "position", "p", 0, "prefer fingerings near this fret position")
	cmd.Flags().StringVarP(&findVoicing, "voicing", "v", "", "voicing type: core, full, or jazzy")
	cmd.Flags().StringVarP(&findContext, "context", "x", "", "playing context: solo or band")
	cmd.Flags().IntVarP(&findCapo, "capo", "c", 0, "capo position (fret number)")
	cmd.Flags().StringVarP(&findInstrument, "instrument", "i", "guitar", "instrument preset (see 'fretboard instruments')")
	cmd.Flags().StringVarP(&findTuning, "tuning", "t", "", "custom tuning, low string first (e.g. \"D2,A2,D3,G3,B3,E4\")")

	return cmd
}

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name TAB",
		Short: "Identify a chord from fingering notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runName(args[0], nameCapo, nameInstrument, nameTuning)
		},
	}

	cmd.Flags().IntVarP(&nameCapo, "capo", "c", 0, "capo position (fret number)")
	cmd.Flags().StringVarP(&nameInstrument, "instrument", "i", "guitar", "instrument preset (see 'fretboard instruments')")
	cmd.Flags().StringVarP(&nameTuning, "tuning", "t", "", "custom tuning, low string first")

	return cmd
}

func newProgressionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progression \"CHORDS\"",
		Short: "Find fingering sequences for a chord progression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var position *int
			if cmd.Flags().Changed("position") {
				position = &progPosition
			}
			return runProgression(args[0], progCapo, progInstrument, progTuning, progressionFlags{
				limit:       progLimit,
				maxDistance: progMaxDistance,
				position:    position,
				voicing:     progVoicing,
				context:     progContext,
			})
		},
	}

	cmd.Flags().IntVarP(&progLimit, "limit", "l", defaultProgressionLimit, "number of alternative progressions to show")
	cmd.Flags().IntVarP(&progMaxDistance, "max-distance", "d", defaultMaxDistance, "maximum fret distance between consecutive chords")
	cmd.Flags().IntVarP(&progPosition, "position", "p", 0, "prefer fingerings near this fret position")
	cmd.Flags().StringVarP(&progVoicing, "voicing", "v", "", "voicing type: core, full, or jazzy")
	cmd.Flags().StringVarP(&progContext, "context", "x", "", "playing context: solo or band")
	cmd.Flags().IntVarP(&progCapo, "capo", "c", 0, "capo position (fret number)")
	cmd.Flags().StringVarP(&progInstrument, "instrument", "i", "guitar", "instrument preset (see 'fretboard instruments')")
	cmd.Flags().StringVarP(&progTuning, "tuning", "t", "", "custom tuning, low string first")

	return cmd
}

func newInstrumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List available instrument presets",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInstruments()
		},
	}
}

// resolveInstrument builds the instrument for a command. An explicit
// tuning wins over the preset id.
func resolveInstrument(instrumentID, tuning string) (fretboard.Instrument, error) {
	if tuning != "" {
		notes, err := fretboard.ParseTuning(tuning)
		if err != nil {
			return nil, err
		}
		return fretboard.NewCustomFromTuning(notes)
	}
	return fretboard.NewPresetInstrument(instrumentID)
}

func checkCapo(inst fretboard.Instrument, capo int) error {
	if capo != 0 && (capo < 0 || capo > inst.MaxCapoFret()) {
		return &fretboard.InvalidCapoPositionError{Fret: capo, Min: 0, Max: inst.MaxCapoFret()}
	}
	return nil
}

type searchFlags struct {
	limit    int
	position *int
	voicing  string
	context  string
}

func (f searchFlags) apply(opts *engine.GeneratorOptions) {
	opts.PreferredPosition = f.position
	if voicing, ok := engine.ParseVoicingType(f.voicing); ok {
		opts.VoicingType = voicing
	}
	opts.PlayingContext = engine.ParsePlayingContext(f.context)
}

func runFind(chordName string, capo int, instrumentID, tuning string, flags searchFlags) error {
	chord, err := theory.ParseChord(chordName)
	if err != nil {
		return fmt.Errorf("invalid chord name %q: %w", chordName, err)
	}

	inst, err := resolveInstrument(instrumentID, tuning)
	if err != nil {
		return err
	}
	if err := checkCapo(inst, capo); err != nil {
		return err
	}

	// With a capo the search runs on the transposed shape; the output
	// keeps the requested name.
	searchChord := chord
	if capo != 0 {
		searchChord = chord.Transpose(-capo)
	}

	opts := engine.DefaultGeneratorOptions()
	opts.Limit = flags.limit
	flags.apply(&opts)

	fingerings := engine.GenerateFingerings(searchChord, inst, opts)
	if len(fingerings) == 0 {
		fmt.Println(warnStyle.Render("No fingerings found for chord: " + chordName))
		return nil
	}

	if capo != 0 {
		fmt.Printf("\n%s %s %s [%s] (showing %d of %d found)\n",
			boldStyle.Render("Fingerings for"),
			chordStyle.Render(chordName),
			warnStyle.Render(fmt.Sprintf("(Capo %d)", capo)),
			inst.Name(), len(fingerings), len(fingerings))
		fmt.Printf("%s %s\n\n", dimStyle.Render("Shape:"), accentStyle.Render(searchChord.String()))
	} else {
		fmt.Printf("\n%s %s [%s] (showing %d of %d found)\n\n",
			boldStyle.Render("Fingerings for"),
			chordStyle.Render(chord.String()),
			inst.Name(), len(fingerings), len(fingerings))
	}

	for i, scored := range fingerings {
		fmt.Printf("%s %s\n", accentStyle.Render(fmt.Sprintf("%d.", i+1)), scored.Fingering.String())
		fmt.Println(renderDiagram(scored, inst))
		fmt.Println()
	}

	return nil
}

func runName(tab string, capo int, instrumentID, tuning string) error {
	fingering, err := fretboard.ParseFingering(tab)
	if err != nil {
		return fmt.Errorf("invalid fingering notation %q: %w", tab, err)
	}

	inst, err := resolveInstrument(instrumentID, tuning)
	if err != nil {
		return err
	}
	if err := checkCapo(inst, capo); err != nil {
		return err
	}

	pitches := fingering.UniquePitchClasses(inst)
	matches := engine.AnalyzeFingering(fingering, inst)

	header := fmt.Sprintf("\n%s %s", boldStyle.Render("Analyzing fingering:"), chordStyle.Render(tab))
	if capo != 0 {
		header += " " + warnStyle.Render(fmt.Sprintf("(Capo %d)", capo))
	}
	fmt.Printf("%s [%s]\n\n", header, inst.Name())

	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.String()
	}
	fmt.Printf("Notes played: %s\n\n", strings.Join(names, ", "))

	if len(matches) == 0 {
		fmt.Println(warnStyle.Render("Could not identify chord (not enough notes)"))
		return nil
	}

	displayMatches(matches, capo)
	return nil
}

type progressionFlags struct {
	limit       int
	maxDistance int
	position    *int
	voicing     string
	context     string
}

func runProgression(chordsArg string, capo int, instrumentID, tuning string, flags progressionFlags) error {
	chordNames := strings.Fields(chordsArg)
	if len(chordNames) == 0 {
		fmt.Println(warnStyle.Render("No chords provided"))
		return nil
	}

	inst, err := resolveInstrument(instrumentID, tuning)
	if err != nil {
		return err
	}
	if err := checkCapo(inst, capo); err != nil {
		return err
	}

	// Names that fail to parse are dropped, so labels always line up
	// with the sequences the engine returns.
	labels := make([]string, 0, len(chordNames))
	searchNames := make([]string, 0, len(chordNames))
	for _, name := range chordNames {
		chord, err := theory.ParseChord(name)
		if err != nil {
			continue
		}
		labels = append(labels, name)
		if capo != 0 {
			chord = chord.Transpose(-capo)
		}
		searchNames = append(searchNames, chord.String())
	}

	opts := engine.DefaultProgressionOptions()
	opts.Limit = flags.limit
	opts.MaxFretDistance = flags.maxDistance
	searchFlags{position: flags.position, voicing: flags.voicing, context: flags.context}.apply(&opts.Generator)

	sequences := engine.GenerateProgression(searchNames, inst, opts)
	if len(sequences) == 0 {
		fmt.Println(warnStyle.Render("No valid progressions found"))
		return nil
	}

	displayProgressions(sequences, labels, capo, inst)
	return nil
}

func runInstruments() error {
	presets, err := fretboard.Presets()
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n\n", boldStyle.Render("Available instruments:"))
	for _, p := range presets {
		fmt.Printf("  %s %-18s %s\n",
			accentStyle.Render(fmt.Sprintf("%-12s", p.ID)),
			p.Name,
			dimStyle.Render(fmt.Sprintf("%d strings, tuned %s", len(p.Tuning), strings.Join(p.Tuning, " "))))
	}
	fmt.Printf("\n%s\n", dimStyle.Render("Select one with --instrument, or pass --tuning for a custom instrument."))

	return nil
}
