package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Conceptual-Machines/fretboard-api/internal/engine"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
)

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	chordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

const separatorWidth = 60

// renderDiagram colors the metadata lines of a fingering diagram and
// leaves the string grid plain.
func renderDiagram(scored engine.ScoredFingering, inst fretboard.Instrument) string {
	lines := strings.Split(engine.FormatFingeringDiagram(scored, inst), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "Score:"):
			lines[i] = dimStyle.Render(line)
		case strings.HasPrefix(line, "Root in bass:"):
			lines[i] = okStyle.Render(line)
		case strings.HasPrefix(line, "Notes:"):
			lines[i] = dimStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// displayMatches prints the best chord reading and up to four
// alternatives. With a capo, matches are transposed to sounding names
// and annotated with the fretted shape.
func displayMatches(matches []engine.ChordMatch, capo int) {
	top := matches[0]
	display := top.Chord
	if capo != 0 {
		display = top.Chord.Transpose(capo)
	}

	if capo != 0 {
		fmt.Printf("%s %s %s\n\n",
			chordStyle.Render("Best match:"),
			chordStyle.Render(display.String()),
			dimStyle.Render(fmt.Sprintf("(%s shape)", top.Chord.String())))
	} else {
		fmt.Printf("%s %s\n\n", chordStyle.Render("Best match:"), chordStyle.Render(display.String()))
	}

	fmt.Printf("  Confidence: %.0f%%\n", top.Completeness*100)
	rootInBass := warnStyle.Render("No")
	if top.RootInBass {
		rootInBass = okStyle.Render("Yes")
	}
	fmt.Printf("  Root in bass: %s\n", rootInBass)
	fmt.Printf("  Score: %d\n", top.Score)

	if len(matches) == 1 {
		return
	}

	fmt.Printf("\n%s\n", boldStyle.Render("Alternative interpretations:"))
	alternatives := matches[1:]
	if len(alternatives) > 4 {
		alternatives = alternatives[:4]
	}
	for i, m := range alternatives {
		display := m.Chord
		if capo != 0 {
			display = m.Chord.Transpose(capo)
		}
		if capo != 0 {
			fmt.Printf("  %d. %s %s (confidence: %.0f%%, score: %d)\n",
				i+1, accentStyle.Render(display.String()),
				dimStyle.Render(fmt.Sprintf("(%s shape)", m.Chord.String())),
				m.Completeness*100, m.Score)
		} else {
			fmt.Printf("  %d. %s (confidence: %.0f%%, score: %d)\n",
				i+1, accentStyle.Render(display.String()),
				m.Completeness*100, m.Score)
		}
	}
}

// displayProgressions prints each alternative sequence with per-chord
// diagrams and the transition between consecutive chords.
func displayProgressions(sequences []engine.ProgressionSequence, labels []string, capo int, inst fretboard.Instrument) {
	header := fmt.Sprintf("\n%s %s", boldStyle.Render("Progression:"), chordStyle.Render(strings.Join(labels, " → ")))
	if capo != 0 {
		header += " " + warnStyle.Render(fmt.Sprintf("(Capo %d)", capo))
	}
	fmt.Printf("%s [%s]\n\n", header, inst.Name())

	separator := dimStyle.Render(strings.Repeat("━", separatorWidth))

	for altIdx, seq := range sequences {
		fmt.Println(separator)
		fmt.Printf("%s #%s\n", boldStyle.Render("Alternative"), accentStyle.Render(strconv.Itoa(altIdx+1)))
		fmt.Printf("%s: %d | %s: %.1f\n",
			boldStyle.Render("Total Score"), seq.TotalScore,
			boldStyle.Render("Avg Transition"), seq.AvgTransitionScore)
		fmt.Println(separator)
		fmt.Println()

		for i, scored := range seq.Fingerings {
			label := seq.Chords[i]
			if i < len(labels) {
				label = labels[i]
			}

			fmt.Printf("[%s] %s - Fret %d\n",
				accentStyle.Render(strconv.Itoa(i+1)),
				chordStyle.Render(label),
				scored.Position)

			for _, line := range strings.Split(renderDiagram(scored, inst), "\n") {
				fmt.Println("  " + line)
			}

			if i < len(seq.Transitions) {
				t := seq.Transitions[i]
				fmt.Println()
				fmt.Printf("  %s %s: %s\n",
					boldStyle.Render("↓"),
					dimStyle.Render("Transition Score"),
					accentStyle.Render(strconv.Itoa(t.Score)))
				fmt.Printf("    %s: %d fingers | %s: %d | %s: %d frets\n",
					dimStyle.Render("Movements"), t.FingerMovements,
					dimStyle.Render("Anchors"), t.CommonAnchors,
					dimStyle.Render("Distance"), t.PositionDistance)
				fmt.Println()
			}
		}

		fmt.Println()
	}
}
