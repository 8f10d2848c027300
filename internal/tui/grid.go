package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitfs/internal/database/repository"
)

// Fixed cell geometry. Mouse hit-testing in the app depends on these.
const (
	cellWidth  = 24
	cellHeight = 5
)

const (
	folderIcon = "▦"
	fileIcon   = "○"
)

const gridEmptyMessage = "This folder is empty. Press n to create a habit, N for a folder."

// renderGrid lays entries out in fixed-size cells across the given width.
// It is a pure function of its inputs; selection and focus are reported by
// the caller, never owned here.
func renderGrid(entries []repository.Entry, selected map[string]struct{}, cursor, width int) string {
	if len(entries) == 0 {
		return emptyStyle.Render(gridEmptyMessage)
	}

	cols := gridColumns(width)
	var rows []string
	for start := 0; start < len(entries); start += cols {
		end := start + cols
		if end > len(entries) {
			end = len(entries)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			_, isSelected := selected[entries[i].ID]
			cells = append(cells, renderCell(entries[i], isSelected, i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// gridColumns returns how many cells fit per row, never less than one.
func gridColumns(width int) int {
	cols := width / cellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// cellIndexAt maps body-relative pointer coordinates to an entry index.
func cellIndexAt(x, y, width, count int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	cols := gridColumns(width)
	col := x / cellWidth
	if col >= cols {
		return 0, false
	}
	idx := (y/cellHeight)*cols + col
	if idx >= count {
		return 0, false
	}
	return idx, true
}

func renderCell(e repository.Entry, isSelected, focused bool) string {
	inner := cellWidth - 2

	marker := " "
	if focused {
		marker = cursorStyle.Render("▶")
	}
	check := " "
	if isSelected {
		check = selectedStyle.Render("✓")
	}
	icon := fileIcon
	if e.Kind == repository.KindFolder {
		icon = folderIcon
	}
	nameStyle := lipgloss.NewStyle().Foreground(priorityAccent(e.Priority))
	name := nameStyle.Render(truncate(e.Name, inner-4))
	lines := []string{fmt.Sprintf("%s%s %s %s", marker, check, icon, name)}

	var meta []string
	if e.Difficulty != nil {
		meta = append(meta, starIndicator(difficultyStars(*e.Difficulty)))
	}
	if e.Streak != nil {
		meta = append(meta, streakStyle.Render(fmt.Sprintf("%dd streak", *e.Streak)))
	}
	lines = append(lines, "  "+strings.Join(meta, "  "))

	var info []string
	if e.Category != nil && *e.Category != "" {
		info = append(info, categoryStyle.Render(truncate(*e.Category, 12)))
	}
	if n := len(e.Tags); n > 0 {
		info = append(info, tagCountStyle.Render(fmt.Sprintf("#%d", n)))
	}
	lines = append(lines, "  "+strings.Join(info, "  "))

	if e.CompletionRate != nil {
		lines = append(lines, "  "+progressBar(*e.CompletionRate, inner-8)+fmt.Sprintf(" %3.0f%%", clampRate(*e.CompletionRate)))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "")

	for i := range lines {
		lines[i] = padRight(lines[i], cellWidth)
	}
	return strings.Join(lines, "\n")
}

// difficultyStars maps difficulty to a star count on the fixed 3-star
// indicator. "hard" and unrecognized values both land on 2.
// TODO: decide whether hard should be 3 stars; it currently matches medium,
// which makes hard habits indistinguishable from medium ones at a glance.
func difficultyStars(d string) int {
	switch d {
	case repository.DifficultyEasy:
		return 1
	case repository.DifficultyMedium:
		return 2
	default:
		return 2
	}
}

func starIndicator(filled int) string {
	if filled < 0 {
		filled = 0
	}
	if filled > 3 {
		filled = 3
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 3-filled)
}

// progressBar renders a filled bar for a completion percentage, clamped to
// the declared range.
func progressBar(rate float64, width int) string {
	if width < 1 {
		width = 1
	}
	r := clampRate(rate)
	filled := int(r/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return barFilled.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
