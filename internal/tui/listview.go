package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitfs/internal/database/repository"
)

// listStatus mirrors the load lifecycle of the entry store.
type listStatus string

const (
	statusIdle      listStatus = "idle"
	statusLoading   listStatus = "loading"
	statusSucceeded listStatus = "succeeded"
	statusFailed    listStatus = "failed"
)

// listViewState is the read-only view of the store the list renders from.
// It is written only by load messages in the update loop.
type listViewState struct {
	status     listStatus
	err        string
	orderedIDs []string
}

const (
	skeletonRows     = 2
	listEmptyMessage = "No habits yet. Press n to create your first habit."
)

// renderList picks exactly one of four branches from the store state:
// skeletons while the first load is in flight, an error panel on failure,
// an empty-state call to action, or one row per id in orderedIDs order.
// A non-empty id list renders rows even while a reload is in flight.
func renderList(state listViewState, index map[string]repository.Entry, selected map[string]struct{}, cursor, width int) string {
	switch {
	case state.status == statusLoading && len(state.orderedIDs) == 0:
		return renderSkeletons(width)
	case state.status == statusFailed:
		return errorStyle.Render("Could not load habits: " + state.err)
	case len(state.orderedIDs) == 0:
		return emptyStyle.Render(listEmptyMessage)
	}

	var b strings.Builder
	for i, id := range state.orderedIDs {
		e, ok := index[id]
		if !ok {
			continue
		}
		_, isSelected := selected[id]
		b.WriteString(renderListRow(e, isSelected, i == cursor, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSkeletons(width int) string {
	w := width - 4
	if w < 8 {
		w = 8
	}
	row := "  " + skeletonStyle.Render(strings.Repeat("░", w))
	rows := make([]string, skeletonRows)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func renderListRow(e repository.Entry, isSelected, focused bool, width int) string {
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

	name := truncate(e.Name, 28)
	accent := priorityAccent(e.Priority)
	dot := lipgloss.NewStyle().Foreground(accent).Render("●")

	var extras []string
	if e.Streak != nil {
		extras = append(extras, streakStyle.Render(fmt.Sprintf("%dd", *e.Streak)))
	}
	if e.CompletionRate != nil {
		extras = append(extras, progressBar(*e.CompletionRate, 10))
	}
	if n := len(e.Tags); n > 0 {
		extras = append(extras, tagCountStyle.Render(fmt.Sprintf("#%d", n)))
	}

	line := fmt.Sprintf("%s%s %s %s %s  %s", marker, check, dot, icon, padRight(name, 28), strings.Join(extras, "  "))
	return truncate(line, width)
}
