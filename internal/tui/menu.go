package tui

import (
	"strings"

	"habitfs/internal/database/repository"
)

// Assumed menu dimensions, used for viewport clamping regardless of which
// variant is showing. The largest variant fits inside them.
const (
	menuWidth  = 24
	menuHeight = 9
)

type menuItem struct {
	label     string
	intent    Intent
	danger    bool
	disabled  bool
	separator bool
}

// contextMenu is the single transient popup. The App owns at most one
// instance at a time; a nil pointer means closed, so the open/close
// lifecycle cannot leak handlers or double-register anything.
type contextMenu struct {
	x, y     int
	targetID string // empty = opened on empty space
	items    []menuItem
	cursor   int
}

// newContextMenu builds the menu variant for the target and clamps its
// anchor so the popup stays fully on screen. A target id that resolves to
// nothing falls back to the empty-space variant.
func newContextMenu(x, y int, targetID string, index map[string]repository.Entry, viewportW, viewportH int) *contextMenu {
	var items []menuItem
	resolvedID := ""
	if e, ok := index[targetID]; ok && targetID != "" {
		resolvedID = e.ID
		if e.Kind == repository.KindFile {
			items = []menuItem{
				{label: "Edit Habit", intent: IntentEdit},
				{label: "View Details", intent: IntentDetails},
				{separator: true},
				{label: "Copy", intent: IntentCopy},
				{label: "Cut", intent: IntentCut},
				{label: "Rename", intent: IntentRename},
				{label: "Delete", intent: IntentDelete, danger: true},
			}
		} else {
			items = []menuItem{
				{label: "Copy", intent: IntentCopy},
				{label: "Cut", intent: IntentCut},
				{label: "Rename", intent: IntentRename},
				{label: "Delete", intent: IntentDelete, danger: true},
			}
		}
	} else {
		items = []menuItem{
			{label: "New Habit", intent: IntentNewHabit},
			{label: "New Folder", intent: IntentNewFolder},
			{separator: true},
			{label: "Paste", intent: IntentPaste, disabled: true},
		}
	}

	cx, cy := clampMenuPos(x, y, viewportW, viewportH)
	m := &contextMenu{x: cx, y: cy, targetID: resolvedID, items: items}
	m.cursor = m.firstSelectable()
	return m
}

// clampMenuPos keeps the menu's right and bottom edges inside the viewport,
// floored at the origin.
func clampMenuPos(x, y, viewportW, viewportH int) (int, int) {
	if x > viewportW-menuWidth {
		x = viewportW - menuWidth
	}
	if y > viewportH-menuHeight {
		y = viewportH - menuHeight
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

func (m *contextMenu) view() string {
	inner := menuWidth - 4 // border + padding
	var lines []string
	for i, it := range m.items {
		if it.separator {
			lines = append(lines, strings.Repeat("─", inner))
			continue
		}
		prefix := "  "
		if i == m.cursor {
			prefix = menuCursor.Render("▶ ")
		}
		label := padRight(it.label, inner-2)
		switch {
		case it.disabled:
			label = menuDisabled.Render(label)
		case it.danger:
			label = menuDanger.Render(label)
		}
		lines = append(lines, prefix+label)
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// contains reports whether screen coordinates fall inside the menu's
// bounding box, border included.
func (m *contextMenu) contains(x, y int) bool {
	w := maxLineWidth(splitLines(m.view()))
	h := len(m.items) + 2 // border rows
	return x >= m.x && x < m.x+w && y >= m.y && y < m.y+h
}

// itemAt maps screen coordinates to an item index, accounting for the top
// border row.
func (m *contextMenu) itemAt(x, y int) (int, bool) {
	if !m.contains(x, y) {
		return 0, false
	}
	idx := y - m.y - 1
	if idx < 0 || idx >= len(m.items) {
		return 0, false
	}
	if m.items[idx].separator {
		return 0, false
	}
	return idx, true
}

// moveCursor steps over separators; disabled items stay reachable so their
// disabled affordance is visible.
func (m *contextMenu) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.items) {
			return
		}
		if !m.items[i].separator {
			m.cursor = i
			return
		}
	}
}

func (m *contextMenu) firstSelectable() int {
	for i, it := range m.items {
		if !it.separator {
			return i
		}
	}
	return 0
}

func (m *contextMenu) selectedItem() menuItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return menuItem{}
	}
	return m.items[m.cursor]
}

func (m *contextMenu) hasItem(label string) bool {
	for _, it := range m.items {
		if it.label == label {
			return true
		}
	}
	return false
}
