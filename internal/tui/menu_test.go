package tui

import (
	"testing"

	"habitfs/internal/database/repository"
)

func menuIndex() map[string]repository.Entry {
	return indexOf(testEntries())
}

func TestNewContextMenuFileVariant(t *testing.T) {
	m := newContextMenu(10, 5, "h1", menuIndex(), 120, 40)
	for _, label := range []string{"Edit Habit", "View Details", "Copy", "Cut", "Rename", "Delete"} {
		if !m.hasItem(label) {
			t.Errorf("file menu missing %q", label)
		}
	}
	if m.hasItem("Paste") {
		t.Error("file menu must not offer Paste")
	}
	if m.targetID != "h1" {
		t.Errorf("targetID = %q, want h1", m.targetID)
	}
}

func TestNewContextMenuFolderVariant(t *testing.T) {
	m := newContextMenu(10, 5, "f1", menuIndex(), 120, 40)
	if m.hasItem("Edit Habit") || m.hasItem("View Details") {
		t.Error("folder menu must not offer habit-only actions")
	}
	for _, label := range []string{"Copy", "Cut", "Rename", "Delete"} {
		if !m.hasItem(label) {
			t.Errorf("folder menu missing %q", label)
		}
	}
}

func TestNewContextMenuEmptySpaceVariant(t *testing.T) {
	m := newContextMenu(10, 5, "", menuIndex(), 120, 40)
	if !m.hasItem("New Habit") || !m.hasItem("New Folder") {
		t.Error("empty-space menu must offer creation actions")
	}
	if m.targetID != "" {
		t.Errorf("empty-space menu must carry no target, got %q", m.targetID)
	}
	var paste menuItem
	for _, it := range m.items {
		if it.label == "Paste" {
			paste = it
		}
	}
	if !paste.disabled {
		t.Error("Paste must be disabled")
	}
}

func TestNewContextMenuUnknownTargetFallsBack(t *testing.T) {
	m := newContextMenu(10, 5, "no-such-id", menuIndex(), 120, 40)
	if !m.hasItem("New Habit") {
		t.Error("unresolved target must fall back to the empty-space variant")
	}
	if m.targetID != "" {
		t.Errorf("unresolved target must clear targetID, got %q", m.targetID)
	}
}

func TestClampMenuPos(t *testing.T) {
	cases := []struct {
		x, y, w, h   int
		wantX, wantY int
	}{
		{10, 5, 120, 40, 10, 5},
		{80, 24, 80, 24, 80 - menuWidth, 24 - menuHeight},
		{119, 39, 120, 40, 120 - menuWidth, 40 - menuHeight},
		{-3, -3, 120, 40, 0, 0},
		{5, 5, 10, 5, 0, 0},
	}
	for _, c := range cases {
		gotX, gotY := clampMenuPos(c.x, c.y, c.w, c.h)
		if gotX != c.wantX || gotY != c.wantY {
			t.Errorf("clampMenuPos(%d,%d,%d,%d) = (%d,%d), want (%d,%d)",
				c.x, c.y, c.w, c.h, gotX, gotY, c.wantX, c.wantY)
		}
	}
}

func TestMenuContainsAndItemAt(t *testing.T) {
	m := newContextMenu(10, 5, "h1", menuIndex(), 120, 40)

	if !m.contains(10, 5) {
		t.Error("top-left border cell must be inside the menu")
	}
	if m.contains(9, 5) || m.contains(10, 4) {
		t.Error("cells left of or above the menu must be outside")
	}
	bottom := 5 + len(m.items) + 2
	if m.contains(10, bottom) {
		t.Error("cell below the bottom border must be outside")
	}

	// Row just under the top border is the first item.
	idx, ok := m.itemAt(12, 6)
	if !ok || idx != 0 {
		t.Errorf("itemAt on the first row = (%d,%v), want (0,true)", idx, ok)
	}
	// Separator rows never resolve to an item.
	sep := -1
	for i, it := range m.items {
		if it.separator {
			sep = i
			break
		}
	}
	if sep < 0 {
		t.Fatal("file menu should contain a separator")
	}
	if _, ok := m.itemAt(12, 5+1+sep); ok {
		t.Error("separator row must not resolve to an item")
	}
	if _, ok := m.itemAt(12, 5); ok {
		t.Error("border row must not resolve to an item")
	}
}

func TestMenuMoveCursorSkipsSeparators(t *testing.T) {
	m := newContextMenu(0, 0, "h1", menuIndex(), 120, 40)
	if m.cursor != 0 {
		t.Fatalf("cursor starts at %d, want 0", m.cursor)
	}
	m.moveCursor(1) // View Details
	m.moveCursor(1) // skips separator, lands on Copy
	if m.selectedItem().label != "Copy" {
		t.Errorf("cursor should skip the separator, on %q", m.selectedItem().label)
	}
	m.moveCursor(-1)
	if m.selectedItem().label != "View Details" {
		t.Errorf("cursor should skip back over the separator, on %q", m.selectedItem().label)
	}
	m.cursor = 0
	m.moveCursor(-1)
	if m.cursor != 0 {
		t.Error("cursor must not move past the top")
	}
}

func TestMenuDisabledItemReachable(t *testing.T) {
	m := newContextMenu(0, 0, "", menuIndex(), 120, 40)
	for i := 0; i < len(m.items); i++ {
		m.moveCursor(1)
	}
	if got := m.selectedItem(); got.label != "Paste" || !got.disabled {
		t.Errorf("disabled Paste should stay reachable, cursor on %q", got.label)
	}
}
