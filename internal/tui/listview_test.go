package tui

import (
	"strings"
	"testing"

	"habitfs/internal/database/repository"
)

func indexOf(entries []repository.Entry) map[string]repository.Entry {
	idx := make(map[string]repository.Entry, len(entries))
	for _, e := range entries {
		idx[e.ID] = e
	}
	return idx
}

func idsOf(entries []repository.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestRenderListSkeletonsWhileLoadingEmpty(t *testing.T) {
	state := listViewState{status: statusLoading}
	out := renderList(state, nil, nil, 0, 80)
	rows := strings.Split(out, "\n")
	if len(rows) != skeletonRows {
		t.Fatalf("expected %d skeleton rows, got %d: %q", skeletonRows, len(rows), out)
	}
	for _, r := range rows {
		if !strings.Contains(r, "░") {
			t.Errorf("skeleton row missing placeholder texture: %q", r)
		}
	}
}

func TestRenderListLoadingWithDataShowsRows(t *testing.T) {
	entries := testEntries()
	state := listViewState{status: statusLoading, orderedIDs: idsOf(entries)}
	out := renderList(state, indexOf(entries), nil, 0, 80)
	if !strings.Contains(out, "Morning run") {
		t.Errorf("reload over existing data must keep rendering rows, got %q", out)
	}
}

func TestRenderListFailed(t *testing.T) {
	state := listViewState{status: statusFailed, err: "database is locked"}
	out := renderList(state, nil, nil, 0, 80)
	if !strings.Contains(out, "Could not load habits: database is locked") {
		t.Errorf("error branch must show the failure verbatim, got %q", out)
	}
}

func TestRenderListEmptySucceeded(t *testing.T) {
	state := listViewState{status: statusSucceeded}
	out := renderList(state, nil, nil, 0, 80)
	if !strings.Contains(out, listEmptyMessage) {
		t.Errorf("expected empty-state call to action, got %q", out)
	}
}

func TestRenderListRowOrderFollowsIDs(t *testing.T) {
	entries := testEntries()
	ids := []string{"h2", "f1", "h1"}
	state := listViewState{status: statusSucceeded, orderedIDs: ids}
	out := renderList(state, indexOf(entries), nil, -1, 120)

	posJournal := strings.Index(out, "Journal")
	posHealth := strings.Index(out, "Health")
	posRun := strings.Index(out, "Morning run")
	if posJournal < 0 || posHealth < 0 || posRun < 0 {
		t.Fatalf("missing rows in output %q", out)
	}
	if !(posJournal < posHealth && posHealth < posRun) {
		t.Errorf("rows must follow orderedIDs order, got %q", out)
	}
}

func TestRenderListSkipsUnknownIDs(t *testing.T) {
	entries := testEntries()
	state := listViewState{status: statusSucceeded, orderedIDs: append(idsOf(entries), "gone")}
	out := renderList(state, indexOf(entries), nil, -1, 120)
	if got := len(strings.Split(out, "\n")); got != len(entries) {
		t.Errorf("unknown ids must be skipped, got %d rows", got)
	}
}
