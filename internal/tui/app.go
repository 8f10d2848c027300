package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"habitfs/internal/config"
	"habitfs/internal/database/repository"
	"habitfs/internal/search"
	"habitfs/internal/service"
)

const appName = "habitfs"

// Rows taken by the header before the grid/list body starts. Mouse
// hit-testing subtracts this.
const bodyTop = 3

// doubleClickWindow is how close two presses on the same cell must be to
// count as an open gesture.
const doubleClickWindow = 500 * time.Millisecond

type viewMode string

const (
	viewGrid viewMode = "grid"
	viewList viewMode = "list"
)

type modalState string

const (
	modalNone      modalState = ""
	modalNewHabit  modalState = "newHabit"
	modalNewFolder modalState = "newFolder"
	modalEditName  modalState = "editName"
	modalDetails   modalState = "details"
)

// Repos bundles the storage handles the app reads and writes through.
type Repos struct {
	Entries *repository.EntryRepo
}

// Services bundles domain services.
type Services struct {
	Progress *service.ProgressService
}

type crumb struct {
	id   string
	name string
}

// App ties together the grid view, the list view and the context menu. It
// owns the selection set, the loaded entries, the store state the list view
// reads, and the single open menu instance; the views only emit intents.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	log      *zap.Logger

	width  int
	height int
	keys   keyMap
	view   viewMode

	folderID *string
	crumbs   []crumb
	entries  []repository.Entry
	index    map[string]repository.Entry
	list     listViewState
	selected map[string]struct{}
	cursor   int

	menu *contextMenu

	modal     modalState
	input     textinput.Model
	editingID string
	detailsID string

	filtering   bool
	filterInput textinput.Model

	status    string
	statusErr bool

	lastClickIdx int
	lastClickAt  time.Time
}

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	view := viewGrid
	if cfg.UI.DefaultView == string(viewList) {
		view = viewList
	}

	input := textinput.New()
	input.CharLimit = 80
	input.Width = 40

	filterInput := textinput.New()
	filterInput.Placeholder = "filter habits..."
	filterInput.CharLimit = 60
	filterInput.Width = 30

	return &App{
		ctx:          ctx,
		cfg:          cfg,
		repos:        repos,
		services:     services,
		log:          log,
		keys:         newKeyMap(),
		view:         view,
		width:        100,
		height:       32,
		index:        map[string]repository.Entry{},
		list:         listViewState{status: statusIdle},
		selected:     map[string]struct{}{},
		input:        input,
		filterInput:  filterInput,
		lastClickIdx: -1,
	}
}

func (a *App) Init() tea.Cmd {
	a.list.status = statusLoading
	return a.loadEntries()
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (a *App) loadEntries() tea.Cmd {
	parent := a.folderID
	return func() tea.Msg {
		list, err := a.repos.Entries.List(a.ctx, repository.EntryFilters{ParentID: parent})
		if err != nil {
			return errMsg{err}
		}
		return entriesMsg(list)
	}
}

func (a *App) createEntryCmd(kind repository.Kind, name string) tea.Cmd {
	parent := a.folderID
	return tea.Batch(
		func() tea.Msg {
			e := repository.Entry{
				ID:       uuid.NewString(),
				ParentID: parent,
				Kind:     kind,
				Name:     strings.TrimSpace(name),
			}
			if err := a.repos.Entries.Insert(a.ctx, e); err != nil {
				return errMsg{err}
			}
			if kind == repository.KindFolder {
				return statusMsg("folder created")
			}
			return statusMsg("habit created")
		},
		a.loadEntries(),
	)
}

func (a *App) renameEntryCmd(id, name string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Entries.Rename(a.ctx, id, strings.TrimSpace(name)); err != nil {
				return errMsg{err}
			}
			return statusMsg("habit updated")
		},
		a.loadEntries(),
	)
}

func (a *App) markDoneCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			res, err := a.services.Progress.MarkDone(a.ctx, id, time.Now())
			if err != nil {
				return errMsg{err}
			}
			if res.AlreadyDone {
				return statusMsg("already done today")
			}
			return statusMsg(fmt.Sprintf("done! %dd streak, %.0f%% rate", res.Streak, res.CompletionRate))
		},
		a.loadEntries(),
	)
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil

	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.menu != nil {
			return a.handleMenuKey(m)
		}
		if a.filtering && a.filterInput.Focused() {
			return a.handleFilterKey(m)
		}
		return a.handleMainKey(m)

	case tea.MouseMsg:
		return a.handleMouse(m)

	case intentMsg:
		return a.dispatchIntent(m)

	case entriesMsg:
		a.entries = []repository.Entry(m)
		a.index = make(map[string]repository.Entry, len(a.entries))
		ids := make([]string, 0, len(a.entries))
		for _, e := range a.entries {
			a.index[e.ID] = e
			ids = append(ids, e.ID)
		}
		a.list = listViewState{status: statusSucceeded, orderedIDs: ids}
		if a.cursor >= len(a.visible()) {
			a.cursor = 0
		}
		return a, nil

	case errMsg:
		a.list.status = statusFailed
		a.list.err = m.Error()
		a.setError(m)
		a.log.Error("load failed", zap.Error(m))
		return a, nil

	case statusMsg:
		a.setStatus(string(m))
		return a, nil
	}
	return a, nil
}

func (a *App) handleMainKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	vis := a.visible()
	if a.cursor >= len(vis) {
		a.cursor = 0
	}
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-a.cursorStride())
	case key.Matches(m, a.keys.Down):
		a.moveCursor(a.cursorStride())
	case key.Matches(m, a.keys.Left):
		if a.view == viewGrid {
			a.moveCursor(-1)
		}
	case key.Matches(m, a.keys.Right):
		if a.view == viewGrid {
			a.moveCursor(1)
		}
	case key.Matches(m, a.keys.Select):
		if len(vis) > 0 {
			return a.dispatchIntent(intentMsg{intent: IntentToggleSelect, targetID: vis[a.cursor].ID})
		}
	case key.Matches(m, a.keys.Open):
		if len(vis) > 0 {
			return a.dispatchIntent(intentMsg{intent: IntentOpen, targetID: vis[a.cursor].ID})
		}
	case key.Matches(m, a.keys.Back):
		return a.navigateUp()
	case key.Matches(m, a.keys.Menu):
		target := ""
		x, y := a.cursorAnchor()
		if len(vis) > 0 {
			target = vis[a.cursor].ID
		}
		return a.dispatchIntent(intentMsg{intent: IntentOpenMenu, targetID: target, x: x, y: y})
	case key.Matches(m, a.keys.NewHabit):
		return a.dispatchIntent(intentMsg{intent: IntentNewHabit})
	case key.Matches(m, a.keys.NewFolder):
		return a.dispatchIntent(intentMsg{intent: IntentNewFolder})
	case key.Matches(m, a.keys.Done):
		if len(vis) > 0 {
			return a.dispatchIntent(intentMsg{intent: IntentMarkDone, targetID: vis[a.cursor].ID})
		}
	case key.Matches(m, a.keys.Filter):
		a.filtering = true
		a.filterInput.SetValue("")
		a.filterInput.Focus()
		return a, textinput.Blink
	case key.Matches(m, a.keys.View):
		if a.view == viewGrid {
			a.view = viewList
		} else {
			a.view = viewGrid
		}
	case key.Matches(m, a.keys.Refresh):
		a.list.status = statusLoading
		return a, a.loadEntries()
	case key.Matches(m, a.keys.Close):
		if a.filtering {
			a.filtering = false
			a.filterInput.SetValue("")
			a.cursor = 0
		} else if len(a.selected) > 0 {
			a.selected = map[string]struct{}{}
		}
	}
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.filtering = false
		a.filterInput.Blur()
		a.filterInput.SetValue("")
		a.cursor = 0
		return a, nil
	case tea.KeyEnter:
		// keep the filter applied, return key handling to the views
		a.filterInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(m)
	a.cursor = 0
	return a, cmd
}

func (a *App) handleMenuKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Close):
		a.closeMenu()
		return a, nil
	case key.Matches(m, a.keys.Up):
		a.menu.moveCursor(-1)
		return a, nil
	case key.Matches(m, a.keys.Down):
		a.menu.moveCursor(1)
		return a, nil
	case key.Matches(m, a.keys.Open):
		return a.invokeMenuItem(a.menu.selectedItem())
	}
	return a, nil
}

// invokeMenuItem runs an enabled item's intent and closes the menu. Disabled
// items do nothing and leave the menu open.
func (a *App) invokeMenuItem(it menuItem) (tea.Model, tea.Cmd) {
	if it.separator || it.disabled || it.intent == IntentNone {
		return a, nil
	}
	target := a.menu.targetID
	a.closeMenu()
	return a.dispatchIntent(intentMsg{intent: it.intent, targetID: target})
}

func (a *App) handleMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Action != tea.MouseActionPress {
		return a, nil
	}

	if a.menu != nil {
		if !a.menu.contains(m.X, m.Y) {
			a.closeMenu()
			return a, nil
		}
		if m.Button == tea.MouseButtonLeft {
			if idx, ok := a.menu.itemAt(m.X, m.Y); ok {
				a.menu.cursor = idx
				return a.invokeMenuItem(a.menu.items[idx])
			}
		}
		return a, nil
	}

	// modals own the pointer until dismissed
	if a.modal != modalNone {
		return a, nil
	}

	switch m.Button {
	case tea.MouseButtonRight:
		target := ""
		if id, _, ok := a.entityAt(m.X, m.Y); ok {
			target = id
		}
		return a.dispatchIntent(intentMsg{intent: IntentOpenMenu, targetID: target, x: m.X, y: m.Y})

	case tea.MouseButtonLeft:
		id, idx, ok := a.entityAt(m.X, m.Y)
		if !ok {
			return a, nil
		}
		now := time.Now()
		if idx == a.lastClickIdx && now.Sub(a.lastClickAt) < doubleClickWindow {
			a.lastClickIdx = -1
			return a.dispatchIntent(intentMsg{intent: IntentOpen, targetID: id})
		}
		a.lastClickIdx = idx
		a.lastClickAt = now
		a.cursor = idx
		return a.dispatchIntent(intentMsg{intent: IntentToggleSelect, targetID: id})
	}
	return a, nil
}

// dispatchIntent is the single place view intents become state changes.
func (a *App) dispatchIntent(m intentMsg) (tea.Model, tea.Cmd) {
	switch m.intent {
	case IntentToggleSelect:
		if _, ok := a.selected[m.targetID]; ok {
			delete(a.selected, m.targetID)
		} else {
			a.selected[m.targetID] = struct{}{}
		}

	case IntentOpen:
		e, ok := a.index[m.targetID]
		if !ok {
			return a, nil
		}
		if e.Kind == repository.KindFolder {
			return a.navigateInto(e)
		}
		a.detailsID = e.ID
		a.modal = modalDetails

	case IntentOpenMenu:
		a.menu = newContextMenu(m.x, m.y, m.targetID, a.index, a.width, a.height)

	case IntentEdit:
		e, ok := a.index[m.targetID]
		if !ok {
			return a, nil
		}
		a.editingID = e.ID
		a.modal = modalEditName
		a.input.SetValue(e.Name)
		a.input.Focus()
		return a, textinput.Blink

	case IntentDetails:
		if _, ok := a.index[m.targetID]; ok {
			a.detailsID = m.targetID
			a.modal = modalDetails
		}

	case IntentCopy, IntentCut, IntentRename, IntentDelete, IntentPaste:
		// Deliberately unimplemented: surface a diagnostic, never crash.
		a.setStatus(m.intent.String() + " is not implemented yet")
		a.log.Warn("menu action not implemented",
			zap.String("action", m.intent.String()),
			zap.String("target", m.targetID))

	case IntentNewHabit:
		a.modal = modalNewHabit
		a.input.SetValue("")
		a.input.Placeholder = "habit name"
		a.input.Focus()
		return a, textinput.Blink

	case IntentNewFolder:
		a.modal = modalNewFolder
		a.input.SetValue("")
		a.input.Placeholder = "folder name"
		a.input.Focus()
		return a, textinput.Blink

	case IntentMarkDone:
		e, ok := a.index[m.targetID]
		if !ok || e.Kind != repository.KindFile {
			a.setStatus("select a habit to mark done")
			return a, nil
		}
		return a, a.markDoneCmd(e.ID)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalDetails {
		switch m.String() {
		case "esc", "enter", "q":
			a.modal = modalNone
			a.detailsID = ""
		}
		return a, nil
	}

	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		a.input.Blur()
		a.editingID = ""
		return a, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(a.input.Value())
		if text == "" {
			a.setStatus("enter a name")
			return a, nil
		}
		mode := a.modal
		a.modal = modalNone
		a.input.Blur()
		switch mode {
		case modalNewHabit:
			return a, a.createEntryCmd(repository.KindFile, text)
		case modalNewFolder:
			return a, a.createEntryCmd(repository.KindFolder, text)
		case modalEditName:
			id := a.editingID
			a.editingID = ""
			return a, a.renameEntryCmd(id, text)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

// ---------------------------------------------------------------------------
// Navigation and geometry
// ---------------------------------------------------------------------------

func (a *App) navigateInto(e repository.Entry) (tea.Model, tea.Cmd) {
	id := e.ID
	a.folderID = &id
	a.crumbs = append(a.crumbs, crumb{id: e.ID, name: e.Name})
	a.resetFolderState()
	return a, a.loadEntries()
}

func (a *App) navigateUp() (tea.Model, tea.Cmd) {
	if len(a.crumbs) == 0 {
		return a, nil
	}
	a.crumbs = a.crumbs[:len(a.crumbs)-1]
	if len(a.crumbs) == 0 {
		a.folderID = nil
	} else {
		id := a.crumbs[len(a.crumbs)-1].id
		a.folderID = &id
	}
	a.resetFolderState()
	return a, a.loadEntries()
}

func (a *App) resetFolderState() {
	a.cursor = 0
	a.selected = map[string]struct{}{}
	a.closeMenu()
	a.filtering = false
	a.filterInput.SetValue("")
	a.list = listViewState{status: statusLoading}
}

func (a *App) closeMenu() {
	a.menu = nil
}

// visible returns the entries the body currently shows, filter applied.
func (a *App) visible() []repository.Entry {
	if a.filtering && a.filterInput.Value() != "" {
		return search.Filter(a.entries, a.filterInput.Value())
	}
	return a.entries
}

func (a *App) moveCursor(delta int) {
	n := len(a.visible())
	if n == 0 {
		return
	}
	c := a.cursor + delta
	if c < 0 || c >= n {
		return
	}
	a.cursor = c
}

func (a *App) cursorStride() int {
	if a.view == viewGrid {
		return gridColumns(a.width)
	}
	return 1
}

// entityAt maps screen coordinates to the entity under the pointer.
func (a *App) entityAt(x, y int) (string, int, bool) {
	vis := a.visible()
	by := y - bodyTop
	if by < 0 {
		return "", 0, false
	}
	var idx int
	var ok bool
	if a.view == viewGrid {
		idx, ok = cellIndexAt(x, by, a.width, len(vis))
	} else {
		idx = by
		ok = idx < len(vis)
	}
	if !ok {
		return "", 0, false
	}
	return vis[idx].ID, idx, true
}

// cursorAnchor picks menu coordinates for keyboard-driven opens: just under
// the focused cell, or the body origin when the folder is empty.
func (a *App) cursorAnchor() (int, int) {
	if len(a.visible()) == 0 || a.view == viewList {
		return 2, bodyTop + a.cursor + 1
	}
	cols := gridColumns(a.width)
	col := a.cursor % cols
	row := a.cursor / cols
	return col*cellWidth + 2, bodyTop + row*cellHeight + 1
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(err error) {
	if err == nil {
		a.status = ""
		a.statusErr = false
		return
	}
	a.status = err.Error()
	a.statusErr = true
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type entriesMsg []repository.Entry

type statusMsg string

type errMsg struct{ error }
