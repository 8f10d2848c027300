package tui

// Intent is a typed command emitted by the view components (grid cells, list
// rows, context-menu items) and consumed in one place by the App. Children
// never mutate shared state directly; they only report what the user meant.
type Intent int

const (
	IntentNone Intent = iota
	IntentToggleSelect
	IntentOpen
	IntentOpenMenu
	IntentEdit
	IntentDetails
	IntentCopy
	IntentCut
	IntentRename
	IntentDelete
	IntentNewHabit
	IntentNewFolder
	IntentPaste
	IntentMarkDone
)

func (i Intent) String() string {
	switch i {
	case IntentToggleSelect:
		return "toggle-select"
	case IntentOpen:
		return "open"
	case IntentOpenMenu:
		return "open-menu"
	case IntentEdit:
		return "edit"
	case IntentDetails:
		return "details"
	case IntentCopy:
		return "copy"
	case IntentCut:
		return "cut"
	case IntentRename:
		return "rename"
	case IntentDelete:
		return "delete"
	case IntentNewHabit:
		return "new-habit"
	case IntentNewFolder:
		return "new-folder"
	case IntentPaste:
		return "paste"
	case IntentMarkDone:
		return "mark-done"
	default:
		return "none"
	}
}

// intentMsg carries an Intent through the update loop. TargetID is empty for
// empty-space intents; X and Y anchor menu opens at the pointer position.
type intentMsg struct {
	intent   Intent
	targetID string
	x, y     int
}
