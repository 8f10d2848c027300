package tui

import (
	"fmt"
	"strings"
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	vis := a.visible()
	switch a.view {
	case viewList:
		b.WriteString(renderList(a.listState(), a.index, a.selected, a.cursor, a.width))
	default:
		b.WriteString(renderGrid(vis, a.selected, a.cursor, a.width))
	}

	b.WriteString("\n\n")
	b.WriteString(a.renderFooter())

	out := b.String()
	if a.modal != modalNone {
		out += "\n\n" + a.renderModal()
	}
	if a.menu != nil {
		base := fitCanvas(out, a.width, a.height)
		out = overlayAt(base, a.menu.view(), a.menu.x, a.menu.y, a.width, a.height)
	}
	return out
}

// renderHeader emits exactly bodyTop lines; entityAt depends on that.
func (a *App) renderHeader() string {
	mode := "grid"
	if a.view == viewList {
		mode = "list"
	}
	title := titleStyle.Render(appName) + statusStyle.Render("  ["+mode+"]")
	if a.filtering {
		title += "  /" + a.filterInput.View()
	}

	parts := []string{"~"}
	for _, c := range a.crumbs {
		parts = append(parts, c.name)
	}
	crumbLine := crumbStyle.Render(strings.Join(parts, " / "))

	return title + "\n" + crumbLine + "\n"
}

func (a *App) renderFooter() string {
	var parts []string
	for _, b := range a.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	out := footerStyle.Render(strings.Join(parts, "  "))
	if n := len(a.selected); n > 0 {
		out += statusStyle.Render(fmt.Sprintf("  ·  %d selected", n))
	}
	if a.status != "" {
		line := statusStyle.Render(a.status)
		if a.statusErr {
			line = errorStyle.Render(a.status)
		}
		out += "\n" + line
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalNewHabit:
		return modalStyle.Render(titleStyle.Render("New habit") + "\n" + a.input.View() + "\n[enter] Save  [esc] Cancel")
	case modalNewFolder:
		return modalStyle.Render(titleStyle.Render("New folder") + "\n" + a.input.View() + "\n[enter] Save  [esc] Cancel")
	case modalEditName:
		return modalStyle.Render(titleStyle.Render("Edit habit") + "\n" + a.input.View() + "\n[enter] Save  [esc] Cancel")
	case modalDetails:
		return modalStyle.Render(a.renderDetails())
	default:
		return ""
	}
}

func (a *App) renderDetails() string {
	e, ok := a.index[a.detailsID]
	if !ok {
		return "entry no longer exists"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(e.Name) + "\n")
	kind := "habit"
	if e.Kind == "folder" {
		kind = "folder"
	}
	b.WriteString(fmt.Sprintf("kind      %s\n", kind))
	if e.Priority != nil {
		b.WriteString(fmt.Sprintf("priority  %s\n", *e.Priority))
	}
	if e.Difficulty != nil {
		b.WriteString(fmt.Sprintf("stars     %s\n", starIndicator(difficultyStars(*e.Difficulty))))
	}
	if e.Streak != nil {
		b.WriteString(fmt.Sprintf("streak    %d days\n", *e.Streak))
	}
	if e.Category != nil && *e.Category != "" {
		b.WriteString(fmt.Sprintf("category  %s\n", *e.Category))
	}
	if len(e.Tags) > 0 {
		names := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			names[i] = t.Name
		}
		b.WriteString(fmt.Sprintf("tags      %s\n", strings.Join(names, ", ")))
	}
	if e.CompletionRate != nil {
		b.WriteString(fmt.Sprintf("rate      %s %.0f%%\n", progressBar(*e.CompletionRate, 12), clampRate(*e.CompletionRate)))
	}
	b.WriteString(fmt.Sprintf("modified  %s\n", e.ModifiedAt.Format(a.dateFormat())))
	b.WriteString("\n[esc] Close")
	return b.String()
}

func (a *App) dateFormat() string {
	if a.cfg.UI.DateFormat != "" {
		return a.cfg.UI.DateFormat
	}
	return "02/01"
}

// listState re-derives the store view the list renders from, narrowing the
// ordered ids to the active filter without touching the stored state.
func (a *App) listState() listViewState {
	if !a.filtering || a.filterInput.Value() == "" {
		return a.list
	}
	vis := a.visible()
	ids := make([]string, len(vis))
	for i, e := range vis {
		ids[i] = e.ID
	}
	return listViewState{status: a.list.status, err: a.list.err, orderedIDs: ids}
}
