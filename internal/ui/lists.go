package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carlosbandelli/superlist/internal/api"
	"github.com/carlosbandelli/superlist/internal/cache"
)

// renderLists renders the list-overview screen.
func (m Model) renderLists() string {
	switch m.formMode {
	case formNewList:
		return m.renderForm("New list")
	case formEditList:
		return m.renderForm("Edit list")
	}

	snap := m.collectionSnap
	var b strings.Builder

	switch snap.Phase {
	case cache.PhaseEmpty, cache.PhaseLoading:
		if len(snap.Lists) == 0 {
			b.WriteString(m.styles.Muted.Render("Loading lists..."))
			return b.String()
		}
	case cache.PhaseError:
		b.WriteString(m.styles.Danger.Render("Could not refresh lists"))
		if snap.Err != nil {
			b.WriteString(m.styles.Muted.Render(" — " + snap.Err.Error()))
		}
		b.WriteString("\n\n")
	}

	if len(snap.Lists) == 0 {
		b.WriteString(m.styles.Muted.Render("No lists yet. Press n to create one."))
		return b.String()
	}

	header := fmt.Sprintf("  %-24s %10s %9s", "NAME", "TOTAL", "ITEMS")
	b.WriteString(m.styles.Muted.Render(header))
	b.WriteString("\n")

	for i, list := range snap.Lists {
		name := list.DisplayName()
		if name == "" {
			name = "(unnamed)"
		}
		row := fmt.Sprintf("  %s %10.2f %9d", padRight(truncate(name, 24), 24), list.TotalValue, list.ProductCount())
		if i == m.listRow {
			row = m.styles.Selected.Render("›" + row[1:])
		} else {
			row = m.styles.Text.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// handleListsKey processes keyboard input on the list-overview screen.
func (m Model) handleListsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.collectionSnap.Lists)

	switch msg.String() {
	case "j", "down":
		if m.listRow < count-1 {
			m.listRow++
		}
	case "k", "up":
		if m.listRow > 0 {
			m.listRow--
		}
	case "g", "home":
		m.listRow = 0
	case "G", "end":
		m.listRow = max(0, count-1)

	case "enter":
		if list, ok := m.selectedList(); ok {
			m.currentView = ViewDetail
			m.productRow = 0
			m.status = ""
			m.detail.SetList(list.ID)
			m.detailSnap = m.detail.Snapshot()
			return m, m.refetchDetailCmd()
		}

	case "n":
		return m.openForm(formNewList, []formField{
			{label: "Name", placeholder: "Groceries"},
			{label: "Target value", placeholder: "0,00"},
		}), nil

	case "u":
		if list, ok := m.selectedList(); ok {
			next := m.openForm(formEditList, []formField{
				{label: "Name", value: list.DisplayName()},
				{label: "Target value", value: fmt.Sprintf("%.2f", list.TotalValue)},
			})
			next.editingID = list.ID
			return next, nil
		}

	case "x":
		if list, ok := m.selectedList(); ok {
			id := list.ID
			m.setStatus("deleting...", statusInfo)
			return m, func() tea.Msg {
				return mutationMsg{label: "delete list", err: m.collection.ApplyDelete(m.ctx, id)}
			}
		}
	}

	return m, nil
}

func (m Model) selectedList() (list api.ListSummary, ok bool) {
	if m.listRow < 0 || m.listRow >= len(m.collectionSnap.Lists) {
		return list, false
	}
	return m.collectionSnap.Lists[m.listRow], true
}

// submitNewList reads the new-list form and creates the list through the
// mutate-then-reconcile primitive so the overview refetches either way.
func (m Model) submitNewList() tea.Cmd {
	name := strings.TrimSpace(m.inputs[0].Value())
	target := cache.ParsePrice(m.inputs[1].Value())
	ownerID := m.ownerID()

	return func() tea.Msg {
		err := m.collection.Mutate(m.ctx, func(ctx context.Context) error {
			_, err := m.client.CreateList(ctx, name, target, ownerID)
			return err
		})
		return mutationMsg{label: "create list", err: err}
	}
}

// submitEditList pushes the edited fields, merges the confirmed summary
// into the cache, and lets the follow-up refetch reconcile the rest.
func (m Model) submitEditList() tea.Cmd {
	id := m.editingID
	fields := api.ListFields{
		Name:       strings.TrimSpace(m.inputs[0].Value()),
		TotalValue: cache.ParsePrice(m.inputs[1].Value()),
	}

	return func() tea.Msg {
		err := m.collection.Mutate(m.ctx, func(ctx context.Context) error {
			updated, err := m.client.UpdateList(ctx, id, fields)
			if err != nil {
				return err
			}
			m.collection.ApplyUpdate(*updated)
			return nil
		})
		return mutationMsg{label: "update list", err: err}
	}
}

// ownerID is known only once some server payload told us; zero omits the
// field and lets the server derive the owner from the token.
func (m Model) ownerID() int64 {
	if len(m.collectionSnap.Lists) > 0 {
		return m.collectionSnap.Lists[0].OwnerID
	}
	return 0
}

// truncate shortens a string to limit runes, adding an ellipsis if needed.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
