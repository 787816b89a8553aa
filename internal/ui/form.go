package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField describes one input of an in-screen form.
type formField struct {
	label       string
	placeholder string
	value       string
}

// openForm switches the model into form mode with the given fields.
func (m Model) openForm(mode formMode, fields []formField) Model {
	m.formMode = mode
	m.focusIdx = 0
	m.inputs = make([]textinput.Model, len(fields))
	m.labels = make([]string, len(fields))

	for i, f := range fields {
		input := textinput.New()
		input.Placeholder = f.placeholder
		input.SetValue(f.value)
		input.CharLimit = 64
		input.Width = 32
		if i == 0 {
			input.Focus()
		}
		m.inputs[i] = input
		m.labels[i] = f.label
	}
	m.status = ""
	return m
}

func (m Model) closeForm() Model {
	if m.formMode == formEditProduct {
		m.detail.CancelEdit(m.editingID)
	}
	m.formMode = formNone
	m.inputs = nil
	m.labels = nil
	m.editingID = 0
	return m
}

// handleFormKey processes keyboard input while a form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m.closeForm(), nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focusIdx--
		} else {
			m.focusIdx++
		}
		if m.focusIdx < 0 {
			m.focusIdx = len(m.inputs) - 1
		}
		if m.focusIdx >= len(m.inputs) {
			m.focusIdx = 0
		}
		for i := range m.inputs {
			if i == m.focusIdx {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil

	case "enter":
		var cmd tea.Cmd
		switch m.formMode {
		case formNewList:
			m.setStatus("creating list...", statusInfo)
			cmd = m.submitNewList()
		case formEditList:
			m.setStatus("updating list...", statusInfo)
			cmd = m.submitEditList()
		case formNewProduct:
			m.setStatus("adding product...", statusInfo)
			cmd = m.submitNewProduct()
		case formEditProduct:
			m.setStatus("saving product...", statusInfo)
			cmd = m.submitEditProduct()
		}
		m.formMode = formNone
		m.inputs = nil
		m.labels = nil
		m.editingID = 0
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

// renderForm renders the open form with its field labels.
func (m Model) renderForm(title string) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		label := ""
		if i < len(m.labels) {
			label = m.labels[i]
		}
		b.WriteString(m.styles.Muted.Render("  " + padRight(label, 14)))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	return b.String()
}

// padRight pads a string with spaces to the given width, measured in runes.
func padRight(s string, width int) string {
	count := utf8.RuneCountInString(s)
	if count >= width {
		return s
	}
	return s + strings.Repeat(" ", width-count)
}
