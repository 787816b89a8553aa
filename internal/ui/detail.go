package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carlosbandelli/superlist/internal/api"
	"github.com/carlosbandelli/superlist/internal/cache"
)

// renderDetail renders one opened list with its products.
func (m Model) renderDetail() string {
	switch m.formMode {
	case formNewProduct:
		return m.renderForm("New product")
	case formEditProduct:
		return m.renderForm("Edit product")
	}

	snap := m.detailSnap
	var b strings.Builder

	switch snap.Phase {
	case cache.PhaseEmpty, cache.PhaseLoading:
		if !snap.HasDetail {
			b.WriteString(m.styles.Muted.Render("Loading list..."))
			return b.String()
		}
	case cache.PhaseError:
		b.WriteString(m.styles.Danger.Render("Could not refresh list"))
		if snap.Err != nil {
			b.WriteString(m.styles.Muted.Render(" — " + snap.Err.Error()))
		}
		b.WriteString("\n\n")
		if !snap.HasDetail {
			return b.String()
		}
	}

	detail := snap.Detail
	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("Total: %.2f", detail.TotalValue)))
	b.WriteString("\n\n")

	if len(detail.Products) == 0 {
		b.WriteString(m.styles.Muted.Render("No products yet. Press a to add one."))
		return b.String()
	}

	header := fmt.Sprintf("  %-24s %10s %6s %10s", "PRODUCT", "PRICE", "QTY", "SUBTOTAL")
	b.WriteString(m.styles.Muted.Render(header))
	b.WriteString("\n")

	for i, p := range detail.Products {
		row := fmt.Sprintf("  %s %10.2f %6d %10.2f",
			padRight(truncate(p.Name, 24), 24), p.Price, p.Quantity, p.Price*float64(p.Quantity))
		if i == m.productRow {
			row = m.styles.Selected.Render("›" + row[1:])
		} else {
			row = m.styles.Text.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// handleDetailKey processes keyboard input on the list-detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.detailSnap.Detail.Products)

	switch msg.String() {
	case "j", "down":
		if m.productRow < count-1 {
			m.productRow++
		}
	case "k", "up":
		if m.productRow > 0 {
			m.productRow--
		}
	case "g", "home":
		m.productRow = 0
	case "G", "end":
		m.productRow = max(0, count-1)

	case "a":
		return m.openForm(formNewProduct, []formField{
			{label: "Name", placeholder: "Rice"},
			{label: "Price", placeholder: "0,00"},
			{label: "Quantity", placeholder: "1"},
		}), nil

	case "e":
		if p, ok := m.selectedProduct(); ok {
			if !m.detail.BeginEdit(p.ID) {
				return m, nil
			}
			buf, _ := m.detail.EditBufferFor(p.ID)
			next := m.openForm(formEditProduct, []formField{
				{label: "Name", value: buf.Name},
				{label: "Price", value: buf.Price},
				{label: "Quantity", value: buf.Quantity},
			})
			next.editingID = p.ID
			return next, nil
		}

	case "x":
		if p, ok := m.selectedProduct(); ok {
			id := p.ID
			m.setStatus("deleting...", statusInfo)
			return m, func() tea.Msg {
				return mutationMsg{label: "delete product", err: m.detail.RemoveProduct(m.ctx, id)}
			}
		}
	}

	return m, nil
}

func (m Model) selectedProduct() (p api.Product, ok bool) {
	products := m.detailSnap.Detail.Products
	if m.productRow < 0 || m.productRow >= len(products) {
		return p, false
	}
	return products[m.productRow], true
}

// submitNewProduct reads the new-product form and creates the product; the
// detail cache reconciles and raises the collection refresh flag itself.
func (m Model) submitNewProduct() tea.Cmd {
	fields := api.ProductFields{
		Name:     strings.TrimSpace(m.inputs[0].Value()),
		Price:    cache.ParsePrice(m.inputs[1].Value()),
		Quantity: cache.ParseQuantity(m.inputs[2].Value()),
	}
	return func() tea.Msg {
		return mutationMsg{label: "add product", err: m.detail.AddProduct(m.ctx, fields)}
	}
}

// submitEditProduct pushes the form values into the product's edit buffer
// and saves it.
func (m Model) submitEditProduct() tea.Cmd {
	id := m.editingID
	m.detail.SetEditBuffer(id, cache.EditBuffer{
		Name:     m.inputs[0].Value(),
		Price:    m.inputs[1].Value(),
		Quantity: m.inputs[2].Value(),
	})
	return func() tea.Msg {
		return mutationMsg{label: "save product", err: m.detail.SaveEdit(m.ctx, id)}
	}
}
