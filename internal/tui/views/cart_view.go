package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/coachmeplay/cmp/internal/store"
)

// CartView lists the locally persisted cart.
type CartView struct {
	*tview.Table
	items      []store.CartItem
	selectedFn func() (int, int)
}

// NewCartView creates a new cart view.
func NewCartView() *CartView {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Cart ")

	cv := &CartView{Table: table}
	cv.selectedFn = table.GetSelection
	return cv
}

// Update refreshes the view with a new cart snapshot.
func (cv *CartView) Update(items []store.CartItem) {
	cv.items = items
	cv.Clear()

	cv.SetCell(0, 0, tview.NewTableCell(" Item").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	cv.SetCell(0, 1, tview.NewTableCell(" Qty").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	cv.SetCell(0, 2, tview.NewTableCell(" Price").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))

	total := 0.0
	for i, it := range items {
		row := i + 1
		cv.SetCell(row, 0, tview.NewTableCell(" "+sanitizeForTerminal(it.Name)).SetMaxWidth(40).SetExpansion(2))
		cv.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf(" %d", it.Quantity)).SetMaxWidth(5))
		cv.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf(" %.2f", it.Price)).SetMaxWidth(10))
		total += it.Price * float64(it.Quantity)
	}

	if len(items) > 0 {
		row := len(items) + 1
		cv.SetCell(row, 0, tview.NewTableCell(" [::b]Total[-:-:-]").SetSelectable(false))
		cv.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf(" [::b]%.2f[-:-:-]", total)).SetSelectable(false))
	}
}

// SelectedID returns the id of the cart line under the cursor, or "".
func (cv *CartView) SelectedID() string {
	row, _ := cv.selectedFn()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(cv.items) {
		return cv.items[idx].ID
	}
	return ""
}
