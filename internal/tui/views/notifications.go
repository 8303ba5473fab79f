package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/coachmeplay/cmp/internal/api"
)

// NotificationPanel lists notifications, unread ones highlighted.
type NotificationPanel struct {
	*tview.Table
	items      []api.Notification
	selectedFn func() (int, int)
}

// NewNotificationPanel creates a new notification panel.
func NewNotificationPanel() *NotificationPanel {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Notifications ")

	np := &NotificationPanel{Table: table}
	np.selectedFn = table.GetSelection
	return np
}

// Update refreshes the panel with a new notification snapshot.
func (np *NotificationPanel) Update(items []api.Notification) {
	np.items = items
	np.Clear()

	if len(items) == 0 {
		np.SetCell(0, 0, tview.NewTableCell(" No notifications").SetSelectable(false))
		return
	}

	for i, n := range items {
		marker := "  "
		if !n.IsRead {
			marker = " [red]*[-]"
		}
		title := n.Title
		if title == "" {
			title = n.Type
		}

		np.SetCell(i, 0, tview.NewTableCell(marker).SetMaxWidth(2))
		np.SetCell(i, 1, tview.NewTableCell(" "+sanitizeForTerminal(title)).SetMaxWidth(25).SetExpansion(1))
		np.SetCell(i, 2, tview.NewTableCell(" "+sanitizeForTerminal(n.Message)).SetMaxWidth(45).SetExpansion(2))
		np.SetCell(i, 3, tview.NewTableCell(" "+formatTime(n.CreatedAt)).SetMaxWidth(12))
	}
}

// Selected returns the notification under the cursor, or nil.
func (np *NotificationPanel) Selected() *api.Notification {
	row, _ := np.selectedFn()
	if row >= 0 && row < len(np.items) {
		return &np.items[row]
	}
	return nil
}

// SelectedSummary returns a one-line description of the selected
// notification, for flash messages.
func (np *NotificationPanel) SelectedSummary() string {
	n := np.Selected()
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", n.Type, n.Title)
}
