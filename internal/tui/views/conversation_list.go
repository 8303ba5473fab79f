package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/coachmeplay/cmp/internal/api"
)

// ConversationList is the main conversation table.
type ConversationList struct {
	*tview.Table
	convs      []api.Conversation
	selectedFn func() (int, int)
}

// NewConversationList creates a new conversation table.
func NewConversationList() *ConversationList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Conversations ")

	cl := &ConversationList{Table: table}
	cl.selectedFn = table.GetSelection
	return cl
}

// Update refreshes the table with a new conversation snapshot.
func (cl *ConversationList) Update(convs []api.Conversation) {
	cl.convs = convs
	cl.Clear()

	cl.SetCell(0, 0, tview.NewTableCell(" Name").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	cl.SetCell(0, 1, tview.NewTableCell(" Last Message").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	cl.SetCell(0, 2, tview.NewTableCell(" Time").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))

	for i, conv := range convs {
		row := i + 1
		name := conv.FullName
		if name == "" {
			name = fmt.Sprintf("user %d", conv.OtherUserID)
		}
		if conv.UnreadCount > 0 {
			name = fmt.Sprintf("* %s (%d)", name, conv.UnreadCount)
		}

		cl.SetCell(row, 0, tview.NewTableCell(" "+sanitizeForTerminal(name)).SetMaxWidth(30).SetExpansion(1))
		cl.SetCell(row, 1, tview.NewTableCell(" "+sanitizeForTerminal(conv.LastMessage)).SetMaxWidth(40).SetExpansion(2))
		cl.SetCell(row, 2, tview.NewTableCell(" "+formatTime(conv.LastMessageTime)).SetMaxWidth(12))
	}
}

// SelectedPeer returns the user id of the selected conversation, or 0.
func (cl *ConversationList) SelectedPeer() int64 {
	row, _ := cl.selectedFn()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(cl.convs) {
		return cl.convs[idx].OtherUserID
	}
	return 0
}

// SelectedName returns the display name of the selected conversation.
func (cl *ConversationList) SelectedName() string {
	row, _ := cl.selectedFn()
	idx := row - 1
	if idx >= 0 && idx < len(cl.convs) {
		return cl.convs[idx].FullName
	}
	return ""
}

// timeLayouts are the timestamp formats the backend is known to emit.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func formatTime(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		now := time.Now()
		if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
			return t.Format("15:04")
		}
		return t.Format("01/02")
	}
	return s
}
