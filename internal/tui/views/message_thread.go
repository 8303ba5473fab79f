package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/coachmeplay/cmp/internal/api"
)

// MessageThread displays the open chat thread.
type MessageThread struct {
	*tview.TextView
	peerName string
}

// NewMessageThread creates a new thread view.
func NewMessageThread() *MessageThread {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Messages ")

	return &MessageThread{TextView: tv}
}

// SetPeerName updates the title with the peer's name.
func (mt *MessageThread) SetPeerName(name string) {
	mt.peerName = name
	mt.SetTitle(fmt.Sprintf(" %s ", name))
}

// Update refreshes the view with a new message snapshot. Messages
// arrive oldest first and are rendered in that order.
func (mt *MessageThread) Update(msgs []api.Message, selfID int64) {
	mt.Clear()

	for _, m := range msgs {
		sender := m.SenderName
		if m.SenderID == selfID {
			sender = "You"
		}
		if sender == "" {
			sender = fmt.Sprintf("user %d", m.SenderID)
		}

		ts := formatTime(m.SentAt)
		line := fmt.Sprintf("[::b]%s[-:-:-] [::d]%s[-:-:-]\n%s\n\n", sender, ts, sanitizeForTerminal(m.Text))
		_, _ = fmt.Fprint(mt, line)
	}

	mt.ScrollToEnd()
}
