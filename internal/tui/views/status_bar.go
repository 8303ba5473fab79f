package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar displays the profile, unread badge, cart count, and flash
// messages.
type StatusBar struct {
	*tview.TextView
	profile   string
	user      string
	badge     string
	cartCount int
	flash     string
	hints     string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetUser updates the logged-in user display.
func (sb *StatusBar) SetUser(name string) {
	sb.user = name
	sb.render()
}

// SetBadge updates the unread notification badge. An empty string
// hides the badge entirely.
func (sb *StatusBar) SetBadge(badge string) {
	sb.badge = badge
	sb.render()
}

// SetCartCount updates the cart item count.
func (sb *StatusBar) SetCartCount(n int) {
	sb.cartCount = n
	sb.render()
}

// SetFlash sets a temporary message.
func (sb *StatusBar) SetFlash(msg string) {
	sb.flash = msg
	sb.render()
}

// SetHints sets the keybinding hint line.
func (sb *StatusBar) SetHints(hints string) {
	sb.hints = hints
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	who := sb.profile
	if sb.user != "" {
		who = fmt.Sprintf("%s (%s)", sb.profile, sb.user)
	}

	bell := ""
	if sb.badge != "" {
		bell = fmt.Sprintf(" | [red]!%s[-]", sb.badge)
	}

	cart := ""
	if sb.cartCount > 0 {
		cart = fmt.Sprintf(" | cart:%d", sb.cartCount)
	}

	clock := time.Now().Format("15:04")

	line := fmt.Sprintf(" [::b]%s[-:-:-]%s%s | %s", who, bell, cart, clock)
	if sb.flash != "" {
		line += fmt.Sprintf(" | [yellow]%s[-]", sb.flash)
	}
	if sb.hints != "" {
		line += fmt.Sprintf(" | [::d]%s[-:-:-]", sb.hints)
	}

	_, _ = fmt.Fprint(sb, line)
}
