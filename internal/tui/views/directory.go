package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/coachmeplay/cmp/internal/api"
)

// Directory lists the coaches or athletes the user can message.
type Directory struct {
	*tview.Table
	users      []api.DirectoryUser
	selectedFn func() (int, int)
}

// NewDirectory creates a new directory view.
func NewDirectory() *Directory {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Directory ")

	d := &Directory{Table: table}
	d.selectedFn = table.GetSelection
	return d
}

// SetRole updates the title to reflect whose directory this is.
func (d *Directory) SetRole(userType string) {
	switch userType {
	case "athlete":
		d.SetTitle(" Coaches ")
	case "coach":
		d.SetTitle(" Athletes ")
	default:
		d.SetTitle(" Directory ")
	}
}

// Update refreshes the view with a new directory snapshot.
func (d *Directory) Update(users []api.DirectoryUser) {
	d.users = users
	d.Clear()

	d.SetCell(0, 0, tview.NewTableCell(" Name").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	d.SetCell(0, 1, tview.NewTableCell(" Email").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))

	for i, u := range users {
		row := i + 1
		name := u.FullName
		if name == "" {
			name = fmt.Sprintf("user %d", u.UserID)
		}
		d.SetCell(row, 0, tview.NewTableCell(" "+sanitizeForTerminal(name)).SetMaxWidth(30).SetExpansion(1))
		d.SetCell(row, 1, tview.NewTableCell(" "+u.Email).SetMaxWidth(40).SetExpansion(1))
	}
}

// Selected returns the user under the cursor, or nil.
func (d *Directory) Selected() *api.DirectoryUser {
	row, _ := d.selectedFn()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(d.users) {
		return &d.users[idx]
	}
	return nil
}
