package views

import (
	"github.com/rivo/tview"
)

// LoginForm collects credentials when no token is stored.
type LoginForm struct {
	*tview.Form
	onLogin func(email, password string)
}

// NewLoginForm creates a new login form.
func NewLoginForm() *LoginForm {
	form := tview.NewForm()
	form.SetBorder(true).SetTitle(" Log in ")

	lf := &LoginForm{Form: form}

	form.AddInputField("Email", "", 40, nil, nil)
	form.AddPasswordField("Password", "", 40, '*', nil)
	form.AddButton("Log in", func() {
		if lf.onLogin == nil {
			return
		}
		email := form.GetFormItemByLabel("Email").(*tview.InputField).GetText()
		password := form.GetFormItemByLabel("Password").(*tview.InputField).GetText()
		lf.onLogin(email, password)
	})

	return lf
}

// SetOnLogin sets the callback when the form is submitted.
func (lf *LoginForm) SetOnLogin(fn func(email, password string)) {
	lf.onLogin = fn
}

// Reset clears the password field, keeping the email.
func (lf *LoginForm) Reset() {
	lf.GetFormItemByLabel("Password").(*tview.InputField).SetText("")
}
