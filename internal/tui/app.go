// Package tui implements the interactive terminal client. Views are
// pure renderers fed snapshots from the controllers; all mutations go
// through the controllers, which publish on the bus, and the app
// redraws on bus events.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/bus"
	"github.com/coachmeplay/cmp/internal/cart"
	"github.com/coachmeplay/cmp/internal/chat"
	"github.com/coachmeplay/cmp/internal/feedback"
	"github.com/coachmeplay/cmp/internal/notify"
	"github.com/coachmeplay/cmp/internal/profile"
	"github.com/coachmeplay/cmp/internal/tui/keys"
	"github.com/coachmeplay/cmp/internal/tui/model"
	"github.com/coachmeplay/cmp/internal/tui/views"
)

// refreshInterval drives the coarse background refresh of the
// conversation list and unread badge. The open thread has its own
// faster poll inside the chat controller.
const refreshInterval = 15 * time.Second

// Params carries everything the app shell needs.
type Params struct {
	Client    *api.Client
	Chat      *chat.Controller
	Notify    *notify.Center
	Cart      *cart.Cart
	Feedback  *feedback.Service
	Bus       *bus.Bus
	Logger    *zap.Logger
	Profile   string
	CredsPath string
	UserType  string
	FullName  string
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	registry *keys.Registry
	flash    model.Flash

	client   *api.Client
	chat     *chat.Controller
	notify   *notify.Center
	cart     *cart.Cart
	feedback *feedback.Service
	bus      *bus.Bus
	logger   *zap.Logger

	profileName string
	credsPath   string
	userType    string
	fullName    string

	statusBar *views.StatusBar
	convList  *views.ConversationList
	thread    *views.MessageThread
	composer  *views.Composer
	notifPane *views.NotificationPanel
	cartView  *views.CartView
	directory *views.Directory
	loginForm *views.LoginForm
	fbDetail  *views.FeedbackDetail

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(p Params) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:         tview.NewApplication(),
		pages:       tview.NewPages(),
		registry:    keys.NewRegistry(),
		client:      p.Client,
		chat:        p.Chat,
		notify:      p.Notify,
		cart:        p.Cart,
		feedback:    p.Feedback,
		bus:         p.Bus,
		logger:      p.Logger.Named("tui"),
		profileName: p.Profile,
		credsPath:   p.CredsPath,
		userType:    p.UserType,
		fullName:    p.FullName,
		statusBar:   views.NewStatusBar(),
		convList:    views.NewConversationList(),
		thread:      views.NewMessageThread(),
		composer:    views.NewComposer(),
		notifPane:   views.NewNotificationPanel(),
		cartView:    views.NewCartView(),
		directory:   views.NewDirectory(),
		loginForm:   views.NewLoginForm(),
		fbDetail:    views.NewFeedbackDetail(),
		ctx:         ctx,
		cancel:      cancel,
	}

	a.statusBar.SetProfile(p.Profile)
	a.statusBar.SetUser(p.FullName)
	a.directory.SetRole(p.UserType)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "q:quit", Visible: true,
		Handler: func() { a.app.Stop() },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: 'n', Key: tcell.KeyRune,
		Description: "n:notifications", Visible: true,
		Handler: func() { a.toggleNotifications() },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: 'c', Key: tcell.KeyRune,
		Description: "c:cart", Visible: true,
		Handler: func() { a.showCart() },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: 'd', Key: tcell.KeyRune,
		Description: "d:directory", Visible: true,
		Handler: func() { a.showDirectory() },
	})

	a.registry.AddPage("notifications", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "r:mark read", Visible: true,
		Handler: func() { a.markSelectedRead() },
	})
	a.registry.AddPage("notifications", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "a:mark all read", Visible: true,
		Handler: func() { a.markAllRead() },
	})
	a.registry.AddPage("cart", &keys.Action{
		Rune: 'x', Key: tcell.KeyRune,
		Description: "x:remove", Visible: true,
		Handler: func() { a.removeSelectedCartItem() },
	})
}

func (a *App) setupCallbacks() {
	a.convList.SetSelectedFunc(func(row, col int) {
		peer := a.convList.SelectedPeer()
		if peer != 0 {
			a.openChat(peer, a.convList.SelectedName())
		}
	})

	a.directory.SetSelectedFunc(func(row, col int) {
		if u := a.directory.Selected(); u != nil {
			a.openChat(u.UserID, u.FullName)
		}
	})

	a.notifPane.SetSelectedFunc(func(row, col int) {
		n := a.notifPane.Selected()
		if n == nil || n.RelatedID == 0 || !strings.Contains(n.Type, "feedback") {
			return
		}
		a.openFeedback(n.RelatedID)
	})

	a.composer.SetOnSend(func(text string) {
		go func() {
			if err := a.chat.Send(a.ctx, text); err != nil {
				a.flash.Set("Send failed: "+err.Error(), 5*time.Second)
				a.app.QueueUpdateDraw(func() {
					a.statusBar.SetFlash(a.flash.Get())
				})
			}
		}()
	})

	a.loginForm.SetOnLogin(func(email, password string) {
		go a.login(email, password)
	})
}

func (a *App) setupLayout() {
	chatFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.thread, 0, 1, false).
		AddItem(a.composer, 1, 0, false)

	a.pages.AddPage("conversations", a.convList, true, true)
	a.pages.AddPage("chat", chatFlex, true, false)
	a.pages.AddPage("notifications", a.notifPane, true, false)
	a.pages.AddPage("cart", a.cartView, true, false)
	a.pages.AddPage("directory", a.directory, true, false)
	a.pages.AddPage("login", a.loginForm, true, false)
	a.pages.AddPage("feedback", a.fbDetail, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := a.pages.GetFrontPage()

		if currentPage == "login" {
			return event
		}

		if event.Key() == tcell.KeyEscape {
			switch currentPage {
			case "chat":
				a.chat.Close()
				a.switchTo("conversations", a.convList)
				return nil
			case "notifications", "cart", "directory", "feedback":
				a.notify.ForceClose()
				a.switchTo("conversations", a.convList)
				return nil
			}
		}

		// Let text input widgets handle all keys normally.
		focused := a.app.GetFocus()
		if _, ok := focused.(*tview.InputField); ok {
			return event
		}

		// 'i' focuses the composer (only when not already in an input field).
		if currentPage == "chat" && event.Key() == tcell.KeyRune && event.Rune() == 'i' {
			a.app.SetFocus(a.composer.InputField)
			return nil
		}

		if a.registry.HandleEvent(currentPage, event) {
			return nil
		}

		return event
	})
}

// switchTo changes the front page. Any navigation away from the
// notification panel closes it, mirroring the outside-click rule.
func (a *App) switchTo(page string, focus tview.Primitive) {
	if page != "notifications" {
		a.notify.ForceClose()
	}
	a.pages.SwitchToPage(page)
	a.app.SetFocus(focus)
	a.statusBar.SetHints(joinHints(a.registry.Hints(page)))
}

func joinHints(hints []string) string {
	out := ""
	for i, h := range hints {
		if i > 0 {
			out += "  "
		}
		out += h
	}
	return out
}

func (a *App) openChat(peerID int64, name string) {
	a.chat.Open(a.ctx, peerID)
	a.thread.SetPeerName(name)
	a.thread.Update(nil, a.client.UserID())
	a.switchTo("chat", a.thread)
}

func (a *App) toggleNotifications() {
	currentPage, _ := a.pages.GetFrontPage()
	if currentPage == "notifications" {
		a.notify.ForceClose()
		a.switchTo("conversations", a.convList)
		return
	}
	go func() {
		a.notify.Toggle(a.ctx)
		a.app.QueueUpdateDraw(func() {
			a.notifPane.Update(a.notify.Items())
			a.pages.SwitchToPage("notifications")
			a.app.SetFocus(a.notifPane)
			a.statusBar.SetHints(joinHints(a.registry.Hints("notifications")))
		})
	}()
}

func (a *App) showCart() {
	items, err := a.cart.Items()
	if err != nil {
		a.flash.Set("Cart load failed: "+err.Error(), 5*time.Second)
		a.statusBar.SetFlash(a.flash.Get())
		return
	}
	a.cartView.Update(items)
	a.switchTo("cart", a.cartView)
}

func (a *App) showDirectory() {
	go func() {
		users, err := a.client.Directory(a.ctx, a.userType)
		if err != nil {
			a.flash.Set("Directory load failed: "+err.Error(), 5*time.Second)
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.directory.Update(users)
			a.switchTo("directory", a.directory)
		})
	}()
}

func (a *App) openFeedback(feedbackID int64) {
	go func() {
		fb, err := a.feedback.Detail(a.ctx, feedbackID)
		if err != nil {
			a.flash.Set("Feedback load failed: "+err.Error(), 5*time.Second)
			a.app.QueueUpdateDraw(func() {
				a.statusBar.SetFlash(a.flash.Get())
			})
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.fbDetail.Update(fb)
			a.switchTo("feedback", a.fbDetail)
		})
	}()
}

func (a *App) markSelectedRead() {
	n := a.notifPane.Selected()
	if n == nil || n.IsRead {
		return
	}
	id := n.NotificationID
	go func() {
		if err := a.notify.MarkRead(a.ctx, id); err != nil {
			a.flash.Set("Mark read failed: "+err.Error(), 5*time.Second)
		}
		a.app.QueueUpdateDraw(func() {
			a.notifPane.Update(a.notify.Items())
			a.statusBar.SetFlash(a.flash.Get())
		})
	}()
}

func (a *App) markAllRead() {
	go func() {
		if err := a.notify.MarkAllRead(a.ctx); err != nil {
			a.flash.Set("Mark all read failed: "+err.Error(), 5*time.Second)
		}
		a.app.QueueUpdateDraw(func() {
			a.notifPane.Update(a.notify.Items())
			a.statusBar.SetFlash(a.flash.Get())
		})
	}()
}

func (a *App) removeSelectedCartItem() {
	id := a.cartView.SelectedID()
	if id == "" {
		return
	}
	if err := a.cart.Remove(id); err != nil {
		a.flash.Set("Remove failed: "+err.Error(), 5*time.Second)
		a.statusBar.SetFlash(a.flash.Get())
		return
	}
	items, err := a.cart.Items()
	if err != nil {
		return
	}
	a.cartView.Update(items)
}

func (a *App) login(email, password string) {
	res, err := a.client.Login(a.ctx, email, password)
	if err != nil {
		a.flash.Set("Login failed: "+err.Error(), 5*time.Second)
		a.app.QueueUpdateDraw(func() {
			a.loginForm.Reset()
			a.statusBar.SetFlash(a.flash.Get())
		})
		return
	}

	a.client.SetCredentials(res.Token, res.UserID)
	creds := &profile.Credentials{
		Token:    res.Token,
		UserID:   res.UserID,
		UserType: res.UserType,
		FullName: res.FullName,
	}
	if err := profile.SaveCredentials(a.credsPath, creds); err != nil {
		a.logger.Warn("failed to persist credentials", zap.Error(err))
	}
	a.userType = res.UserType
	a.fullName = res.FullName

	a.chat.RefreshConversations(a.ctx)
	a.notify.RefreshUnreadCount(a.ctx)
	a.broadcastCartCount()
	a.startRefreshLoop()

	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetUser(res.FullName)
		a.directory.SetRole(res.UserType)
		a.convList.Update(a.chat.Conversations())
		a.switchTo("conversations", a.convList)
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	go a.watchBus()

	if !a.client.LoggedIn() {
		a.pages.SwitchToPage("login")
		a.app.SetFocus(a.loginForm)
	} else {
		go func() {
			a.chat.RefreshConversations(a.ctx)
			a.notify.RefreshUnreadCount(a.ctx)
			a.broadcastCartCount()
			a.startRefreshLoop()
		}()
		a.statusBar.SetHints(joinHints(a.registry.Hints("conversations")))
	}

	return a.app.Run()
}

func (a *App) broadcastCartCount() {
	n, err := a.cart.Count()
	if err != nil {
		a.logger.Warn("failed to count cart items", zap.Error(err))
		return
	}
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetCartCount(n)
	})
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(refreshInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !a.client.LoggedIn() {
					continue
				}
				a.chat.RefreshConversations(a.ctx)
				a.notify.RefreshUnreadCount(a.ctx)
				a.app.QueueUpdateDraw(func() {
					a.statusBar.SetFlash(a.flash.Get())
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// watchBus redraws views when controllers publish state changes.
func (a *App) watchBus() {
	ch, unsub := a.bus.Subscribe("", 64)
	defer unsub()

	for {
		select {
		case evt := <-ch:
			a.render(evt)
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) render(evt bus.Event) {
	a.app.QueueUpdateDraw(func() {
		switch evt.Kind {
		case bus.KindConversationsUpdated:
			if page, _ := a.pages.GetFrontPage(); page == "conversations" {
				a.convList.Update(a.chat.Conversations())
			}
		case bus.KindMessagesUpdated:
			if page, _ := a.pages.GetFrontPage(); page == "chat" {
				a.thread.Update(a.chat.Messages(), a.client.UserID())
			}
		case bus.KindNotifyCount:
			a.statusBar.SetBadge(notify.BadgeText(a.notify.Count()))
		case bus.KindNotifyList:
			if a.notify.Open() {
				a.notifPane.Update(a.notify.Items())
			}
		case bus.KindCartCount:
			if n, ok := evt.Payload.(int); ok {
				a.statusBar.SetCartCount(n)
			}
		}
	})
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
