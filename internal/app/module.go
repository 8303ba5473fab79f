// Package app composes the client with fx: providers for the profile
// lock, cart store, API client, and controllers, plus the lifecycle
// hooks that run and tear down the TUI.
package app

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/bus"
	"github.com/coachmeplay/cmp/internal/cart"
	"github.com/coachmeplay/cmp/internal/chat"
	"github.com/coachmeplay/cmp/internal/config"
	"github.com/coachmeplay/cmp/internal/feedback"
	"github.com/coachmeplay/cmp/internal/lock"
	"github.com/coachmeplay/cmp/internal/logging"
	"github.com/coachmeplay/cmp/internal/notify"
	"github.com/coachmeplay/cmp/internal/profile"
	"github.com/coachmeplay/cmp/internal/store"
	"github.com/coachmeplay/cmp/internal/tui"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
}

// Module returns the fx module for the client, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("cmp",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideCredentials,
			provideClient,
			provideCart,
			provideChat,
			provideNotify,
			provideFeedback,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig() *config.Config {
	return config.LoadWithEnv(profile.ConfigPath())
}

func provideLogger(p Params) (*zap.Logger, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	// No console core: stderr belongs to the terminal UI.
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName, false)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.CartDBPath(p.ProfileName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("cart store initialized", zap.String("path", dbPath))
	return db, nil
}

// provideCredentials loads stored credentials; a missing or empty file
// is not an error, it just means the login form is shown first.
func provideCredentials(p Params, logger *zap.Logger) *profile.Credentials {
	creds, err := profile.LoadCredentials(profile.CredentialsPath(p.ProfileName))
	if err != nil {
		if !errors.Is(err, profile.ErrNoCredentials) {
			logger.Warn("failed to load credentials", zap.Error(err))
		}
		return nil
	}
	return creds
}

func provideClient(cfg *config.Config, creds *profile.Credentials) *api.Client {
	c := api.New(cfg.APIURL)
	if creds != nil {
		c.SetCredentials(creds.Token, creds.UserID)
	}
	return c
}

func provideCart(db *store.DB, b *bus.Bus, logger *zap.Logger) *cart.Cart {
	return cart.New(db, b, logger)
}

func provideChat(c *api.Client, b *bus.Bus, logger *zap.Logger) *chat.Controller {
	return chat.NewController(c, b, logger)
}

func provideNotify(c *api.Client, b *bus.Bus, logger *zap.Logger) *notify.Center {
	return notify.NewCenter(c, b, logger)
}

func provideFeedback(c *api.Client) *feedback.Service {
	return feedback.NewService(c, 0, 0)
}

func provideApp(p Params, c *api.Client, ch *chat.Controller, n *notify.Center, crt *cart.Cart, fb *feedback.Service, b *bus.Bus, creds *profile.Credentials, logger *zap.Logger) *tui.App {
	userType, fullName := "", ""
	if creds != nil {
		userType = creds.UserType
		fullName = creds.FullName
	}
	return tui.NewApp(tui.Params{
		Client:    c,
		Chat:      ch,
		Notify:    n,
		Cart:      crt,
		Feedback:  fb,
		Bus:       b,
		Logger:    logger,
		Profile:   p.ProfileName,
		CredsPath: profile.CredentialsPath(p.ProfileName),
		UserType:  userType,
		FullName:  fullName,
	})
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, ui *tui.App, db *store.DB, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := ui.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			ui.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing cart store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("client stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
