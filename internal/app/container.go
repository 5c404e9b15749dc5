package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/api"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/config"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/infrastructure/auth"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/notify"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/storage"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	// Infrastructure
	Store     domain.SessionStore
	Client    *api.Client
	Toasts    *notify.Queue
	Events    domain.EventLog
	Inspector domain.TokenInspector

	// API surface
	AuthAPI    domain.AuthAPI
	ListingAPI domain.ListingAPI
	MediaAPI   domain.MediaAPI
	AdminAPI   domain.AdminAPI

	// Services
	Dashboard *services.DashboardImpl
	Admin     *services.AdminReviewImpl
	Refresher *services.SessionRefresherImpl
}

// NewContainer creates and wires all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.initLogger()

	if err := c.initStorage(); err != nil {
		return nil, err
	}
	c.initAPI()
	c.initServices()

	return c, nil
}

func (c *Container) initLogger() {
	level, err := zerolog.ParseLevel(c.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	c.Log = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func (c *Container) initStorage() error {
	fileStore, err := storage.NewFileStore(c.Config.StateFile)
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	c.Store = storage.NewSessionStore(fileStore)
	return nil
}

func (c *Container) initAPI() {
	c.Toasts = notify.NewQueue(5)
	c.Events = NewEventLogger(c.Log)
	c.Inspector = auth.NewJWTInspector()

	store := c.Store
	c.Client = api.NewClient(
		c.Config.APIBaseURL,
		c.Config.APITimeout,
		api.NewSessionTokenSource(store),
		c.Log,
		api.WithUnauthorizedHook(func(admin bool) {
			// A rejected token means the persisted pair is dead
			if admin {
				_ = store.ClearAdmin()
			} else {
				_ = store.Clear()
			}
		}),
	)

	c.AuthAPI = api.NewAuthClient(c.Client)
	c.ListingAPI = api.NewListingClient(c.Client)
	c.MediaAPI = api.NewMediaClient(c.Client)
	c.AdminAPI = api.NewAdminClient(c.Client)
}

func (c *Container) initServices() {
	c.Dashboard = services.NewDashboard(c.ListingAPI, c.Toasts, c.Events)
	c.Admin = services.NewAdminReview(c.AuthAPI, c.AdminAPI, c.Store, c.Toasts, c.Events)
	c.Refresher = services.NewSessionRefresher(c.AuthAPI, c.Store, c.Inspector, c.Events)
}

// NewAuthFlow creates a fresh login flow for one attempt chain
func (c *Container) NewAuthFlow(returnTo string) *services.AuthFlowImpl {
	return services.NewAuthFlow(
		c.AuthAPI,
		c.Store,
		c.Toasts,
		c.Events,
		c.Config.CountryCode,
		c.Config.DefaultDest,
		returnTo,
		c.Config.OTPLength,
	)
}

// NewWizard creates a fresh sell flow with an empty draft
func (c *Container) NewWizard() *services.ListingWizardImpl {
	return services.NewListingWizard(
		c.ListingAPI,
		c.MediaAPI,
		c.Toasts,
		c.Events,
		domain.PriceBounds{Min: c.Config.MinPrice, Max: c.Config.MaxPrice},
		c.Config.MaxImages,
	)
}
