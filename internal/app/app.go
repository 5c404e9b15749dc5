package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/tui"
)

// Run starts the terminal UI at the requested screen
func (c *Container) Run(start tui.Screen) error {
	// Refresh a stale session up front so the first guarded screen does
	// not bounce to login unnecessarily.
	if c.Store.IsAuthenticated() {
		if _, err := c.Refresher.EnsureFresh(context.Background()); err != nil &&
			!errors.Is(err, domain.ErrNotAuthenticated) {
			c.Log.Warn().Err(err).Msg("session refresh failed, continuing")
		}
	}

	deps := tui.Deps{
		Store:       c.Store,
		Toasts:      c.Toasts,
		Listings:    c.ListingAPI,
		Dashboard:   c.Dashboard,
		Admin:       c.Admin,
		NewAuthFlow: c.NewAuthFlow,
		NewWizard:   c.NewWizard,
	}

	program := tea.NewProgram(tui.NewRoot(deps, start), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Logout invalidates the server session and clears local state
func (c *Container) Logout(ctx context.Context) error {
	if !c.Store.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	return c.Refresher.Logout(ctx)
}
