package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/notify"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
)

// Deps bundles everything the root model needs from the container
type Deps struct {
	Store       domain.SessionStore
	Toasts      *notify.Queue
	Listings    domain.ListingAPI
	Dashboard   *services.DashboardImpl
	Admin       *services.AdminReviewImpl
	NewAuthFlow func(returnTo string) *services.AuthFlowImpl
	NewWizard   func() *services.ListingWizardImpl
}

type toastTickMsg struct{}

// RootModel owns screen switching, the toast strip and the theme toggle
type RootModel struct {
	deps   Deps
	theme  Theme
	screen Screen

	login     loginModel
	wizard    wizardModel
	dashboard dashboardModel
	browse    browseModel
	admin     adminModel

	authFlow *services.AuthFlowImpl
	toasts   []notify.Toast
}

// NewRoot creates the root model starting at the requested screen. Guarded
// screens fall back to login carrying the destination as returnTo.
func NewRoot(deps Deps, start Screen) RootModel {
	m := RootModel{
		deps:  deps,
		theme: ThemeByName(deps.Store.Theme()),
	}
	m.enter(start)
	return m
}

func (m *RootModel) enter(screen Screen) {
	authed := m.deps.Store.IsAuthenticated()

	switch screen {
	case ScreenSell:
		if !authed {
			m.startLogin("sell")
			return
		}
		m.wizard = newWizardModel(m.deps.NewWizard(), m.theme)
		m.screen = ScreenSell
	case ScreenDashboard:
		if !authed {
			m.startLogin("dashboard")
			return
		}
		m.dashboard = newDashboardModel(m.deps.Dashboard, m.theme)
		m.screen = ScreenDashboard
	case ScreenBrowse:
		m.browse = newBrowseModel(m.deps.Listings, m.deps.Dashboard, m.theme)
		m.screen = ScreenBrowse
	case ScreenAdmin:
		adminSession, _ := m.deps.Store.AdminSession()
		m.admin = newAdminModel(m.deps.Admin, m.theme, adminSession != nil)
		m.screen = ScreenAdmin
	default:
		m.startLogin("")
	}
}

func (m *RootModel) startLogin(returnTo string) {
	if m.authFlow != nil {
		m.authFlow.Close()
	}
	m.authFlow = m.deps.NewAuthFlow(returnTo)
	m.login = newLoginModel(m.authFlow, m.theme)
	m.screen = ScreenLogin
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.activeInit(), toastTick())
}

func (m RootModel) activeInit() tea.Cmd {
	switch m.screen {
	case ScreenLogin:
		return m.login.Init()
	case ScreenSell:
		return m.wizard.Init()
	case ScreenDashboard:
		return m.dashboard.Init()
	case ScreenBrowse:
		return m.browse.Init()
	case ScreenAdmin:
		return m.admin.Init()
	}
	return nil
}

func toastTick() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return toastTickMsg{} })
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			if m.authFlow != nil {
				m.authFlow.Close()
			}
			return m, tea.Quit
		case "ctrl+t":
			return m.toggleTheme(), nil
		}

	case navigateMsg:
		m.enter(msg.screen)
		return m, m.activeInit()

	case toastTickMsg:
		if len(m.toasts) > 0 {
			m.toasts = m.toasts[1:]
		}
		return m, toastTick()
	}

	// Queued notifications surface on the next update after the flow call
	for {
		toast, ok := m.deps.Toasts.Pop()
		if !ok {
			break
		}
		m.toasts = append(m.toasts, toast)
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin:
		m.login, cmd = m.login.Update(msg)
	case ScreenSell:
		m.wizard, cmd = m.wizard.Update(msg)
	case ScreenDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ScreenBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case ScreenAdmin:
		m.admin, cmd = m.admin.Update(msg)
	}
	return m, cmd
}

func (m RootModel) toggleTheme() RootModel {
	next := LightTheme()
	if m.theme.Name == "light" {
		next = DarkTheme()
	}
	m.theme = next
	// Persisting is best effort; the session stays usable either way
	_ = m.deps.Store.SetTheme(next.Name)

	m.login.theme = next
	m.wizard.theme = next
	m.dashboard.theme = next
	m.browse.theme = next
	m.admin.theme = next
	return m
}

func (m RootModel) View() string {
	var b strings.Builder
	for _, toast := range m.toasts {
		style := m.theme.ToastInfo
		switch toast.Level {
		case notify.LevelSuccess:
			style = m.theme.ToastOK
		case notify.LevelError:
			style = m.theme.ToastErr
		}
		b.WriteString(style.Render(toast.Message) + "\n")
	}
	if len(m.toasts) > 0 {
		b.WriteString("\n")
	}

	switch m.screen {
	case ScreenLogin:
		b.WriteString(m.login.View())
	case ScreenSell:
		b.WriteString(m.wizard.View())
	case ScreenDashboard:
		b.WriteString(m.dashboard.View())
	case ScreenBrowse:
		b.WriteString(m.browse.View())
	case ScreenAdmin:
		b.WriteString(m.admin.View())
	}

	b.WriteString("\n" + m.theme.Help.Render("ctrl+t theme · ctrl+c quit") + "\n")
	return b.String()
}
