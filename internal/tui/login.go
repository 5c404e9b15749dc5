package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
)

const requestTimeout = 20 * time.Second

// loginModel drives the OTP screens: identifier entry, then code entry
type loginModel struct {
	flow    *services.AuthFlowImpl
	theme   Theme
	input   textinput.Model
	spin    spinner.Model
	waiting bool
	errMsg  string
}

func newLoginModel(flow *services.AuthFlowImpl, theme Theme) loginModel {
	input := textinput.New()
	input.Placeholder = "Phone number or email"
	input.CharLimit = 64
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return loginModel{
		flow:  flow,
		theme: theme,
		input: input,
		spin:  spin,
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.waiting {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "ctrl+r":
			if m.flow.State() == services.OtpSent {
				return m.resend()
			}
		case "ctrl+b":
			if m.flow.State() == services.OtpSent {
				m.flow.ChangeIdentifier()
				m.input.SetValue("")
				m.input.Placeholder = "Phone number or email"
				m.errMsg = ""
			}
			return m, nil
		}

	case otpSentMsg:
		m.waiting = false
		m.errMsg = ""
		m.input.SetValue("")
		m.input.Placeholder = "OTP code"
		return m, nil

	case verifiedMsg:
		m.waiting = false
		return m, func() tea.Msg { return navigateMsg{screen: screenFor(msg.destination)} }

	case flowErrMsg:
		m.waiting = false
		m.errMsg = userFacing(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.waiting = true
	m.errMsg = ""

	if m.flow.State() == services.OtpSent {
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			dest, err := m.flow.SubmitCode(ctx, value)
			if err != nil {
				return flowErrMsg{err: err}
			}
			return verifiedMsg{destination: dest}
		})
	}

	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		challenge, err := m.flow.SubmitIdentifier(ctx, value)
		if err != nil {
			return flowErrMsg{err: err}
		}
		return otpSentMsg{challenge: challenge}
	})
}

func (m loginModel) resend() (loginModel, tea.Cmd) {
	m.waiting = true
	m.input.SetValue("")
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		challenge, err := m.flow.ResendOTP(ctx)
		if err != nil {
			return flowErrMsg{err: err}
		}
		return otpSentMsg{challenge: challenge}
	})
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Sign in") + "\n\n")

	if m.flow.State() == services.OtpSent {
		if c := m.flow.Challenge(); c != nil {
			target := c.MaskedTarget
			if target == "" {
				target = c.Target.Value
			}
			b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("Enter the code sent to %s", target)) + "\n\n")
		}
	} else {
		b.WriteString(m.theme.Subtitle.Render("Log in with your phone number or email") + "\n\n")
	}

	b.WriteString(m.input.View() + "\n")

	if m.waiting {
		b.WriteString("\n" + m.spin.View() + m.theme.Help.Render(" please wait") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errMsg) + "\n")
	}

	help := "enter submit"
	if m.flow.State() == services.OtpSent {
		help += " · ctrl+r resend · ctrl+b change number"
	}
	b.WriteString("\n" + m.theme.Help.Render(help))
	return m.theme.Box.Render(b.String())
}
