package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"showtime-tix-cli/service"
)

// submitLoginForm fires the credential round trip. Empty fields never leave
// the terminal.
func (m appModel) submitLoginForm() (tea.Model, tea.Cmd) {
	if m.registering {
		reg := service.Registration{
			Name:     m.loginForm.value(0),
			Email:    m.loginForm.value(1),
			Password: m.loginForm.value(2),
		}
		if reg.Name == "" || reg.Email == "" || reg.Password == "" {
			m.loginForm.feedback = "All fields are required."
			return m, nil
		}
		m.loginForm.feedback = ""
		m.enterLoading("Creating account")
		return m, m.registerCmd(reg)
	}

	creds := service.Credentials{
		UsernameOrEmail: m.loginForm.value(0),
		Password:        m.loginForm.value(1),
	}
	if creds.UsernameOrEmail == "" || creds.Password == "" {
		m.loginForm.feedback = "Email and password are required."
		return m, nil
	}
	m.loginForm.feedback = ""
	m.enterLoading("Signing in")
	return m, m.loginCmd(creds)
}

func (m appModel) loginView() string {
	body := m.loginForm.View()
	reason := ""
	if m.authTargetSet {
		switch m.authTarget {
		case stateSeatMap:
			reason = "Sign in to complete your booking."
		case stateMyBookings:
			reason = "Sign in to see your bookings."
		case stateAdminMenu:
			reason = "Sign in with an admin account to manage the catalog."
		}
	}
	if reason != "" {
		body = lipgloss.NewStyle().Faint(true).Render(reason) + "\n\n" + body
	}
	return body
}
