package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

// LoggedInMsg is emitted after a successful authentication.
type LoggedInMsg struct {
	Actor session.Actor
}

type LoginModel struct {
	CommonModel
	userService *user.Service

	form    *huh.Form
	status  string
	loading bool

	formUsername string
	formPassword string
}

func NewLoginModel(userSvc *user.Service) LoginModel {
	m := LoginModel{userService: userSvc}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.formUsername).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Login" }

func (m LoginModel) ShortHelp() string { return "Enter: submit | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.loading = false

		if result.err != nil {
			if errors.Is(result.err, user.ErrInvalidCredentials) {
				m.status = "Invalid username or password."
			} else {
				m.status = fmt.Sprintf("Error: %v", result.err)
			}

			m.formPassword = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg {
			return LoggedInMsg{Actor: session.FromUser(result.user)}
		}
	}

	if m.loading {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.loading = true
	m.status = ""

	return m, m.loginCmd(m.form.GetString("username"), m.form.GetString("password"))
}

func (m LoginModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Store Login")

	body := m.form.View()
	if m.loading {
		body = "Signing in..."
	}

	statusLine := ""
	if m.status != "" {
		statusLine = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + body + statusLine)
}

type loginResultMsg struct {
	user *user.User
	err  error
}

func (m LoginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		u, err := m.userService.Authenticate(ctx, username, password)

		return loginResultMsg{user: u, err: err}
	}
}
