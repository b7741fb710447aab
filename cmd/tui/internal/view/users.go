package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

type usersState int

const (
	usersStateList usersState = iota
	usersStateAdding
	usersStatePassword
	usersStateConfirmDelete
)

// userItem wraps a user to implement list.Item.
type userItem struct {
	u *user.User
}

func (i userItem) Title() string {
	return fmt.Sprintf("%-20s  %s", i.u.Username, i.u.Role)
}

func (i userItem) Description() string { return "" }

func (i userItem) FilterValue() string { return i.u.Username }

type UsersModel struct {
	CommonModel
	userService *user.Service
	actor       session.Actor

	state   usersState
	list    list.Model
	form    *huh.Form
	loading bool
	status  string

	formUsername string
	formPassword string
	formRole     string
}

func NewUsersModel(userSvc *user.Service, actor session.Actor) UsersModel {
	l := list.New([]list.Item{}, userItemDelegate{}, 0, 0)
	l.Title = "Users"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return UsersModel{userService: userSvc, actor: actor, list: l}
}

func (m UsersModel) Title() string { return "Manage Users" }

func (m UsersModel) ShortHelp() string {
	switch m.state {
	case usersStateList:
		return "Esc: back | a: add | p: set password | x: delete"
	case usersStateConfirmDelete:
		return "y: confirm | any other key: cancel"
	}

	return "Esc: cancel | Enter/Tab: navigate form"
}

func (m UsersModel) Init() tea.Cmd {
	m.loading = true
	return m.loadCmd()
}

func (m UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUsersMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.users))
		for i, u := range msg.users {
			items[i] = userItem{u: u}
		}

		m.list.SetItems(items)

		return m, nil

	case userMutationResultMsg:
		m.state = usersStateList
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.done
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case usersStateList:
		return m.updateList(msg)
	case usersStateAdding, usersStatePassword:
		return m.updateForm(msg)
	case usersStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m UsersModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			m.formUsername = ""
			m.formPassword = ""
			m.formRole = string(user.RoleCashier)
			m.form = m.buildAddForm()
			m.state = usersStateAdding

			return m, m.form.Init()
		case "p":
			if _, ok := m.list.SelectedItem().(userItem); ok {
				m.formPassword = ""
				m.form = m.buildPasswordForm()
				m.state = usersStatePassword

				return m, m.form.Init()
			}
		case "x":
			if selected, ok := m.list.SelectedItem().(userItem); ok {
				if selected.u.ID == m.actor.ID {
					m.status = "You cannot delete your own account."
					return m, nil
				}

				m.state = usersStateConfirmDelete

				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m UsersModel) buildAddForm() *huh.Form {
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
				Value(&m.formPassword).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("role").
				Title("Role").
				Options(
					huh.NewOption("Cashier", string(user.RoleCashier)),
					huh.NewOption("Manager", string(user.RoleManager)),
					huh.NewOption("Admin", string(user.RoleAdmin)),
				).
				Value(&m.formRole),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m UsersModel) buildPasswordForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("password").
				Title("New Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m UsersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = usersStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == usersStateAdding {
		return m, m.createUserCmd(user.CreateParams{
			Username: m.form.GetString("username"),
			Password: m.form.GetString("password"),
			Role:     user.Role(m.form.GetString("role")),
		})
	}

	selected, ok := m.list.SelectedItem().(userItem)
	if !ok {
		m.state = usersStateList
		return m, nil
	}

	return m, m.changePasswordCmd(selected.u.ID, m.form.GetString("password"))
}

func (m UsersModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() != "y" {
		m.state = usersStateList
		return m, nil
	}

	selected, ok := m.list.SelectedItem().(userItem)
	if !ok {
		m.state = usersStateList
		return m, nil
	}

	return m, m.deleteUserCmd(selected.u.ID)
}

func (m UsersModel) View() string {
	switch m.state {
	case usersStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading users...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case usersStateAdding:
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render("Add User") + "\n\n" + m.form.View(),
		)

	case usersStatePassword:
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render("Change Password") + "\n\n" + m.form.View(),
		)

	case usersStateConfirmDelete:
		selected, _ := m.list.SelectedItem().(userItem)

		username := ""
		if selected.u != nil {
			username = selected.u.Username
		}

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Delete user %q?\n\n(y to confirm, any other key to cancel)", username),
		)
	}

	return ""
}

// Messages

type loadUsersMsg struct {
	users []*user.User
	err   error
}

func (m UsersModel) loadCmd() tea.Cmd {
	svc := m.userService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		users, err := svc.List(ctx)

		return loadUsersMsg{users: users, err: err}
	}
}

type userMutationResultMsg struct {
	done string
	err  error
}

func (m UsersModel) createUserCmd(params user.CreateParams) tea.Cmd {
	svc := m.userService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := svc.Create(ctx, params)

		return userMutationResultMsg{done: "User created.", err: err}
	}
}

func (m UsersModel) changePasswordCmd(id int64, password string) tea.Cmd {
	svc := m.userService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return userMutationResultMsg{done: "Password updated.", err: svc.ChangePassword(ctx, id, password)}
	}
}

func (m UsersModel) deleteUserCmd(id int64) tea.Cmd {
	svc := m.userService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return userMutationResultMsg{done: "User deleted.", err: svc.Delete(ctx, id)}
	}
}

// userItemDelegate renders items in the list.
type userItemDelegate struct{}

func (d userItemDelegate) Height() int                             { return 1 }
func (d userItemDelegate) Spacing() int                            { return 0 }
func (d userItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d userItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(userItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
}
