package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LogoutMsg tells the shell to drop the session and return to the login
// screen.
type LogoutMsg struct{}

func Logout() tea.Msg {
	return LogoutMsg{}
}
