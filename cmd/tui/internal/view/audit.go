package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
)

// auditItem wraps an audit entry to implement list.Item.
type auditItem struct {
	e *audit.Entry
}

func (i auditItem) Title() string {
	return fmt.Sprintf("%s  %-8s  %-8s #%-5d  by %s",
		i.e.Timestamp.Format("2006-01-02 15:04:05"), i.e.Action, i.e.EntityType, i.e.EntityID, i.e.Username)
}

func (i auditItem) Description() string {
	switch {
	case i.e.OldValue != nil && i.e.NewValue != nil:
		return fmt.Sprintf("%s -> %s", *i.e.OldValue, *i.e.NewValue)
	case i.e.NewValue != nil:
		return *i.e.NewValue
	case i.e.OldValue != nil:
		return *i.e.OldValue
	}

	return ""
}

func (i auditItem) FilterValue() string {
	return i.e.Username + " " + i.e.Action + " " + i.e.EntityType
}

type AuditModel struct {
	CommonModel
	auditService *audit.Service

	list       list.Model
	entityType string
	loading    bool
	status     string
}

func NewAuditModel(svc *audit.Service) AuditModel {
	l := list.New([]list.Item{}, auditItemDelegate{}, 0, 0)
	l.Title = "Audit Log"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return AuditModel{auditService: svc, list: l}
}

func (m AuditModel) Title() string { return "Audit Log" }

func (m AuditModel) ShortHelp() string {
	return "Esc: back | t: cycle entity filter | /: filter"
}

func (m AuditModel) Init() tea.Cmd {
	m.loading = true
	return m.loadCmd()
}

func (m AuditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAuditMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = auditItem{e: e}
		}

		m.list.SetItems(items)

		m.status = ""
		if len(msg.entries) == 0 {
			m.status = "No audit entries."
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "esc":
				return m, Back
			case "t":
				m.entityType = nextEntityFilter(m.entityType)
				m.loading = true

				return m, m.loadCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func nextEntityFilter(current string) string {
	switch current {
	case "":
		return audit.EntityTypeProduct
	case audit.EntityTypeProduct:
		return audit.EntityTypeSale
	case audit.EntityTypeSale:
		return audit.EntityTypeUser
	}

	return ""
}

func (m AuditModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading audit log...")
	}

	title := "Audit Log"
	if m.entityType != "" {
		title = "Audit Log (" + m.entityType + ")"
	}

	m.list.Title = title

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

type loadAuditMsg struct {
	entries []*audit.Entry
	err     error
}

func (m AuditModel) loadCmd() tea.Cmd {
	svc := m.auditService
	entityType := m.entityType

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			entries []*audit.Entry
			err     error
		)

		if entityType == "" {
			entries, err = svc.List(ctx)
		} else {
			entries, err = svc.ListByEntityType(ctx, entityType)
		}

		return loadAuditMsg{entries: entries, err: err}
	}
}

// auditItemDelegate renders items in the list.
type auditItemDelegate struct{}

func (d auditItemDelegate) Height() int                             { return 2 }
func (d auditItemDelegate) Spacing() int                            { return 0 }
func (d auditItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d auditItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(auditItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	desc := i.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
