package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tilly/internal/analytics"
)

type AnalyticsModel struct {
	CommonModel
	analyticsService *analytics.Service

	loading bool
	err     error

	total      analytics.Totals
	today      analytics.Totals
	top        []analytics.ProductUnits
	categories []analytics.CategoryShare
}

func NewAnalyticsModel(svc *analytics.Service) AnalyticsModel {
	return AnalyticsModel{analyticsService: svc}
}

func (m AnalyticsModel) Title() string { return "Analytics" }

func (m AnalyticsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m AnalyticsModel) Init() tea.Cmd {
	m.loading = true
	return m.loadCmd()
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAnalyticsMsg:
		m.loading = false
		m.err = msg.err
		m.total = msg.total
		m.today = msg.today
		m.top = msg.top
		m.categories = msg.categories

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m AnalyticsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Crunching numbers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	var sb strings.Builder

	sb.WriteString(header.Render("Sales Overview"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("All time:  %d sales, %d units, %s revenue\n",
		m.total.Count, m.total.Units, FormatAmount(m.total.Revenue)))
	sb.WriteString(fmt.Sprintf("Today:     %d sales, %d units, %s revenue\n",
		m.today.Count, m.today.Units, FormatAmount(m.today.Revenue)))

	sb.WriteString("\n")
	sb.WriteString(header.Render("Top Products"))
	sb.WriteString("\n\n")

	if len(m.top) == 0 {
		sb.WriteString(faint.Render("No sales yet.") + "\n")
	}

	for i, p := range m.top {
		sb.WriteString(fmt.Sprintf("%2d. %-30s  %d units\n", i+1, p.Name, p.Units))
	}

	sb.WriteString("\n")
	sb.WriteString(header.Render("Sales by Category"))
	sb.WriteString("\n\n")

	if len(m.categories) == 0 {
		sb.WriteString(faint.Render("No categorized sales yet.") + "\n")
	}

	for _, c := range m.categories {
		bar := strings.Repeat("#", int(c.Percent/5))
		sb.WriteString(fmt.Sprintf("%-20s %5.1f%%  %s\n", c.Category, c.Percent, bar))
	}

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

type loadAnalyticsMsg struct {
	total      analytics.Totals
	today      analytics.Totals
	top        []analytics.ProductUnits
	categories []analytics.CategoryShare
	err        error
}

const topProductsShown = 5

func (m AnalyticsModel) loadCmd() tea.Cmd {
	svc := m.analyticsService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		total, err := svc.Totals(ctx)
		if err != nil {
			return loadAnalyticsMsg{err: err}
		}

		start, end := analytics.Today()

		today, err := svc.TotalsBetween(ctx, start, end)
		if err != nil {
			return loadAnalyticsMsg{err: err}
		}

		top, err := svc.TopProducts(ctx, topProductsShown)
		if err != nil {
			return loadAnalyticsMsg{err: err}
		}

		categories, err := svc.CategoryShares(ctx)
		if err != nil {
			return loadAnalyticsMsg{err: err}
		}

		return loadAnalyticsMsg{total: total, today: today, top: top, categories: categories}
	}
}
