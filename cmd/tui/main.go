package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tilly/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tilly/internal/analytics"
	"github.com/MrJamesThe3rd/tilly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/tilly/internal/audit/store"
	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/tilly/internal/catalog/store"
	"github.com/MrJamesThe3rd/tilly/internal/config"
	"github.com/MrJamesThe3rd/tilly/internal/database"
	"github.com/MrJamesThe3rd/tilly/internal/pos"
	posStore "github.com/MrJamesThe3rd/tilly/internal/pos/store"
	"github.com/MrJamesThe3rd/tilly/internal/report"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
	saleStore "github.com/MrJamesThe3rd/tilly/internal/sale/store"
	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
	userStore "github.com/MrJamesThe3rd/tilly/internal/user/store"
)

type model struct {
	userService      *user.Service
	catalogService   *catalog.Service
	saleService      *sale.Service
	posService       *pos.Service
	analyticsService *analytics.Service
	auditService     *audit.Service
	reportService    *report.Service

	session *session.Session

	currentView View

	loginView     view.LoginModel
	productsView  view.ProductsModel
	salesView     view.SalesModel
	analyticsView view.AnalyticsModel
	auditView     view.AuditModel
	usersView     view.UsersModel
	exportView    view.ExportModel
}

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewProducts  View = 2
	ViewSales     View = 3
	ViewAnalytics View = 4
	ViewAudit     View = 5
	ViewUsers     View = 6
	ViewExport    View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	auditSvc := audit.NewService(auditStore.New(db))
	userSvc := user.NewService(userStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db), auditSvc)
	saleSvc := sale.NewService(saleStore.New(db))
	posSvc := pos.NewService(posStore.New(db), auditSvc)
	analyticsSvc := analytics.NewService(saleSvc)
	reportSvc := report.NewService(saleSvc)

	return model{
		userService:      userSvc,
		catalogService:   catalogSvc,
		saleService:      saleSvc,
		posService:       posSvc,
		analyticsService: analyticsSvc,
		auditService:     auditSvc,
		reportService:    reportSvc,
		session:          &session.Session{},
		currentView:      ViewLogin,
		loginView:        view.NewLoginModel(userSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}

	case view.LoggedInMsg:
		m.session.SetCurrent(msg.Actor)
		m.currentView = ViewMenu

		return m, nil

	case view.LogoutMsg:
		m.session.Clear()
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.userService)

		return m, m.loginView.Init()

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewAnalytics:
		var newModel tea.Model
		newModel, cmd = m.analyticsView.Update(msg)
		m.analyticsView = newModel.(view.AnalyticsModel)
	case ViewAudit:
		var newModel tea.Model
		newModel, cmd = m.auditView.Update(msg)
		m.auditView = newModel.(view.AuditModel)
	case ViewUsers:
		var newModel tea.Model
		newModel, cmd = m.usersView.Update(msg)
		m.usersView = newModel.(view.UsersModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actor, _ := m.session.Current()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewProducts
		m.productsView = view.NewProductsModel(m.catalogService, actor)

		return m, m.productsView.Init()
	case "2":
		m.currentView = ViewSales
		m.salesView = view.NewSalesModel(m.saleService, m.posService, m.catalogService, actor)

		return m, m.salesView.Init()
	case "3":
		m.currentView = ViewAnalytics
		m.analyticsView = view.NewAnalyticsModel(m.analyticsService)

		return m, m.analyticsView.Init()
	case "4":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.reportService)

		return m, m.exportView.Init()
	case "5":
		if actor.CanViewAuditLog() {
			m.currentView = ViewAudit
			m.auditView = view.NewAuditModel(m.auditService)

			return m, m.auditView.Init()
		}
	case "6":
		if actor.CanManageUsers() {
			m.currentView = ViewUsers
			m.usersView = view.NewUsersModel(m.userService, actor)

			return m, m.usersView.Init()
		}
	case "l":
		return m, view.Logout
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.menuView()
	case ViewProducts:
		return m.productsView.View()
	case ViewSales:
		return m.salesView.View()
	case ViewAnalytics:
		return m.analyticsView.View()
	case ViewAudit:
		return m.auditView.View()
	case ViewUsers:
		return m.usersView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func (m model) menuView() string {
	actor, _ := m.session.Current()

	menu := "Tilly Store Manager\n\n" +
		"1. Manage Products\n" +
		"2. Record Sales\n" +
		"3. Analytics\n" +
		"4. Export Sales Report\n"

	if actor.CanViewAuditLog() {
		menu += "5. Audit Log\n"
	}

	if actor.CanManageUsers() {
		menu += "6. Manage Users\n"
	}

	menu += "\nl. Logout (" + actor.Username + ")\nq. Quit"

	return lipgloss.NewStyle().Padding(2).Render(menu)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
