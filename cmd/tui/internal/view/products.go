package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/money"
	"github.com/MrJamesThe3rd/tilly/internal/session"
)

const lowStockThreshold = 10

type productState int

const (
	productStateList productState = iota
	productStateForm
	productStateConfirmDelete
)

// productItem wraps a product to implement list.Item.
type productItem struct {
	p *catalog.Product
}

func (i productItem) Title() string {
	qty := fmt.Sprintf("qty %d", i.p.Quantity)
	if i.p.Quantity <= lowStockThreshold {
		qty = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(qty + " (low)")
	}

	return fmt.Sprintf("%-30s  %8s  %s", i.p.Name, FormatAmount(i.p.SellingPrice), qty)
}

func (i productItem) Description() string {
	parts := []string{}
	if i.p.Category != "" {
		parts = append(parts, i.p.Category)
	}

	if i.p.Supplier != "" {
		parts = append(parts, "from "+i.p.Supplier)
	}

	if i.p.ExpiryDate != nil {
		parts = append(parts, "expires "+FormatDate(*i.p.ExpiryDate))
	}

	return strings.Join(parts, "  |  ")
}

func (i productItem) FilterValue() string {
	return i.p.Name + " " + i.p.Category
}

type ProductsModel struct {
	CommonModel
	catalogService *catalog.Service
	actor          session.Actor

	state    productState
	list     list.Model
	form     *huh.Form
	products []*catalog.Product
	editing  *catalog.Product

	lowOnly bool
	loading bool
	status  string

	// Form field bindings
	formName     string
	formDesc     string
	formCategory string
	formSupplier string
	formCost     string
	formPrice    string
	formQty      string
	formExpiry   string
}

func NewProductsModel(catalogSvc *catalog.Service, actor session.Actor) ProductsModel {
	l := list.New([]list.Item{}, productItemDelegate{}, 0, 0)
	l.Title = "Products"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return ProductsModel{
		catalogService: catalogSvc,
		actor:          actor,
		list:           l,
	}
}

func (m ProductsModel) Title() string { return "Manage Products" }

func (m ProductsModel) ShortHelp() string {
	switch m.state {
	case productStateList:
		if m.actor.CanManageProducts() {
			return "Esc: back | a: add | Enter: edit | x: delete | l: low stock | /: filter"
		}

		return "Esc: back | l: low stock | /: filter"
	case productStateForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	case productStateConfirmDelete:
		return "y: confirm | any other key: cancel"
	}

	return ""
}

func (m ProductsModel) Init() tea.Cmd {
	m.loading = true
	return m.loadProductsCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.products = msg.products
		m.refreshListItems()

		if len(msg.products) == 0 {
			m.status = "No products found."
		}

		return m, nil

	case saveProductResultMsg:
		m.state = productStateList
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."
		m.loading = true

		return m, m.loadProductsCmd()

	case deleteProductResultMsg:
		m.state = productStateList
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."
		m.loading = true

		return m, m.loadProductsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case productStateList:
		return m.updateList(msg)
	case productStateForm:
		return m.updateForm(msg)
	case productStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ProductsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "a":
				if m.actor.CanManageProducts() {
					return m.startAdding()
				}
			case "enter":
				if m.actor.CanManageProducts() {
					return m.startEditing()
				}
			case "x":
				if m.actor.CanManageProducts() {
					if _, ok := m.list.SelectedItem().(productItem); ok {
						m.state = productStateConfirmDelete
						return m, nil
					}
				}
			case "l":
				m.lowOnly = !m.lowOnly
				m.refreshListItems()

				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ProductsModel) startAdding() (tea.Model, tea.Cmd) {
	m.editing = nil
	m.formName = ""
	m.formDesc = ""
	m.formCategory = ""
	m.formSupplier = ""
	m.formCost = ""
	m.formPrice = ""
	m.formQty = "0"
	m.formExpiry = ""

	m.form = m.buildForm()
	m.state = productStateForm

	return m, m.form.Init()
}

func (m ProductsModel) startEditing() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(productItem)
	if !ok {
		return m, nil
	}

	m.editing = selected.p
	m.formName = selected.p.Name
	m.formDesc = selected.p.Description
	m.formCategory = selected.p.Category
	m.formSupplier = selected.p.Supplier
	m.formCost = FormatAmount(selected.p.CostPrice)
	m.formPrice = FormatAmount(selected.p.SellingPrice)
	m.formQty = strconv.FormatInt(selected.p.Quantity, 10)
	m.formExpiry = ""

	if selected.p.ExpiryDate != nil {
		m.formExpiry = FormatDate(*selected.p.ExpiryDate)
	}

	m.form = m.buildForm()
	m.state = productStateForm

	return m, m.form.Init()
}

func (m ProductsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDesc),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("supplier").
				Title("Supplier (optional)").
				Value(&m.formSupplier),

			huh.NewInput().
				Key("cost").
				Title("Cost Price").
				Placeholder("0.00").
				Value(&m.formCost).
				Validate(validateAmount),

			huh.NewInput().
				Key("price").
				Title("Selling Price").
				Placeholder("0.00").
				Value(&m.formPrice).
				Validate(validateAmount),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || n < 0 {
						return fmt.Errorf("quantity must be a non-negative number")
					}
					return nil
				}),

			huh.NewInput().
				Key("expiry").
				Title("Expiry Date (optional)").
				Placeholder("YYYY-MM-DD").
				Value(&m.formExpiry).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateAmount(s string) error {
	cents, err := money.ParseCents(s)
	if err != nil || cents < 0 {
		return fmt.Errorf("expected a non-negative amount like 9.99")
	}

	return nil
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productStateList
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

	return m, m.saveProductCmd()
}

func (m ProductsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() != "y" {
		m.state = productStateList
		return m, nil
	}

	selected, ok := m.list.SelectedItem().(productItem)
	if !ok {
		m.state = productStateList
		return m, nil
	}

	return m, m.deleteProductCmd(selected.p.ID)
}

func (m ProductsModel) View() string {
	switch m.state {
	case productStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading products...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		title := "Products"
		if m.lowOnly {
			title = "Products (low stock only)"
		}

		m.list.Title = title

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case productStateForm:
		if m.form == nil {
			return ""
		}

		header := "Add Product"
		if m.editing != nil {
			header = fmt.Sprintf("Edit Product #%d", m.editing.ID)
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render(header) + "\n\n" + m.form.View(),
		)

	case productStateConfirmDelete:
		selected, _ := m.list.SelectedItem().(productItem)

		name := ""
		if selected.p != nil {
			name = selected.p.Name
		}

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Delete product %q? Historical sales will keep their records.\n\n(y to confirm, any other key to cancel)", name),
		)
	}

	return ""
}

func (m *ProductsModel) refreshListItems() {
	items := make([]list.Item, 0, len(m.products))

	for _, p := range m.products {
		if m.lowOnly && p.Quantity > lowStockThreshold {
			continue
		}

		items = append(items, productItem{p: p})
	}

	m.list.SetItems(items)
}

// Messages

type loadProductsMsg struct {
	products []*catalog.Product
	err      error
}

func (m ProductsModel) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.catalogService.List(ctx)

		return loadProductsMsg{products: products, err: err}
	}
}

type saveProductResultMsg struct {
	err error
}

func (m ProductsModel) saveProductCmd() tea.Cmd {
	editing := m.editing
	actor := m.actor
	svc := m.catalogService

	cost, _ := money.ParseCents(m.form.GetString("cost"))
	price, _ := money.ParseCents(m.form.GetString("price"))
	qty, _ := strconv.ParseInt(strings.TrimSpace(m.form.GetString("quantity")), 10, 64)

	var expiry *time.Time
	if s := strings.TrimSpace(m.form.GetString("expiry")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			expiry = &t
		}
	}

	params := catalog.CreateParams{
		Name:         m.form.GetString("name"),
		Description:  m.form.GetString("description"),
		Category:     m.form.GetString("category"),
		Supplier:     m.form.GetString("supplier"),
		CostPrice:    cost,
		SellingPrice: price,
		Quantity:     qty,
		ExpiryDate:   expiry,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			_, err := svc.Create(ctx, actor, params)
			return saveProductResultMsg{err: err}
		}

		updated := *editing
		updated.Name = params.Name
		updated.Description = params.Description
		updated.Category = params.Category
		updated.Supplier = params.Supplier
		updated.CostPrice = params.CostPrice
		updated.SellingPrice = params.SellingPrice
		updated.Quantity = params.Quantity
		updated.ExpiryDate = params.ExpiryDate

		return saveProductResultMsg{err: svc.Update(ctx, actor, &updated)}
	}
}

type deleteProductResultMsg struct {
	err error
}

func (m ProductsModel) deleteProductCmd(id int64) tea.Cmd {
	actor := m.actor
	svc := m.catalogService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteProductResultMsg{err: svc.Delete(ctx, actor, id)}
	}
}

// productItemDelegate renders items in the list.
type productItemDelegate struct{}

func (d productItemDelegate) Height() int                             { return 2 }
func (d productItemDelegate) Spacing() int                            { return 0 }
func (d productItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d productItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(productItem)
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
