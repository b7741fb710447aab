package view

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/pos"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
	"github.com/MrJamesThe3rd/tilly/internal/session"
)

type salesState int

const (
	salesStateList salesState = iota
	salesStateRecording
	salesStateConfirmDelete
)

// saleItem wraps a sale to implement list.Item.
type saleItem struct {
	sl *sale.Sale
}

func (i saleItem) Title() string {
	name := i.sl.ProductName
	if name == "" {
		name = "Unknown"
	}

	return fmt.Sprintf("%s  %-30s  x%-4d  %8s",
		i.sl.SaleDate.Format("2006-01-02 15:04"), name, i.sl.Quantity, FormatAmount(i.sl.TotalPrice))
}

func (i saleItem) Description() string {
	if i.sl.Category == "" {
		return ""
	}

	return i.sl.Category
}

func (i saleItem) FilterValue() string {
	return i.sl.ProductName + " " + i.sl.Category
}

type SalesModel struct {
	CommonModel
	saleService    *sale.Service
	posService     *pos.Service
	catalogService *catalog.Service
	actor          session.Actor

	state    salesState
	list     list.Model
	form     *huh.Form
	sales    []*sale.Sale
	products []*catalog.Product

	loading bool
	status  string

	formProductID int64
	formQty       string
}

func NewSalesModel(saleSvc *sale.Service, posSvc *pos.Service, catalogSvc *catalog.Service, actor session.Actor) SalesModel {
	l := list.New([]list.Item{}, saleItemDelegate{}, 0, 0)
	l.Title = "Sales"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return SalesModel{
		saleService:    saleSvc,
		posService:     posSvc,
		catalogService: catalogSvc,
		actor:          actor,
		list:           l,
	}
}

func (m SalesModel) Title() string { return "Record Sales" }

func (m SalesModel) ShortHelp() string {
	switch m.state {
	case salesStateList:
		return "Esc: back | n: new sale | x: delete | /: filter"
	case salesStateRecording:
		return "Esc: cancel | Enter/Tab: navigate form"
	case salesStateConfirmDelete:
		return "y: confirm | any other key: cancel"
	}

	return ""
}

func (m SalesModel) Init() tea.Cmd {
	m.loading = true
	return m.loadSalesCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSalesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.sales = msg.sales
		m.refreshListItems()

		if len(msg.sales) == 0 {
			m.status = "No sales recorded yet."
		}

		return m, nil

	case loadSaleProductsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = salesStateList

			return m, nil
		}

		if len(msg.products) == 0 {
			m.status = "No products available to sell."
			m.state = salesStateList

			return m, nil
		}

		m.products = msg.products
		m.form = m.buildRecordForm()

		return m, m.form.Init()

	case recordSaleResultMsg:
		m.state = salesStateList
		if msg.err != nil {
			var stockErr *pos.InsufficientStockError
			if errors.As(msg.err, &stockErr) {
				m.status = fmt.Sprintf("Insufficient stock: only %d available.", stockErr.Available)
			} else {
				m.status = fmt.Sprintf("Error recording sale: %v", msg.err)
			}

			return m, nil
		}

		m.status = fmt.Sprintf("Sale recorded. Total: %s", FormatAmount(msg.sale.TotalPrice))
		m.loading = true

		return m, m.loadSalesCmd()

	case deleteSaleResultMsg:
		m.state = salesStateList
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Sale deleted, stock restored."
		m.loading = true

		return m, m.loadSalesCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case salesStateList:
		return m.updateList(msg)
	case salesStateRecording:
		return m.updateRecording(msg)
	case salesStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m SalesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				m.state = salesStateRecording
				m.form = nil

				return m, m.loadProductsCmd()
			case "x":
				if _, ok := m.list.SelectedItem().(saleItem); ok {
					m.state = salesStateConfirmDelete
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m SalesModel) buildRecordForm() *huh.Form {
	options := make([]huh.Option[int64], 0, len(m.products))
	for _, p := range m.products {
		label := fmt.Sprintf("%s (%s, %d in stock)", p.Name, FormatAmount(p.SellingPrice), p.Quantity)
		options = append(options, huh.NewOption(label, p.ID))
	}

	m.formProductID = m.products[0].ID
	m.formQty = "1"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Key("product").
				Title("Product").
				Options(options...).
				Value(&m.formProductID),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("quantity must be a positive number")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m SalesModel) updateRecording(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = salesStateList
			m.form = nil

			return m, nil
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	qty, _ := strconv.ParseInt(strings.TrimSpace(m.form.GetString("quantity")), 10, 64)

	return m, m.recordSaleCmd(m.form.Get("product").(int64), qty)
}

func (m SalesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() != "y" {
		m.state = salesStateList
		return m, nil
	}

	selected, ok := m.list.SelectedItem().(saleItem)
	if !ok {
		m.state = salesStateList
		return m, nil
	}

	return m, m.deleteSaleCmd(selected.sl.ID)
}

func (m SalesModel) View() string {
	switch m.state {
	case salesStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading sales...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case salesStateRecording:
		if m.form == nil {
			return lipgloss.NewStyle().Padding(2).Render("Loading products...")
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render("New Sale") + "\n\n" + m.form.View(),
		)

	case salesStateConfirmDelete:
		return lipgloss.NewStyle().Padding(1).Render(
			"Delete this sale? Stock will be restored to the product.\n\n(y to confirm, any other key to cancel)",
		)
	}

	return ""
}

func (m *SalesModel) refreshListItems() {
	items := make([]list.Item, len(m.sales))
	for i, sl := range m.sales {
		items[i] = saleItem{sl: sl}
	}

	m.list.SetItems(items)
}

// Messages

type loadSalesMsg struct {
	sales []*sale.Sale
	err   error
}

func (m SalesModel) loadSalesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sales, err := m.saleService.List(ctx)

		return loadSalesMsg{sales: sales, err: err}
	}
}

type loadSaleProductsMsg struct {
	products []*catalog.Product
	err      error
}

func (m SalesModel) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.catalogService.List(ctx)

		return loadSaleProductsMsg{products: products, err: err}
	}
}

type recordSaleResultMsg struct {
	sale *sale.Sale
	err  error
}

func (m SalesModel) recordSaleCmd(productID, quantity int64) tea.Cmd {
	actor := m.actor
	svc := m.posService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sl, err := svc.RecordSale(ctx, actor, productID, quantity)

		return recordSaleResultMsg{sale: sl, err: err}
	}
}

type deleteSaleResultMsg struct {
	err error
}

func (m SalesModel) deleteSaleCmd(id int64) tea.Cmd {
	actor := m.actor
	svc := m.posService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteSaleResultMsg{err: svc.DeleteSale(ctx, actor, id)}
	}
}

// saleItemDelegate renders items in the list.
type saleItemDelegate struct{}

func (d saleItemDelegate) Height() int                             { return 2 }
func (d saleItemDelegate) Spacing() int                            { return 0 }
func (d saleItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d saleItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(saleItem)
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
