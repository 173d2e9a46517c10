package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kleinsmith/orthobill/cmd/tui/internal/view"
	"github.com/kleinsmith/orthobill/internal/invoice"
	invoiceStore "github.com/kleinsmith/orthobill/internal/invoice/store"
	"github.com/kleinsmith/orthobill/internal/quotation"
	quotationStore "github.com/kleinsmith/orthobill/internal/quotation/store"
	"github.com/kleinsmith/orthobill/internal/seed"
)

type model struct {
	quotationService *quotation.Service
	invoiceService   *invoice.Service

	currentView View

	dashboardView  view.DashboardModel
	quotationsView view.QuotationsModel
	invoicesView   view.InvoicesModel
}

type View int

const (
	ViewMenu       View = 0
	ViewDashboard  View = 1
	ViewQuotations View = 2
	ViewInvoices   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	quotations := quotationStore.New()
	invoices := invoiceStore.New()

	invoiceSvc := invoice.NewService(invoices, invoice.LogNotifier{})
	quotationSvc := quotation.NewService(quotations, invoiceSvc)

	// The terminal client always starts on the demo dataset.
	if err := seed.Demo(context.Background(), quotations, invoices); err != nil {
		slog.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}

	return model{
		quotationService: quotationSvc,
		invoiceService:   invoiceSvc,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(quotationSvc, invoiceSvc),
		quotationsView:   view.NewQuotationsModel(quotationSvc),
		invoicesView:     view.NewInvoicesModel(invoiceSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.quotationService, m.invoiceService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewQuotations
				m.quotationsView = view.NewQuotationsModel(m.quotationService)

				return m, m.quotationsView.Init()
			case "3":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService)

				return m, m.invoicesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewQuotations:
		var newModel tea.Model
		newModel, cmd = m.quotationsView.Update(msg)
		m.quotationsView = newModel.(view.QuotationsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Orthobill\n\n" +
				"1. Dashboard\n" +
				"2. Quotations\n" +
				"3. Invoices\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewQuotations:
		return m.quotationsView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
