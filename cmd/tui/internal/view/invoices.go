package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/quotation"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStatePayment
)

type InvoicesModel struct {
	CommonModel
	svc *invoice.Service

	state invoicesState
	table table.Model
	items []*invoice.Invoice
	form  *huh.Form

	statusFilterIdx int
	filter          invoice.ListFilter
	loading         bool
	err             error
	status          string

	// Form binding
	formAmount string
}

func NewInvoicesModel(svc *invoice.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Invoice No", Width: 14},
		{Title: "Date", Width: 12},
		{Title: "Claimant", Width: 24},
		{Title: "Total", Width: 14},
		{Title: "Due", Width: 14},
		{Title: "Status", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		svc:    svc,
		table:  t,
		filter: invoice.ListFilter{},
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStatePayment {
		return "Enter: record | Esc: cancel"
	}

	return "Esc: back | p: record payment | n: send reminder | f: filter | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoicesLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStatePayment:
		return m.updatePayment(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()

			return m, m.loadCmd()
		case "p":
			return m.enterPaymentMode()
		case "n":
			return m, m.reminderCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterPaymentMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return m, nil
	}

	inv := m.items[idx]
	m.formAmount = inv.AmountDue.StringFixed(2)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Payment for %s (due %s)", inv.InvoiceNo, FormatRand(inv.AmountDue))).
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("enter a valid amount")
					}

					if !amount.IsPositive() || amount.GreaterThan(inv.AmountDue) {
						return fmt.Errorf("amount must be between 0.01 and %s", inv.AmountDue.StringFixed(2))
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = invoicesStatePayment
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updatePayment(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

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

	return m, m.paymentCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filterLabels := []string{"All", "Unpaid", "Partially Paid", "Paid", "Overdue"}
	header := fmt.Sprintf("Filter: [f] Status: %s", activeStyle(filterLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == invoicesStatePayment && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("Record Payment\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoicesModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		s := invoice.StatusUnpaid
		m.filter.PaymentStatus = &s
	case 2:
		s := invoice.StatusPartiallyPaid
		m.filter.PaymentStatus = &s
	case 3:
		s := invoice.StatusPaid
		m.filter.PaymentStatus = &s
	case 4:
		s := invoice.StatusOverdue
		m.filter.PaymentStatus = &s
	default:
		m.filter.PaymentStatus = nil
	}
}

func (m *InvoicesModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, 0, len(m.items))

	for _, inv := range m.items {
		status := string(inv.PaymentStatus)
		if inv.PaymentStatus == invoice.StatusOverdue {
			status = fmt.Sprintf("overdue (%dd)", inv.DaysOverdue(now))
		}

		rows = append(rows, table.Row{
			inv.InvoiceNo,
			FormatDate(inv.Date),
			inv.ClaimantName,
			FormatRand(inv.Total),
			FormatRand(inv.AmountDue),
			status,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type invoicesLoadMsg struct {
	items []*invoice.Invoice
	err   error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		items, err := m.svc.List(ctx, m.filter)

		return invoicesLoadMsg{items: items, err: err}
	}
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoicesModel) paymentCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	inv := m.items[idx]
	amount := quotation.ParsePrice(m.formAmount)

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		updated, err := m.svc.RecordPayment(ctx, inv.ID, amount)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf(
			"Payment of %s recorded against %s, %s outstanding",
			FormatRand(amount), updated.InvoiceNo, FormatRand(updated.AmountDue),
		)}
	}
}

func (m InvoicesModel) reminderCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	inv := m.items[idx]

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		updated, err := m.svc.SendReminder(ctx, inv.ID)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Reminder sent for %s", updated.InvoiceNo)}
	}
}
