package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

type QuotationsModel struct {
	CommonModel
	svc *quotation.Service

	table table.Model
	items []*quotation.Quotation

	statusFilterIdx int
	filter          quotation.ListFilter
	loading         bool
	err             error
	status          string
}

func NewQuotationsModel(svc *quotation.Service) QuotationsModel {
	columns := []table.Column{
		{Title: "Link No", Width: 10},
		{Title: "Date", Width: 12},
		{Title: "Claimant", Width: 24},
		{Title: "Title", Width: 28},
		{Title: "Total", Width: 14},
		{Title: "Status", Width: 10},
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

	return QuotationsModel{
		svc:    svc,
		table:  t,
		filter: quotation.ListFilter{},
	}
}

func (m QuotationsModel) Title() string { return "Quotations" }
func (m QuotationsModel) ShortHelp() string {
	return "Esc: back | s: submit | a: approve | d: return to draft | c: convert | x: delete | f: filter | r: refresh"
}

func (m QuotationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m QuotationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quotationsLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.refreshTable()

		return m, nil

	case quotationActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()

			return m, m.loadCmd()
		case "s":
			return m, m.actionCmd("submitted", (*quotation.Service).Submit)
		case "a":
			return m, m.actionCmd("approved", (*quotation.Service).Approve)
		case "d":
			return m, m.actionCmd("returned to draft", (*quotation.Service).ReturnToDraft)
		case "c":
			return m, m.actionCmd("converted to invoice", (*quotation.Service).Convert)
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m QuotationsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading quotations...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filterLabels := []string{"All", "Draft", "Pending", "Approved", "Converted"}
	header := fmt.Sprintf("Filter: [f] Status: %s", activeStyle(filterLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *QuotationsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		s := quotation.StatusDraft
		m.filter.Status = &s
	case 2:
		s := quotation.StatusPending
		m.filter.Status = &s
	case 3:
		s := quotation.StatusApproved
		m.filter.Status = &s
	case 4:
		s := quotation.StatusConverted
		m.filter.Status = &s
	default:
		m.filter.Status = nil
	}
}

func (m *QuotationsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, q := range m.items {
		rows = append(rows, table.Row{
			q.LinkNo,
			FormatDate(q.Date),
			q.ClaimantName,
			q.Title,
			FormatRand(q.Total),
			string(q.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m QuotationsModel) selected() (uuid.UUID, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return uuid.Nil, false
	}

	return m.items[idx].ID, true
}

// Messages

type quotationsLoadMsg struct {
	items []*quotation.Quotation
	err   error
}

func (m QuotationsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		items, err := m.svc.List(ctx, m.filter)

		return quotationsLoadMsg{items: items, err: err}
	}
}

type quotationActionMsg struct {
	status string
	err    error
}

func (m QuotationsModel) actionCmd(verb string, op func(*quotation.Service, context.Context, uuid.UUID) (*quotation.Quotation, error)) tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		q, err := op(m.svc, ctx, id)
		if err != nil {
			return quotationActionMsg{err: err}
		}

		return quotationActionMsg{status: fmt.Sprintf("Quotation %s %s", q.LinkNo, verb)}
	}
}

func (m QuotationsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	q := m.items[idx]

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, q.ID); err != nil {
			return quotationActionMsg{err: err}
		}

		return quotationActionMsg{status: fmt.Sprintf("Quotation %s deleted", q.LinkNo)}
	}
}
