package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/quotation"
	"github.com/kleinsmith/orthobill/internal/report"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	cardTitleStyle = lipgloss.NewStyle().Faint(true)
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

type DashboardModel struct {
	CommonModel
	quotations *quotation.Service
	invoices   *invoice.Service

	summary report.Summary
	funnel  []report.FunnelStage
	loading bool
	err     error
}

func NewDashboardModel(quotations *quotation.Service, invoices *invoice.Service) DashboardModel {
	return DashboardModel{
		quotations: quotations,
		invoices:   invoices,
		loading:    true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.summary = msg.summary
		m.funnel = msg.funnel

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

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Quotations", fmt.Sprintf("%d", m.summary.QuotationCount)),
		card("Invoices", fmt.Sprintf("%d", m.summary.InvoiceCount)),
		card("Outstanding", FormatRand(m.summary.Outstanding)),
		card("Collected", FormatRand(m.summary.Collected)),
		card("Overdue", fmt.Sprintf("%d", m.summary.OverdueCount)),
	)

	var funnel strings.Builder

	funnel.WriteString("Quotation funnel\n")

	for _, stage := range m.funnel {
		bar := strings.Repeat("█", int(stage.Percent.IntPart())/5)
		funnel.WriteString(fmt.Sprintf("%-11s %3d  %s\n", stage.Name, stage.Count, bar))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		funnel.String(),
		cardTitleStyle.Render(fmt.Sprintf("Conversion rate: %s%%", m.summary.ConversionRate.StringFixed(1))),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func card(title, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(title),
		cardValueStyle.Render(value),
	))
}

type dashboardLoadMsg struct {
	summary report.Summary
	funnel  []report.FunnelStage
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		qs, err := m.quotations.List(ctx, quotation.ListFilter{})
		if err != nil {
			return dashboardLoadMsg{err: err}
		}

		invs, err := m.invoices.List(ctx, invoice.ListFilter{})
		if err != nil {
			return dashboardLoadMsg{err: err}
		}

		now := time.Now()

		return dashboardLoadMsg{
			summary: report.Summarize(qs, invs, now),
			funnel:  report.Funnel(qs, invs, now),
		}
	}
}
