package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mmcf/pkg/network"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// commodityArc is an arc a commodity may use, with its resolved cost.
type commodityArc struct {
	Arc      int
	From     int
	To       int
	Capacity float64
	Cost     float64
}

// commodityArcs groups the valid arcs of net by commodity.
func commodityArcs(net *network.Network) [][]commodityArc {
	out := make([][]commodityArc, net.Commodities())
	arcs := net.Arcs()
	for _, va := range net.ValidArcs() {
		cost, _ := net.Costs().CostOf(va.Arc, va.Commodity)
		out[va.Commodity] = append(out[va.Commodity], commodityArc{
			Arc:      va.Arc,
			From:     va.From,
			To:       va.To,
			Capacity: arcs[va.Arc].Capacity,
			Cost:     cost,
		})
	}
	return out
}

// =============================================================================
// CommodityListModel - Interactive commodity browser
// =============================================================================

// CommodityListModel is the bubbletea model behind inspect --interactive.
// The list view shows one row per commodity; enter opens the arcs the
// selected commodity may use.
type CommodityListModel struct {
	Report report
	Arcs   [][]commodityArc
	Cursor int
	Offset int
	Height int
	Detail bool
}

func newCommodityListModel(r report, arcs [][]commodityArc) CommodityListModel {
	return CommodityListModel{Report: r, Arcs: arcs, Height: 15}
}

func (m CommodityListModel) Init() tea.Cmd {
	return nil
}

func (m CommodityListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Report.Commodities)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Report.Commodities) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m CommodityListModel) View() string {
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Commodities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ arcs  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Report.Commodities))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		cr := m.Report.Commodities[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		capped := ""
		if cr.Capped {
			capped = iconWarning
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(cr.Commodity),
			strconv.Itoa(cr.Source),
			strconv.Itoa(cr.Target),
			strconv.FormatFloat(cr.Flow, 'g', -1, 64),
			strconv.Itoa(cr.ValidArcs),
			capped,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Commodity", "Source", "Target", "Flow", "Arcs", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Report.Commodities) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 6 {
				base = base.Foreground(colorYellow)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Report.Commodities))))
	return b.String()
}

func (m CommodityListModel) detailView() string {
	cr := m.Report.Commodities[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Commodity %d", cr.Commodity)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d → %d, flow %g  esc back", cr.Source, cr.Target, cr.Flow)))
	b.WriteString("\n\n")

	var rows [][]string
	if m.Cursor < len(m.Arcs) {
		for _, a := range m.Arcs[m.Cursor] {
			rows = append(rows, []string{
				strconv.Itoa(a.Arc),
				fmt.Sprintf("%d → %d", a.From, a.To),
				strconv.FormatFloat(a.Capacity, 'g', -1, 64),
				strconv.FormatFloat(a.Cost, 'g', -1, 64),
			})
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Arc", "Edge", "Capacity", "Cost").
		Rows(rows...)
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}
