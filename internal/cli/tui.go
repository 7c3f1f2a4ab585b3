package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/assetmap/pkg/mapping"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InspectModel - Interactive compound browser
// =============================================================================

// inspectRow is one browsable container: a compound, or the standalone
// pseudo-container when ID is zero.
type inspectRow struct {
	ID    mapping.ID
	Depth int
	Kind  string
	Name  string
}

// InspectModel is the bubbletea model for browsing a mapping.
type InspectModel struct {
	Result *mapping.Result
	Rows   []inspectRow
	Cursor int
	Height int
	Offset int

	members map[mapping.ID][]mapping.Instance
	edges   map[mapping.ID][]mapping.Edge
	labels  map[mapping.ID]string
}

// NewInspectModel creates a browser over res. Compounds are listed
// depth-first so nested groups follow their system.
func NewInspectModel(res *mapping.Result) InspectModel {
	m := InspectModel{
		Result:  res,
		Height:  15,
		members: make(map[mapping.ID][]mapping.Instance),
		edges:   make(map[mapping.ID][]mapping.Edge),
		labels:  make(map[mapping.ID]string),
	}

	children := make(map[mapping.ID][]mapping.Compound)
	var roots []mapping.Compound
	for _, c := range res.Compounds {
		if c.Parent.IsZero() {
			roots = append(roots, c)
		} else {
			children[c.Parent] = append(children[c.Parent], c)
		}
	}
	var walk func(c mapping.Compound, depth int)
	walk = func(c mapping.Compound, depth int) {
		m.Rows = append(m.Rows, inspectRow{ID: c.ID, Depth: depth, Kind: c.Kind.String(), Name: c.Name})
		for _, child := range children[c.ID] {
			walk(child, depth+1)
		}
	}
	for _, c := range roots {
		walk(c, 0)
	}

	parentOf := make(map[mapping.ID]mapping.ID, len(res.Instances))
	for _, in := range res.Instances {
		m.members[in.Parent] = append(m.members[in.Parent], in)
		m.labels[in.ID] = in.Label
		parentOf[in.ID] = in.Parent
	}
	if len(m.members[mapping.ID{}]) > 0 {
		m.Rows = append(m.Rows, inspectRow{Kind: "-", Name: "(standalone)"})
	}
	for _, e := range res.Edges {
		m.edges[parentOf[e.From]] = append(m.edges[parentOf[e.From]], e)
	}
	return m
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height/2 - 4
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// Selected returns the row under the cursor.
func (m InspectModel) Selected() (inspectRow, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return inspectRow{}, false
	}
	return m.Rows[m.Cursor], true
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Compounds"))
	b.WriteString(listDimStyle.Render("  pass " + m.Result.Pass))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty inventory)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := strings.Repeat("  ", r.Depth) + r.Name
		rows = append(rows, []string{cursor, r.Kind, name, strconv.Itoa(len(m.members[r.ID]))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "Name", "Instances").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// detail lists the instances of the selected container and the edges
// leaving them.
func (m InspectModel) detail() string {
	row, ok := m.Selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, in := range m.members[row.ID] {
		line := fmt.Sprintf("  %s %s", in.Label, listDimStyle.Render(in.ID.String()))
		if in.Classification != "" {
			line += " " + StyleHighlight.Render(in.Classification)
		}
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}
	for _, e := range m.edges[row.ID] {
		line := fmt.Sprintf("  %s %s %s", m.labels[e.From], iconArrow, m.labels[e.To])
		if e.Label != "" {
			line += " (" + e.Label + ")"
		}
		b.WriteString(listDimStyle.Render(line))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return listSelectedStyle.Render("  no direct instances") + "\n"
	}
	return b.String()
}
