package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cl-runtime/cl"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// header and footer lines around the attribute viewport
const chromeLines = 6

type interactiveModel struct {
	err      error
	rt       *cl.Runtime
	nodes    []node
	filter   textinput.Model
	view     viewport.Model
	selected int
	width    int
	height   int
	state    modelState
	loaded   bool
}

// node is one platform or device in the browser.
type node struct {
	title  string
	handle string
	rows   []row
	depth  int
}

type modelState int

const (
	stateSelectNode modelState = iota
	stateShowAttrs
	stateFilter
)

func newInteractiveModel(rt *cl.Runtime) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "attribute or value"
	ti.Prompt = "/"
	ti.Width = 40

	return &interactiveModel{
		rt:     rt,
		filter: ti,
		view:   viewport.New(80, 20),
		state:  stateSelectNode,
	}
}

type loadedMsg struct {
	err   error
	nodes []node
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	rep, err := buildReport(m.rt)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{nodes: reportNodes(rep)}
}

func reportNodes(rep *report) []node {
	var nodes []node
	for _, p := range rep.Platforms {
		nodes = append(nodes, node{title: "Platform " + p.Name, handle: p.Handle, rows: p.Attributes})
		for _, d := range p.Devices {
			nodes = append(nodes, node{title: "Device " + d.Name, handle: d.Handle, rows: d.Attributes, depth: 1})
		}
	}
	return nodes
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectNode && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectNode && m.selected < len(m.nodes)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectNode && len(m.nodes) > 0 {
				m.state = stateShowAttrs
				m.refreshView()
				return m, nil
			}

		case "/":
			if m.state == stateShowAttrs {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "esc":
			if m.state == stateShowAttrs {
				m.state = stateSelectNode
				m.filter.SetValue("")
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-chromeLines, 1)

	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.nodes = msg.nodes
	}

	if m.state == stateShowAttrs {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.filter.Blur()
		m.state = stateShowAttrs
		m.refreshView()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshView()
	return m, cmd
}

func (m *interactiveModel) refreshView() {
	n := m.nodes[m.selected]
	m.view.SetContent(renderRows(filterRows(n.rows, m.filter.Value())))
	m.view.GotoTop()
}

func filterRows(rows []row, q string) []row {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	var out []row
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Value), q) {
			out = append(out, r)
		}
	}
	return out
}

func renderRows(rows []row) string {
	if len(rows) == 0 {
		return helpStyle.Render("no matching attributes")
	}
	var b strings.Builder
	writeRows(&b, rows, styles{
		title: titleStyle,
		label: typeStyle,
		value: resultStyle,
		fail:  errorStyle,
	}, "")
	return b.String()
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Querying platforms..."
	}
	if len(m.nodes) == 0 {
		return "No platforms found.\n\n" + helpStyle.Render("q quit")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CL Info"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%d objects", len(m.nodes)))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectNode:
		b.WriteString("Select a platform or device:\n\n")
		for i, n := range m.nodes {
			line := strings.Repeat("  ", n.depth) + n.title + " " + typeStyle.Render(n.handle)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + nodeStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • q quit"))

	case stateShowAttrs, stateFilter:
		n := m.nodes[m.selected]
		b.WriteString(nodeStyle.Render(n.title))
		b.WriteString(" ")
		b.WriteString(typeStyle.Render(n.handle))
		b.WriteString("\n")
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
		}
		b.WriteString("\n")
		b.WriteString(m.view.View())
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ scroll • / filter • esc back • q quit"))
		}
	}

	return b.String()
}

func runInteractive(rt *cl.Runtime) error {
	p := tea.NewProgram(newInteractiveModel(rt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
