package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bindgen/declare"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 15

type entry struct {
	kind    string
	name    string
	summary string
	details [][2]string
}

type browserModel struct {
	template string
	entries  []entry
	visible  []int
	filter   textinput.Model
	selected int
}

func newBrowserModel(graph *declare.Graph, name string) *browserModel {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Width = 40
	filter.Focus()

	m := &browserModel{
		template: name,
		entries:  graphEntries(graph),
		filter:   filter,
	}
	m.applyFilter()
	return m
}

func graphEntries(graph *declare.Graph) []entry {
	var entries []entry
	for _, t := range graph.Types() {
		row := typeRow(t)
		e := entry{kind: "type", name: t.Spelling(), summary: t.Kind().String()}
		for i, col := range typeColumns[1:] {
			e.details = append(e.details, [2]string{col, row[i+1]})
		}
		if t.Kind().IsPointer() {
			e.details = append(e.details, [2]string{"Indirection", fmt.Sprint(t.Indirection())})
		}
		entries = append(entries, e)
	}
	for _, def := range graph.Structs().All() {
		e := entry{kind: "struct", name: def.NativeName, summary: def.QualifiedName()}
		for _, m := range def.Members {
			typ := m.Type.Spelling()
			if m.Count > 0 {
				typ = fmt.Sprintf("%s[%d]", typ, m.Count)
			}
			e.details = append(e.details, [2]string{m.BindingName(), typ})
		}
		entries = append(entries, e)
	}
	for _, cb := range graph.Callbacks().All() {
		e := entry{kind: "callback", name: cb.Name, summary: cb.QualifiedName()}
		e.details = append(e.details, paramDetails(cb.Return, cb.Params)...)
		entries = append(entries, e)
	}
	for _, fn := range graph.Functions().All() {
		e := entry{kind: "function", name: fn.Name, summary: fn.Class}
		e.details = append(e.details, paramDetails(fn.Return, fn.Params)...)
		entries = append(entries, e)
	}
	return entries
}

func paramDetails(ret *nativetype.Type, params []registry.Param) [][2]string {
	details := [][2]string{{"returns", ret.Spelling()}}
	for _, p := range params {
		details = append(details, [2]string{p.Name, p.Type.Spelling()})
	}
	return details
}

func (m *browserModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if query == "" || strings.Contains(strings.ToLower(e.name), query) ||
			strings.Contains(strings.ToLower(e.summary), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil
		case "esc":
			if m.filter.Value() == "" {
				return m, tea.Quit
			}
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bindgen"))
	b.WriteString(" ")
	b.WriteString(m.template)
	b.WriteString(fmt.Sprintf(" (%d/%d)\n\n", len(m.visible), len(m.entries)))
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	start := 0
	if m.selected >= pageSize {
		start = m.selected - pageSize + 1
	}
	end := min(start+pageSize, len(m.visible))
	for i := start; i < end; i++ {
		e := m.entries[m.visible[i]]
		line := fmt.Sprintf("%-8s %s %s", e.kind, e.name, e.summary)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + fmt.Sprintf("%-8s %s %s", e.kind, nameStyle.Render(e.name), typeStyle.Render(e.summary)))
		}
		b.WriteString("\n")
	}

	if len(m.visible) > 0 {
		e := m.entries[m.visible[m.selected]]
		b.WriteString("\n")
		for _, d := range e.details {
			b.WriteString(fmt.Sprintf("  %-14s %s\n", d[0], typeStyle.Render(d[1])))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • esc clear/quit"))
	return b.String()
}

func runInteractive(graph *declare.Graph, name string) error {
	p := tea.NewProgram(newBrowserModel(graph, name), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
