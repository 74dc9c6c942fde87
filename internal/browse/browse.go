// Package browse provides an interactive terminal browser for a fetched
// commit list.
package browse

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitvitae/gitvitae/internal/commit"
	"github.com/gitvitae/gitvitae/internal/display"
)

var (
	listPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	detailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("255"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// model is the Bubble Tea model for the commit browser.
type model struct {
	commits []commit.Record
	cursor  int
	offset  int
	width   int
	height  int
}

// Run opens the interactive browser over the given commits.
func Run(commits []commit.Record) error {
	if len(commits) == 0 {
		fmt.Println("No commits to browse.")
		return nil
	}
	_, err := tea.NewProgram(model{commits: commits}, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.commits)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.commits) - 1
		}
		m.offset = clampOffset(m.cursor, m.offset, m.listHeight())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View implements tea.Model
func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	// Very narrow terminals still get usable (if cramped) panels.
	listWidth := max(m.width/2-2, 10)
	detailWidth := max(m.width-listWidth-4, 10)

	var list strings.Builder
	visible := m.commits[m.offset:min(m.offset+m.listHeight(), len(m.commits))]
	for i, r := range visible {
		line := display.Truncate(fmt.Sprintf("%s %s", shortHash(r.Hash), r.Subject), listWidth)
		if m.offset+i == m.cursor {
			line = selectedStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	selected := m.commits[m.cursor]
	var detail strings.Builder
	detail.WriteString(labelStyle.Render("Commit:") + " " + selected.Hash + "\n")
	detail.WriteString(labelStyle.Render("Date:") + "   " + selected.Date + "\n")
	detail.WriteString(labelStyle.Render("Author:") + " " + selected.AuthorName + " <" + selected.AuthorEmail + ">\n\n")
	detail.WriteString(selected.Subject + "\n")
	if body := strings.TrimSpace(selected.Body); body != "" {
		detail.WriteString("\n" + body + "\n")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		listPanelStyle.Width(listWidth).Height(m.listHeight()).Render(list.String()),
		detailPanelStyle.Width(detailWidth).Height(m.listHeight()).Render(detail.String()),
	)

	status := statusBarStyle.Width(m.width).Render(
		fmt.Sprintf("%d/%d  j/k: move  g/G: top/bottom  q: quit", m.cursor+1, len(m.commits)))

	return panels + "\n" + status
}

func (m model) listHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// clampOffset keeps the cursor inside the visible window.
func clampOffset(cursor, offset, height int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+height {
		return cursor - height + 1
	}
	return offset
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
