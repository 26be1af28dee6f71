package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"workbench.dev/cli/internal/core/manager"
)

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive terminal browser for the plugin registry",
		Long: `Launch an interactive terminal view of every plugin manager: resolved
plugins, broken entry points and load generations. Press 'r' to rescan
the plugin directories and reload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newDashboardModel(container)
			program := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}
}

// dashboardModel holds the state for the Bubble Tea registry browser
type dashboardModel struct {
	container    *CLIContainer
	snapshots    []manager.Snapshot
	selectedRow  int
	lastUpdate   time.Time
	windowWidth  int
	windowHeight int
}

func newDashboardModel(container *CLIContainer) dashboardModel {
	return dashboardModel{
		container:  container,
		lastUpdate: time.Now(),
	}
}

// snapshotsMsg carries freshly read manager snapshots
type snapshotsMsg struct {
	snapshots []manager.Snapshot
}

func (m dashboardModel) loadSnapshotsCmd(reload bool) tea.Cmd {
	return func() tea.Msg {
		if reload {
			m.container.Plugins.Reload()
		} else {
			m.container.Plugins.CommandPlugins()
			m.container.Plugins.SyncHooks()
		}
		return snapshotsMsg{snapshots: m.container.Plugins.Snapshots()}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadSnapshotsCmd(false)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.selectedRow > 0 {
				m.selectedRow--
			}
			return m, nil

		case "down", "j":
			if m.selectedRow < m.rowCount()-1 {
				m.selectedRow++
			}
			return m, nil

		case "r":
			return m, m.loadSnapshotsCmd(true)
		}

	case snapshotsMsg:
		m.snapshots = msg.snapshots
		m.lastUpdate = time.Now()
		if m.selectedRow >= m.rowCount() {
			m.selectedRow = 0
		}
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) rowCount() int {
	n := 0
	for _, snap := range m.snapshots {
		n += len(snap.Plugins) + len(snap.Broken)
	}
	return n
}

func (m dashboardModel) View() string {
	header := m.renderHeader()
	body := m.renderManagers()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m dashboardModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("Workbench Plugin Registry")

	plugins, broken := 0, 0
	for _, snap := range m.snapshots {
		plugins += len(snap.Plugins)
		broken += len(snap.Broken)
	}

	summary := fmt.Sprintf("Managers: %d | Plugins: %d | Broken: %d | Updated: %s",
		len(m.snapshots), plugins, broken, m.lastUpdate.Format("15:04:05"))

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, "")
}

func (m dashboardModel) renderManagers() string {
	if len(m.snapshots) == 0 {
		return pluginDimStyle.Render("  Loading plugin managers...")
	}

	var sections []string
	row := 0
	for _, snap := range m.snapshots {
		title := fmt.Sprintf("%s (%s)", snap.Group, snap.Capability)
		if snap.Loaded {
			title += pluginDimStyle.Render("  gen " + shortGeneration(snap.Generation))
		}
		lines := []string{pluginGroupStyle.Render(title)}

		for _, info := range snap.Plugins {
			line := fmt.Sprintf("  %-24s %s", info.Name, info.Origin)
			if row == m.selectedRow {
				line = lipgloss.NewStyle().Background(lipgloss.Color("240")).Render(line)
			}
			lines = append(lines, line)
			row++
		}
		for _, b := range snap.Broken {
			line := pluginBrokenStyle.Render(fmt.Sprintf("  broken: %s", b.String()))
			if row == m.selectedRow {
				line = lipgloss.NewStyle().Background(lipgloss.Color("240")).Render(line)
			}
			lines = append(lines, line)
			row++
		}
		if len(snap.Plugins) == 0 && len(snap.Broken) == 0 {
			lines = append(lines, pluginDimStyle.Render("  no plugins"))
		}

		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m dashboardModel) renderFooter() string {
	controls := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Controls: [↑↓] Navigate | [r] Reload | [q] Quit")

	return lipgloss.JoinVertical(lipgloss.Left, "", controls)
}

func shortGeneration(generation string) string {
	if len(generation) > 8 {
		return generation[:8]
	}
	return generation
}
