package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pantry/internal/logtail"
)

const logTailLines = 500

var levelCycle = []string{"debug", "info", "warn", "error"}

func (m Model) refreshLogs() tea.Cmd {
	if m.logFile == "" {
		return nil
	}
	path := m.logFile
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logsMsg{err: err}
		}
		return logsMsg{entries: logtail.ParseLines(lines)}
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.logViewport.GotoBottom()
			return m, m.refreshLogs()
		}
		return m, nil
	case key.Matches(msg, m.keys.CycleLevel):
		m.minLevel = nextLevel(m.minLevel)
		m.renderLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.follow = false
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		// Scrolling up pauses follow.
		m.follow = false
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func nextLevel(current string) string {
	for i, l := range levelCycle {
		if l == current {
			return levelCycle[(i+1)%len(levelCycle)]
		}
	}
	return levelCycle[0]
}

// renderLogViewport refreshes the viewport content from the parsed entries.
func (m *Model) renderLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.SetContent(m.formatLogs())
	if m.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) formatLogs() string {
	styles := m.theme.Styles()
	if m.logFile == "" {
		return styles.MutedText.Render("Logging to a file is disabled (set log_file in the config).")
	}

	var b strings.Builder
	for _, e := range m.logEntries {
		if !e.AtLeast(m.minLevel) {
			continue
		}
		if e.Raw != "" {
			b.WriteString(styles.Text.Render(e.Raw))
			b.WriteString("\n")
			continue
		}
		if !e.Time.IsZero() {
			b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
			b.WriteString(" ")
		}
		b.WriteString(styles.LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level))))
		if e.Logger != "" {
			b.WriteString(" ")
			b.WriteString(styles.AccentText.Render("[" + e.Logger + "]"))
		}
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		if len(e.Fields) > 0 {
			keys := make([]string, 0, len(e.Fields))
			for k := range e.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b.WriteString(styles.MutedText.Render(fmt.Sprintf(" %s=%s", k, e.Fields[k])))
			}
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return styles.MutedText.Render("No log entries at level " + m.minLevel + " or above.")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	follow := "off"
	if m.follow {
		follow = "on"
	}
	status := styles.FaintText.Render(fmt.Sprintf("follow %s · level >= %s · %s", follow, m.minLevel, m.logFile))

	vp := m.logViewport
	vp.Height = m.bodyHeight() - 1
	if vp.Height < 1 {
		vp.Height = 1
	}
	return status + "\n" + vp.View()
}
