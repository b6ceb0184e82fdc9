package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Lines used by the header, tabs and footer around the body.
const chromeHeight = 3

// Lines a bordered table spends on borders and its header row.
const tableChrome = 4

func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if m.currentView == ViewLogs {
		b.WriteString(m.renderLogs())
	} else {
		b.WriteString(m.renderTable())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{styles.Logo.Render("pantry")}
	switch {
	case snap.IsOffline():
		msg := fmt.Sprintf("offline (%d failures)", snap.ConsecutiveFailures)
		if snap.LastError != nil {
			msg += ": " + snap.LastError.Error()
		}
		parts = append(parts, styles.DangerText.Render(msg))
	case !snap.HasData && snap.LastError != nil:
		parts = append(parts, styles.WarningText.Render("retrying: "+snap.LastError.Error()))
	case !snap.HasData:
		parts = append(parts, styles.MutedText.Render("connecting..."))
	default:
		parts = append(parts, styles.SuccessText.Render("online"))
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, styles.MutedText.Render("updated "+snap.LastUpdated.Format("15:04:05")))
		}
	}

	if snap.HasData {
		ov := snap.Overview
		parts = append(parts,
			m.countBadge(len(ov.Expired), statusExpired),
			m.countBadge(len(ov.Overdue), statusOverdue),
			m.countBadge(len(ov.Due), statusDue),
			m.countBadge(len(ov.Missing), statusMissing),
		)
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, styles.DangerText.Render(m.status))
		} else {
			parts = append(parts, styles.InfoText.Render(m.status))
		}
	}

	line := strings.Join(filterEmpty(parts), "  ")
	return styles.Header.Width(m.width).Render(line)
}

// countBadge renders "2 expired" in the status color, or nothing for zero.
func (m Model) countBadge(n int, status string) string {
	if n == 0 {
		return ""
	}
	return m.theme.Styles().StatusStyle(status).Render(fmt.Sprintf("%d %s", n, status))
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if View(i) == m.currentView {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTable() string {
	styles := m.theme.Styles()
	rows := m.rows()
	if len(rows) == 0 {
		msg := "Nothing here."
		if !m.snapshot.HasData {
			msg = "Waiting for Grocy..."
		}
		return lipgloss.NewStyle().Height(m.bodyHeight()).Render(styles.MutedText.Padding(1, 2).Render(msg))
	}

	cols := columns(m.currentView)
	statusCol := -1
	if len(cols) > 0 && cols[len(cols)-1] == "Status" {
		statusCol = len(cols) - 1
	}

	sel := m.selected[m.currentView]
	visible := m.bodyHeight() - tableChrome
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if sel >= visible {
		offset = sel - visible + 1
	}
	end := offset + visible
	if end > len(rows) {
		end = len(rows)
	}
	window := rows[offset:end]

	cells := make([][]string, len(window))
	for i, r := range window {
		cells[i] = r.cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(cols...).
		Rows(cells...).
		Width(m.width).
		StyleFunc(func(r, c int) lipgloss.Style {
			switch {
			case r == table.HeaderRow:
				return styles.AccentText.Bold(true).Padding(0, 1)
			case r+offset == sel:
				return styles.Selected.Padding(0, 1)
			case c == statusCol && r < len(window):
				return styles.StatusStyle(window[r].status)
			default:
				return styles.Text.Padding(0, 1)
			}
		})
	return t.Render()
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	left := m.help.View(m.keys)
	right := styles.FaintText.Render(m.theme.Name)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Footer.Render(left + strings.Repeat(" ", gap) + right)
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	h := m.help
	h.ShowAll = true

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(h.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func filterEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
