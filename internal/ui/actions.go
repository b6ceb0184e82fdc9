package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pantry/api"
)

// actOnSelection marks the selected chore, task or battery as done. The
// poller notices the change through Grocy's db-changed-time.
func (m Model) actOnSelection() tea.Cmd {
	if m.grocy == nil {
		return nil
	}
	rows := m.rows()
	sel := m.selected[m.currentView]
	if sel < 0 || sel >= len(rows) {
		return nil
	}
	r := rows[sel]
	name := r.cells[1]
	g, ctx := m.grocy, m.ctx

	switch m.currentView {
	case ViewChores:
		return func() tea.Msg {
			err := g.ExecuteChore(ctx, r.id, api.ChoreExecution{})
			return actionMsg{text: fmt.Sprintf("chore %q executed", name), err: err}
		}
	case ViewTasks:
		if r.status == statusDone {
			return func() tea.Msg {
				return actionMsg{text: fmt.Sprintf("task %q is already done", name)}
			}
		}
		return func() tea.Msg {
			err := g.CompleteTask(ctx, r.id, time.Time{})
			return actionMsg{text: fmt.Sprintf("task %q completed", name), err: err}
		}
	case ViewBatteries:
		return func() tea.Msg {
			err := g.ChargeBattery(ctx, r.id, time.Time{})
			return actionMsg{text: fmt.Sprintf("battery %q charged", name), err: err}
		}
	default:
		return nil
	}
}
