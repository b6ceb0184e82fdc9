// Package ui implements the pantry dashboard with Bubble Tea.
//
// # Overview
//
// The dashboard shows one household list at a time:
//
//	1 Stock      products in stock with due/overdue/expired/missing badges
//	2 Chores     next and last execution per chore
//	3 Tasks      open and done tasks with due dates
//	4 Batteries  last and next charge per battery
//	5 Shopping   shopping list rows with product names and notes
//	6 Logs       tail of pantry's own log file
//
// The header carries the connection state (connecting, online, retrying,
// offline after two failed polls) and counts of expired, overdue, due and
// missing products.
//
// # Data Flow
//
// The UI never talks to Grocy to read data. A tick every PollTick copies the
// latest state.Snapshot from the store filled by the app poller. Table rows
// are derived from the snapshot on each render, so a refresh never loses the
// selection unless the list shrank below it.
//
// The one write path is the act key (x or enter): on the Chores, Tasks and
// Batteries views it executes the chore, completes the task or charges the
// battery through grocy.Grocy. The result lands in the header; the next
// poll picks up the change.
//
// # Keys
//
//	1-6, tab, shift+tab   switch view
//	j/k, g/G              move selection (scroll in Logs)
//	x, enter              mark selected chore/task/battery done
//	space, L              Logs: toggle follow, cycle minimum level
//	T                     cycle theme (Nightfox, Kanagawa, Slate)
//	?                     help overlay
//	q, ctrl+c             quit
//
// The theme is saved when it changes and the current view when the
// dashboard quits; both are restored from prefs on the next start.
//
// # Rendering
//
// Tables use lipgloss/table with the selected row highlighted and the status
// column drawn as a colored badge. Only the rows that fit the terminal are
// rendered; the window follows the selection.
package ui
