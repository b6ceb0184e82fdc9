package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/state"
	"github.com/five82/pantry/parse"
)

// View represents the current active view.
type View int

const (
	ViewStock View = iota
	ViewChores
	ViewTasks
	ViewBatteries
	ViewShopping
	ViewLogs
)

var viewNames = []string{"Stock", "Chores", "Tasks", "Batteries", "Shopping", "Logs"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "Unknown"
	}
	return viewNames[v]
}

// viewByName resolves a stored view name, case-insensitively.
func viewByName(name string) (View, bool) {
	for i, n := range viewNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return View(i), true
		}
	}
	return ViewStock, false
}

const (
	statusOK      = "ok"
	statusDue     = "due"
	statusOverdue = "overdue"
	statusExpired = "expired"
	statusMissing = "missing"
	statusDone    = "done"
)

// row is one table line. id is the Grocy object id the row acts on.
type row struct {
	id     int
	cells  []string
	status string
}

func columns(v View) []string {
	switch v {
	case ViewStock:
		return []string{"ID", "Product", "Amount", "Best before", "Status"}
	case ViewChores:
		return []string{"ID", "Chore", "Next", "Last done", "Status"}
	case ViewTasks:
		return []string{"ID", "Task", "Due", "Category", "Status"}
	case ViewBatteries:
		return []string{"ID", "Battery", "Last charged", "Next charge", "Status"}
	case ViewShopping:
		return []string{"ID", "Item", "Amount", "Note"}
	default:
		return nil
	}
}

func rowsFor(v View, ov state.Overview, now time.Time) []row {
	switch v {
	case ViewStock:
		return stockRows(ov)
	case ViewChores:
		return choreRows(ov.Chores, now)
	case ViewTasks:
		return taskRows(ov.Tasks, now)
	case ViewBatteries:
		return batteryRows(ov.Batteries, now)
	case ViewShopping:
		return shoppingRows(ov.Shopping)
	default:
		return nil
	}
}

// stockRows lists stock with the volatile status of each product; missing
// products that have no stock entry are appended.
func stockRows(ov state.Overview) []row {
	status := map[int]string{}
	// Later sets win: a product both due and expired shows as expired.
	for _, set := range []struct {
		products []*grocy.Product
		status   string
	}{
		{ov.Due, statusDue},
		{ov.Overdue, statusOverdue},
		{ov.Expired, statusExpired},
	} {
		for _, p := range set.products {
			status[p.ID()] = set.status
		}
	}

	rows := make([]row, 0, len(ov.Stock)+len(ov.Missing))
	inStock := map[int]bool{}
	for _, p := range ov.Stock {
		inStock[p.ID()] = true
		s := status[p.ID()]
		if s == "" {
			s = statusOK
		}
		rows = append(rows, row{
			id:     p.ID(),
			cells:  []string{strconv.Itoa(p.ID()), nameOr(p.Name(), p.ID()), formatAmount(p.AvailableAmount()), formatDate(p.BestBeforeDate()), s},
			status: s,
		})
	}
	for _, p := range ov.Missing {
		if inStock[p.ID()] {
			continue
		}
		rows = append(rows, row{
			id:     p.ID(),
			cells:  []string{strconv.Itoa(p.ID()), nameOr(p.Name(), p.ID()), "-" + formatAmount(p.AmountMissing()), "", statusMissing},
			status: statusMissing,
		})
	}
	return rows
}

func choreRows(chores []*grocy.Chore, now time.Time) []row {
	rows := make([]row, 0, len(chores))
	for _, c := range chores {
		s := scheduleStatus(c.NextEstimatedExecutionTime(), now)
		rows = append(rows, row{
			id:     c.ID(),
			cells:  []string{strconv.Itoa(c.ID()), nameOr(c.Name(), c.ID()), formatTime(c.NextEstimatedExecutionTime()), formatTime(c.LastTrackedTime()), s},
			status: s,
		})
	}
	return rows
}

func taskRows(tasks []*grocy.Task, now time.Time) []row {
	rows := make([]row, 0, len(tasks))
	for _, t := range tasks {
		s := statusDone
		if !t.Done() {
			s = scheduleStatus(t.DueDate(), now)
		}
		category := ""
		if c := t.Category(); c != nil {
			category = c.Name()
		}
		rows = append(rows, row{
			id:     t.ID(),
			cells:  []string{strconv.Itoa(t.ID()), nameOr(t.Name(), t.ID()), formatDate(t.DueDate()), category, s},
			status: s,
		})
	}
	return rows
}

func batteryRows(batteries []*grocy.Battery, now time.Time) []row {
	rows := make([]row, 0, len(batteries))
	for _, b := range batteries {
		s := scheduleStatus(b.NextEstimatedChargeTime(), now)
		rows = append(rows, row{
			id:     b.ID(),
			cells:  []string{strconv.Itoa(b.ID()), nameOr(b.Name(), b.ID()), formatTime(b.LastTrackedTime()), formatTime(b.NextEstimatedChargeTime()), s},
			status: s,
		})
	}
	return rows
}

func shoppingRows(items []*grocy.ShoppingListProduct) []row {
	rows := make([]row, 0, len(items))
	for _, item := range items {
		name := ""
		if p := item.Product(); p != nil {
			name = p.Name()
		} else if id := item.ProductID(); id != nil {
			name = fmt.Sprintf("#%d", *id)
		}
		rows = append(rows, row{
			id:    item.ID(),
			cells: []string{strconv.Itoa(item.ID()), name, strconv.FormatFloat(item.Amount(), 'f', -1, 64), item.Note()},
		})
	}
	return rows
}

// scheduleStatus is overdue for a past time, due within the next day and
// ok otherwise (including no schedule at all). Naive Grocy times are read as
// local wall clock.
func scheduleStatus(next *parse.Time, now time.Time) string {
	if next == nil {
		return statusOK
	}
	at := parse.Localize(*next).Time
	switch {
	case at.Before(now):
		return statusOverdue
	case at.Before(now.Add(24 * time.Hour)):
		return statusDue
	default:
		return statusOK
	}
}

func nameOr(name string, id int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(t *parse.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *parse.Time) string {
	if t == nil {
		return ""
	}
	if t.DateOnly {
		return t.Format("2006-01-02")
	}
	return parse.Localize(*t).In(time.Local).Format("2006-01-02 15:04")
}
