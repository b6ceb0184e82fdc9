package ui

import (
	"testing"
	"time"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/state"
	"github.com/five82/pantry/parse"
)

func stockProduct(t *testing.T, id int, name string, amount float64) *grocy.Product {
	t.Helper()
	p, err := grocy.ProductFromStockEntry(&api.CurrentStockResponse{
		ProductID: id,
		Amount:    amount,
		Product:   &api.ProductData{ID: id, Name: name},
	})
	if err != nil {
		t.Fatalf("ProductFromStockEntry: %v", err)
	}
	return p
}

func missingProduct(t *testing.T, id int, name string, missing float64) *grocy.Product {
	t.Helper()
	p, err := grocy.ProductFromMissing(&api.MissingProductResponse{ProductID: id, Name: name, AmountMissing: &missing})
	if err != nil {
		t.Fatalf("ProductFromMissing: %v", err)
	}
	return p
}

func TestStockRows(t *testing.T) {
	milk := stockProduct(t, 1, "Milk", 2)
	cheese := stockProduct(t, 2, "Cheese", 0.5)
	bread := stockProduct(t, 3, "", 1)
	ov := state.Overview{
		Stock:   []*grocy.Product{milk, cheese, bread},
		Due:     []*grocy.Product{milk, cheese},
		Expired: []*grocy.Product{cheese},
		Missing: []*grocy.Product{missingProduct(t, 7, "XXXX", 3), missingProduct(t, 1, "Milk", 1)},
	}

	rows := stockRows(ov)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	tests := []struct {
		id     int
		name   string
		amount string
		status string
	}{
		{1, "Milk", "2", statusDue},
		{2, "Cheese", "0.5", statusExpired},
		{3, "#3", "1", statusOK},
		{7, "XXXX", "-3", statusMissing},
	}
	for i, tc := range tests {
		r := rows[i]
		if r.id != tc.id || r.cells[1] != tc.name || r.cells[2] != tc.amount || r.status != tc.status {
			t.Errorf("row %d = id %d %v (%s), want id %d %q %q %s", i, r.id, r.cells, r.status, tc.id, tc.name, tc.amount, tc.status)
		}
	}
}

func TestScheduleStatus(t *testing.T) {
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *parse.Time {
		return &parse.Time{Time: now.Add(d)}
	}

	tests := []struct {
		name string
		next *parse.Time
		want string
	}{
		{"no schedule", nil, statusOK},
		{"past", at(-time.Hour), statusOverdue},
		{"within a day", at(time.Hour), statusDue},
		{"later", at(48 * time.Hour), statusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scheduleStatus(tc.next, now); got != tc.want {
				t.Fatalf("scheduleStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTaskRows(t *testing.T) {
	now := time.Date(2022, 7, 21, 12, 0, 0, 0, time.UTC)
	due := parse.Time{Time: time.Date(2022, 7, 20, 0, 0, 0, 0, time.UTC), DateOnly: true, Naive: true}

	open, err := grocy.TaskFromResponse(&api.TaskResponse{
		ID:       1,
		Name:     "Repair the garage door",
		DueDate:  &due,
		Category: &api.TaskCategoryDto{ID: 1, Name: "Home"},
	})
	if err != nil {
		t.Fatalf("TaskFromResponse: %v", err)
	}
	done, err := grocy.TaskFromResponse(&api.TaskResponse{ID: 3, Name: "Buy new lamp", Done: true})
	if err != nil {
		t.Fatalf("TaskFromResponse: %v", err)
	}

	rows := taskRows([]*grocy.Task{open, done}, now)
	if rows[0].status != statusOverdue || rows[0].cells[2] != "2022-07-20" || rows[0].cells[3] != "Home" {
		t.Fatalf("open task row = %v (%s)", rows[0].cells, rows[0].status)
	}
	if rows[1].status != statusDone {
		t.Fatalf("done task status = %q, want done", rows[1].status)
	}
}

func TestShoppingRows(t *testing.T) {
	six := 6
	withID, _ := grocy.ShoppingListProductFromItem(&api.ShoppingListItem{ID: 1, ProductID: &six, Amount: 2})
	note, _ := grocy.ShoppingListProductFromItem(&api.ShoppingListItem{ID: 3, Note: "Birthday candles", Amount: 1})

	rows := shoppingRows([]*grocy.ShoppingListProduct{withID, note})
	if rows[0].cells[1] != "#6" || rows[0].cells[2] != "2" {
		t.Fatalf("row 0 = %v", rows[0].cells)
	}
	if rows[1].cells[1] != "" || rows[1].cells[3] != "Birthday candles" {
		t.Fatalf("row 1 = %v", rows[1].cells)
	}
}

func TestViewByName(t *testing.T) {
	if v, ok := viewByName(" chores "); !ok || v != ViewChores {
		t.Fatalf("viewByName(chores) = %v, %v", v, ok)
	}
	if v, ok := viewByName("bogus"); ok || v != ViewStock {
		t.Fatalf("viewByName(bogus) = %v, %v, want Stock, false", v, ok)
	}
	if got := View(42).String(); got != "Unknown" {
		t.Fatalf("View(42).String() = %q", got)
	}
}

func TestColumnsMatchRows(t *testing.T) {
	ov := state.Overview{Stock: []*grocy.Product{stockProduct(t, 1, "Milk", 1)}}
	for _, v := range []View{ViewStock, ViewChores, ViewTasks, ViewBatteries, ViewShopping} {
		for _, r := range rowsFor(v, ov, time.Now()) {
			if len(r.cells) != len(columns(v)) {
				t.Fatalf("%s row has %d cells, want %d", v, len(r.cells), len(columns(v)))
			}
		}
	}
}
