package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/parse"
)

func stockProducts(t *testing.T) []*grocy.Product {
	t.Helper()
	group := 2
	entries := []api.CurrentStockResponse{
		{
			ProductID:      10,
			Amount:         5,
			BestBeforeDate: &parse.Time{Time: time.Date(2999, 12, 31, 0, 0, 0, 0, time.UTC), DateOnly: true, Naive: true},
			Product:        &api.ProductData{ID: 10, Name: "Cheese", ProductGroupID: &group},
		},
	}
	products := make([]*grocy.Product, 0, len(entries))
	for i := range entries {
		p, err := grocy.ProductFromStockEntry(&entries[i])
		if err != nil {
			t.Fatalf("ProductFromStockEntry: %v", err)
		}
		products = append(products, p)
	}
	return products
}

func lines(s string) [][]string {
	var out [][]string
	for _, line := range strings.Split(s, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			out = append(out, fields)
		}
	}
	return out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) returned nil error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPlainTable(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, FormatTable)
	if err := p.Print(Products(stockProducts(t))); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}

	out := buf.String()
	if strings.ContainsAny(out, "│╭─") {
		t.Fatalf("plain table has borders:\n%s", out)
	}
	got := lines(out)
	if len(got) != 2 {
		t.Fatalf("lines = %d, want header and one row:\n%s", len(got), out)
	}
	if got[0][0] != "ID" || got[0][1] != "NAME" {
		t.Fatalf("header = %v", got[0])
	}
	want := []string{"10", "Cheese", "5", "2999-12-31"}
	if !reflect.DeepEqual(got[1], want) {
		t.Fatalf("row = %v, want %v", got[1], want)
	}
}

func TestStyledTableHasBorder(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, FormatTable).Styled(true)
	if err := p.Print(Products(stockProducts(t))); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "╭") || !strings.Contains(buf.String(), "Cheese") {
		t.Fatalf("styled table = %q", buf.String())
	}
}

func TestEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatTable).Print(Products(nil)); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No results." {
		t.Fatalf("output = %q, want No results.", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).Print(Products(stockProducts(t))); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0]["name"] != "Cheese" || got[0]["available_amount"] != 5.0 || got[0]["best_before_date"] != "2999-12-31" {
		t.Fatalf("record = %v", got[0])
	}
	if _, ok := got[0]["amount_missing"]; ok {
		t.Fatalf("unset amount_missing should be omitted: %v", got[0])
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Fatalf("output not indented:\n%s", buf.String())
	}
}

func TestJSONNilSliceIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).Print(Result{Data: []ProductRecord(nil)}); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("output = %q, want []", got)
	}
}

func TestYAMLUsers(t *testing.T) {
	u, err := grocy.UserFromDto(&api.UserDto{ID: 42, Username: "admin", DisplayName: "admin"})
	if err != nil {
		t.Fatalf("UserFromDto: %v", err)
	}
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).Print(Users([]*grocy.User{u})); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"- id: 42", "  username: admin", "  display_name: admin"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "first_name") {
		t.Fatalf("empty first_name should be omitted:\n%s", out)
	}
}

func TestObjects(t *testing.T) {
	objects := []api.Object{
		{"amount": json.Number("2"), "id": json.Number("1"), "name": "Milk"},
		{"id": json.Number("2"), "note": "candles"},
	}
	r := Objects(objects)

	wantHeaders := []string{"id", "name", "amount", "note"}
	if !reflect.DeepEqual(r.Headers, wantHeaders) {
		t.Fatalf("Headers = %v, want %v", r.Headers, wantHeaders)
	}
	if !reflect.DeepEqual(r.Rows[1], []string{"2", "", "", "candles"}) {
		t.Fatalf("Rows[1] = %v", r.Rows[1])
	}

	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).Print(r); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "amount: 2\n") {
		t.Fatalf("json.Number should encode as a number:\n%s", buf.String())
	}
}

func TestDone(t *testing.T) {
	tests := []struct {
		format Format
		data   any
		want   string
	}{
		{format: FormatTable, want: "Chore 4 executed.\n"},
		{format: FormatJSON, want: "{\n  \"message\": \"Chore 4 executed.\"\n}\n"},
		{format: FormatJSON, data: map[string]int{"id": 7}, want: "{\n  \"id\": 7\n}\n"},
		{format: FormatYAML, want: "message: Chore 4 executed.\n"},
	}
	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(&buf, tc.format).Done("Chore 4 executed.", tc.data); err != nil {
				t.Fatalf("Done returned error: %v", err)
			}
			if buf.String() != tc.want {
				t.Fatalf("Done output = %q, want %q", buf.String(), tc.want)
			}
		})
	}
}

func TestFieldTablesSkipEmptyValues(t *testing.T) {
	r := DBChanged(time.Time{})
	if len(r.Rows) != 1 || r.Rows[0][1] != "" {
		t.Fatalf("DBChanged rows = %v", r.Rows)
	}

	u, err := grocy.UserFromDto(&api.UserDto{ID: 1, Username: "user"})
	if err != nil {
		t.Fatalf("UserFromDto: %v", err)
	}
	task, err := grocy.TaskFromResponse(&api.TaskResponse{ID: 3, Name: "Done task", Done: true})
	if err != nil {
		t.Fatalf("TaskFromResponse: %v", err)
	}
	res := Tasks([]*grocy.Task{task})
	if res.Rows[0][3] != "yes" {
		t.Fatalf("done cell = %q, want yes", res.Rows[0][3])
	}
	if got := userName(u); got != "user" {
		t.Fatalf("userName = %q, want username fallback", got)
	}
}
