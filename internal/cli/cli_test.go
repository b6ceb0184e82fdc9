package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/five82/pantry/internal/config"
	"github.com/five82/pantry/internal/grocytest"
)

// runCLI executes one pantry invocation against srv with an isolated HOME.
func runCLI(t *testing.T, srv *grocytest.Server, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvPath, "")
	t.Setenv(config.EnvVerifySSL, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvLogFile, filepath.Join(home, "pantry.log"))
	if srv != nil {
		t.Setenv(config.EnvURL, srv.Host())
		t.Setenv(config.EnvPort, strconv.Itoa(srv.Port()))
		t.Setenv(config.EnvAPIKey, "test-key")
	} else {
		t.Setenv(config.EnvURL, "")
		t.Setenv(config.EnvPort, "")
		t.Setenv(config.EnvAPIKey, "")
	}

	buf := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(home, "missing.env")}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func decodeList(t *testing.T, out string) []map[string]any {
	t.Helper()
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a JSON list: %v\n%s", err, out)
	}
	return got
}

func decodeObject(t *testing.T, out string) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	return got
}

func ids(records []map[string]any) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		id, _ := r["id"].(float64)
		out = append(out, int(id))
	}
	return out
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, nil, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "dashboard") || !strings.Contains(out, "--output") {
		t.Fatalf("help output missing commands or flags:\n%s", out)
	}
}

func TestMissingURLFails(t *testing.T) {
	_, err := runCLI(t, nil, "stock")
	if err == nil || !strings.Contains(err.Error(), "grocy url is not set") {
		t.Fatalf("err = %v, want missing url error", err)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	srv := grocytest.NewServer(t)
	_, err := runCLI(t, srv, "-o", "xml", "stock")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("err = %v, want unknown output format", err)
	}
	if n := srv.Count("GET", "stock"); n != 0 {
		t.Fatalf("stock requests = %d, want 0", n)
	}
}

func TestStock(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "-o", "json", "stock")
	if err != nil {
		t.Fatalf("stock: %v", err)
	}
	got := decodeList(t, out)
	if len(got) != 2 || got[1]["name"] != "Cheese" {
		t.Fatalf("stock = %v", got)
	}

	out, err = runCLI(t, srv, "stock")
	if err != nil {
		t.Fatalf("stock table: %v", err)
	}
	if !strings.Contains(out, "Cheese") || !strings.Contains(out, "BEST BEFORE") {
		t.Fatalf("table output:\n%s", out)
	}
}

func TestStockSections(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "-o", "json", "stock", "--expired")
	if err != nil {
		t.Fatalf("stock --expired: %v", err)
	}
	if got := ids(decodeList(t, out)); len(got) != 1 || got[0] != 10 {
		t.Fatalf("expired ids = %v, want [10]", got)
	}

	out, err = runCLI(t, srv, "-o", "json", "stock", "--missing")
	if err != nil {
		t.Fatalf("stock --missing: %v", err)
	}
	if got := ids(decodeList(t, out)); len(got) != 1 || got[0] != 7 {
		t.Fatalf("missing ids = %v, want [7]", got)
	}

	if _, err := runCLI(t, srv, "stock", "--due", "--expired"); err == nil {
		t.Fatalf("stock --due --expired returned nil error")
	}
}

func TestProductAddByBarcode(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "-o", "json", "product", "add", "--barcode", "4006040000019", "--amount", "2", "--best-before", "2030-01-31")
	if err != nil {
		t.Fatalf("product add: %v", err)
	}
	got := decodeList(t, out)
	if len(got) != 1 || got[0]["product_id"] != 6.0 || got[0]["transaction_type"] != "purchase" {
		t.Fatalf("booking = %v", got)
	}
	req, ok := srv.Last("POST", "stock/products/by-barcode/4006040000019/add")
	if !ok {
		t.Fatalf("no add-by-barcode request recorded")
	}
	if body := req.JSON(); body["amount"] != 2.0 || body["best_before_date"] != "2030-01-31" {
		t.Fatalf("request body = %v", body)
	}
	if _, has := req.JSON()["price"]; has {
		t.Fatalf("price sent without --price: %v", req.JSON())
	}
}

func TestProductTargetErrors(t *testing.T) {
	srv := grocytest.NewServer(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"none", []string{"product", "add"}, "a product id or --barcode is required"},
		{"both", []string{"product", "consume", "6", "--barcode", "123"}, "not both"},
		{"bad id", []string{"product", "open", "milk"}, "invalid product id"},
		{"bad date", []string{"product", "add", "6", "--best-before", "31.01.2030"}, "best-before"},
		{"inventory amount", []string{"product", "inventory", "6"}, "amount"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runCLI(t, srv, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestChores(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "-o", "yaml", "chores")
	if err != nil {
		t.Fatalf("chores: %v", err)
	}
	for _, want := range []string{"- id: 4", "name: Vacuum the living room", "- id: 6"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml missing %q:\n%s", want, out)
		}
	}
	if n := srv.Count("GET", "chores/4"); n != 0 {
		t.Fatalf("detail requests without --details = %d, want 0", n)
	}
}

func TestChoreExecute(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "chore", "execute", "4", "--skipped", "--done-by", "1")
	if err != nil {
		t.Fatalf("chore execute: %v", err)
	}
	if strings.TrimSpace(out) != "Chore 4 skipped." {
		t.Fatalf("output = %q", out)
	}
	req, ok := srv.Last("POST", "chores/4/execute")
	if !ok {
		t.Fatalf("no execute request recorded")
	}
	body := req.JSON()
	if body["skipped"] != true || body["done_by"] != 1.0 {
		t.Fatalf("request body = %v", body)
	}
	if _, has := body["tracked_time"]; has {
		t.Fatalf("tracked_time sent without --at: %v", body)
	}
}

func TestTasksFilterAndComplete(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "--filter", "done=0", "-o", "json", "tasks")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	got := decodeList(t, out)
	if ids := ids(got); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("open task ids = %v, want [1]", ids)
	}
	if got[0]["category"] != "Home" {
		t.Fatalf("category = %v, want Home", got[0]["category"])
	}

	if _, err := runCLI(t, srv, "task", "complete", "1", "--at", "2022-07-21 08:30"); err != nil {
		t.Fatalf("task complete: %v", err)
	}
	req, ok := srv.Last("POST", "tasks/1/complete")
	if !ok {
		t.Fatalf("no complete request recorded")
	}
	if done, _ := req.JSON()["done_time"].(string); !strings.HasPrefix(done, "2022-07-21T08:30:00") {
		t.Fatalf("done_time = %q", done)
	}

	out, err = runCLI(t, srv, "--filter", "done=0", "-o", "json", "tasks")
	if err != nil {
		t.Fatalf("tasks after complete: %v", err)
	}
	if got := decodeList(t, out); len(got) != 0 {
		t.Fatalf("open tasks after complete = %v, want none", got)
	}
}

func TestBatteryCharge(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "-o", "json", "battery", "charge", "1")
	if err != nil {
		t.Fatalf("battery charge: %v", err)
	}
	if got := decodeObject(t, out); got["battery_id"] != 1.0 {
		t.Fatalf("output = %v", got)
	}
	if n := srv.Count("POST", "batteries/1/charge"); n != 1 {
		t.Fatalf("charge requests = %d, want 1", n)
	}
}

func TestShoppingAddThenList(t *testing.T) {
	srv := grocytest.NewServer(t)

	if _, err := runCLI(t, srv, "shopping", "add", "6", "--amount", "3", "--note", "Weekly"); err != nil {
		t.Fatalf("shopping add: %v", err)
	}
	out, err := runCLI(t, srv, "-o", "json", "shopping", "list")
	if err != nil {
		t.Fatalf("shopping list: %v", err)
	}
	got := decodeList(t, out)
	if len(got) != 4 {
		t.Fatalf("rows = %d, want 4", len(got))
	}
	last := got[3]
	if last["note"] != "Weekly" || last["amount"] != 3.0 || last["product_id"] != 6.0 {
		t.Fatalf("added row = %v", last)
	}
}

func TestGenericRoundTrip(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "-o", "json", "generic", "add", "locations", `{"name":"Cellar"}`)
	if err != nil {
		t.Fatalf("generic add: %v", err)
	}
	created := decodeObject(t, out)
	id, _ := created["id"].(float64)
	if id == 0 {
		t.Fatalf("created = %v", created)
	}

	out, err = runCLI(t, srv, "-o", "json", "generic", "get", "locations", strconv.Itoa(int(id)))
	if err != nil {
		t.Fatalf("generic get: %v", err)
	}
	if got := decodeObject(t, out); got["name"] != "Cellar" {
		t.Fatalf("object = %v", got)
	}

	if _, err := runCLI(t, srv, "generic", "list", "cellars"); err == nil || !strings.Contains(err.Error(), "Entity does not exist") {
		t.Fatalf("err = %v, want server rejection", err)
	}
	if srv.Count(http.MethodGet, "objects/cellars") != 1 {
		t.Fatal("objects/cellars not requested")
	}
	if _, err := runCLI(t, srv, "generic", "list", "a/b"); err == nil || !strings.Contains(err.Error(), "invalid entity") {
		t.Fatalf("err = %v, want invalid entity", err)
	}
	if _, err := runCLI(t, srv, "generic", "add", "locations", "name=Cellar"); err == nil {
		t.Fatalf("non-JSON fields returned nil error")
	}
}

func TestSystem(t *testing.T) {
	srv := grocytest.NewServer(t)

	out, err := runCLI(t, srv, "system", "info")
	if err != nil {
		t.Fatalf("system info: %v", err)
	}
	if !strings.Contains(out, "3.3.1") {
		t.Fatalf("system info output:\n%s", out)
	}

	out, err = runCLI(t, srv, "-o", "json", "system", "changed")
	if err != nil {
		t.Fatalf("system changed: %v", err)
	}
	changed, _ := decodeObject(t, out)["changed"].(string)
	if _, err := time.Parse(time.RFC3339, changed); err != nil {
		t.Fatalf("changed = %q: %v", changed, err)
	}
}

func TestDashboardRejectsStructuredOutput(t *testing.T) {
	srv := grocytest.NewServer(t)
	_, err := runCLI(t, srv, "-o", "json", "dashboard")
	if err == nil || !strings.Contains(err.Error(), "dashboard does not support") {
		t.Fatalf("err = %v, want dashboard format error", err)
	}
}

func TestParseWhen(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: time.Time{}},
		{in: "2022-07-21", want: time.Date(2022, 7, 21, 0, 0, 0, 0, time.Local)},
		{in: "2022-07-21 08:30", want: time.Date(2022, 7, 21, 8, 30, 0, 0, time.Local)},
		{in: "2022-07-21 08:30:15", want: time.Date(2022, 7, 21, 8, 30, 15, 0, time.Local)},
		{in: "yesterday", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseWhen(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseWhen(%q) returned nil error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWhen(%q) returned error: %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("parseWhen(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
