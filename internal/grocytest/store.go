package grocytest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"testing"
)

func loadObjects(t testing.TB) map[string][]map[string]any {
	t.Helper()
	out := make(map[string][]map[string]any)
	entries, err := fs.ReadDir(fixtures, "fixtures/objects")
	if err != nil {
		t.Fatalf("read object fixtures: %v", err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(fixtures, path.Join("fixtures/objects", entry.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			t.Fatalf("decode %s: %v", entry.Name(), err)
		}
		out[strings.TrimSuffix(entry.Name(), ".json")] = rows
	}
	return out
}

func fixture(name string) ([]byte, error) {
	return fs.ReadFile(fixtures, path.Join("fixtures", name))
}

// fixtureByID decodes a fixture keyed by id and returns a copy of one entry.
func fixtureByID(name, id string) (map[string]any, bool) {
	data, err := fixture(name)
	if err != nil {
		return nil, false
	}
	var byID map[string]map[string]any
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, false
	}
	entry, ok := byID[id]
	return entry, ok
}

// idString normalizes string and numeric ids for comparison.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// find returns a copy of the row with id. Callers hold s.mu.
func (s *Server) find(entity, id string) (map[string]any, bool) {
	for _, row := range s.objects[entity] {
		if idString(row["id"]) == id {
			return clone(row), true
		}
	}
	return nil, false
}

func (s *Server) indexOf(entity, id string) int {
	for i, row := range s.objects[entity] {
		if idString(row["id"]) == id {
			return i
		}
	}
	return -1
}

func (s *Server) nextID(entity string) int {
	maxID := 0
	for _, row := range s.objects[entity] {
		if n, err := strconv.Atoi(idString(row["id"])); err == nil && n > maxID {
			maxID = n
		}
	}
	return maxID + 1
}

func (s *Server) where(entity, key, value string) []map[string]any {
	var out []map[string]any
	for _, row := range s.objects[entity] {
		if idString(row[key]) == value {
			out = append(out, clone(row))
		}
	}
	return out
}

func clone(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

type condition struct {
	field string
	op    string
	value string
}

var operators = []string{"!=", ">=", "<=", "=", "~", "<", ">"}

// parseConditions understands the subset of Grocy's query[] syntax the
// fixtures need. A condition without an operator is an error, mirroring
// the 500 Grocy answers with.
func parseConditions(raw []string) ([]condition, error) {
	out := make([]condition, 0, len(raw))
	for _, cond := range raw {
		matched := false
		for _, op := range operators {
			if i := strings.Index(cond, op); i > 0 {
				out = append(out, condition{field: cond[:i], op: op, value: cond[i+len(op):]})
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("invalid query condition %q", cond)
		}
	}
	return out, nil
}

func (c condition) match(row map[string]any) bool {
	got := idString(row[c.field])
	if c.op == "~" {
		return strings.Contains(strings.ToLower(got), strings.ToLower(c.value))
	}
	cmp := strings.Compare(got, c.value)
	gf, gerr := strconv.ParseFloat(got, 64)
	wf, werr := strconv.ParseFloat(c.value, 64)
	if gerr == nil && werr == nil {
		switch {
		case gf < wf:
			cmp = -1
		case gf > wf:
			cmp = 1
		default:
			cmp = 0
		}
	}
	switch c.op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	}
	return false
}

func filterRows(rows []map[string]any, conds []condition) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, c := range conds {
			if !c.match(row) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, clone(row))
		}
	}
	return out
}
