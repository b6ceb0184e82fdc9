// Package output renders command results as tables, JSON or YAML.
//
// Every builder (Products, Chores, Tasks, ...) returns a Result that carries
// both forms: exported record structs with json/yaml tags for the structured
// formats, and header/row strings for the table. Printer picks one.
//
// Tables use lipgloss/table. When stdout is a terminal they get a rounded
// border and a coloured header; when piped they are plain space-aligned
// columns so awk and cut keep working. JSON is indented by two spaces and
// an empty list prints as [] rather than null.
//
// Generic objects from the objects API hold json.Number values; they are
// converted to Go numbers first so YAML prints 2 and not "2".
package output
