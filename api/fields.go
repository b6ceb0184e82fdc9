package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/five82/pantry/parse"
)

// fields is a decoded JSON object whose values are coerced lazily. The first
// failure is kept in err so record decoders can read every field and check
// once at the end.
type fields struct {
	record string
	raw    map[string]json.RawMessage
	err    error
}

func decodeFields(record string, data []byte) (*fields, error) {
	f := &fields{record: record}
	if err := json.Unmarshal(data, &f.raw); err != nil {
		return nil, &ParseError{Record: record, Err: err}
	}
	return f, nil
}

func (f *fields) fail(field string, err error) {
	if f.err == nil {
		f.err = &ParseError{Record: f.record, Field: field, Err: err}
	}
}

func (f *fields) has(key string) bool {
	raw, ok := f.raw[key]
	return ok && !isNull(raw)
}

// value returns the scalar at key with numbers kept as json.Number.
func (f *fields) value(key string) any {
	raw, ok := f.raw[key]
	if !ok {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// first returns the first key present, for fields Grocy renamed between
// versions.
func (f *fields) first(keys ...string) string {
	for _, k := range keys {
		if f.has(k) {
			return k
		}
	}
	return keys[0]
}

func (f *fields) requiredInt(key string) int {
	raw := f.value(key)
	if isBlank(raw) {
		f.fail(key, ErrMissing)
		return 0
	}
	n, ok := parse.Int(raw)
	if !ok {
		f.fail(key, &valueError{raw: raw, want: "integer"})
	}
	return n
}

func (f *fields) optInt(key string) *int {
	n, ok := parse.Int(f.value(key))
	if !ok {
		return nil
	}
	return &n
}

func (f *fields) requiredFloat(key string) float64 {
	raw := f.value(key)
	if isBlank(raw) {
		f.fail(key, ErrMissing)
		return 0
	}
	v, ok := parse.Float(raw)
	if !ok {
		f.fail(key, &valueError{raw: raw, want: "number"})
	}
	return v
}

func (f *fields) optFloat(key string) *float64 {
	v, ok := parse.Float(f.value(key))
	if !ok {
		return nil
	}
	return &v
}

func (f *fields) floatOr(key string, def float64) float64 {
	return parse.FloatOr(f.value(key), def)
}

func (f *fields) boolInt(key string) bool {
	return parse.BoolFromInt(f.value(key))
}

func (f *fields) optBool(key string) *bool {
	if !f.has(key) {
		return nil
	}
	v := parse.BoolFromInt(f.value(key))
	return &v
}

// str returns text values as-is and numbers in their JSON spelling.
func (f *fields) str(key string) string {
	switch v := f.value(key).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (f *fields) requiredStr(key string) string {
	s := f.str(key)
	if s == "" {
		f.fail(key, ErrMissing)
	}
	return s
}

func (f *fields) time(key string) *parse.Time {
	t, ok := parse.Date(f.value(key))
	if !ok {
		return nil
	}
	return &t
}

func (f *fields) requiredTime(key string) parse.Time {
	raw := f.value(key)
	if isBlank(raw) {
		f.fail(key, ErrMissing)
		return parse.Time{}
	}
	t, ok := parse.Date(raw)
	if !ok {
		f.fail(key, &valueError{raw: raw, want: "timestamp"})
	}
	return t
}

// userfields passes Grocy's custom field map through untouched.
func (f *fields) userfields(key string) map[string]any {
	m, ok := f.value(key).(map[string]any)
	if !ok {
		return nil
	}
	return m
}

func (f *fields) decode(key string, dst any) bool {
	raw, ok := f.raw[key]
	if !ok || isNull(raw) {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if f.err == nil {
			f.err = err
		}
		return false
	}
	return true
}

// nested decodes an optional embedded object; null and absent give nil.
func nested[T any](f *fields, key string) *T {
	var v T
	if !f.decode(key, &v) {
		return nil
	}
	return &v
}

// list decodes an optional array; null and absent give an empty slice.
func list[T any](f *fields, key string) []T {
	var v []T
	if !f.decode(key, &v) {
		return []T{}
	}
	if v == nil {
		return []T{}
	}
	return v
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

type valueError struct {
	raw  any
	want string
}

func (e *valueError) Error() string {
	return "cannot use " + describe(e.raw) + " as " + e.want
}

func describe(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "value"
	}
	return string(b)
}
