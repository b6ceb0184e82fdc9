// Package parse coerces Grocy's loosely typed JSON scalars into Go values.
//
// # Overview
//
// Grocy is inconsistent about how it encodes numbers, booleans and
// timestamps. The same field may arrive as a JSON number, a numeric string,
// an empty string or null depending on the server version and endpoint.
// Every record in package api routes its scalars through this package so
// that the rest of the module only ever sees typed values.
//
// # Null Handling
//
// Absent, null and "" are equivalent everywhere in this package. Each
// coercion reports ok=false (or returns the caller's default) for all three.
// None of the functions panic or return an error for malformed input:
// garbage in is null out.
//
//   - Int / IntOr: integral numbers and numeric strings. Fractional values
//     are rejected, never truncated.
//   - Float / FloatOr: numbers and numeric strings.
//   - BoolFromInt: Grocy's 0/1 booleans, also accepting real JSON booleans.
//   - Date: ISO-8601 dates and date-times (see below).
//
// # Timestamps
//
// Grocy mostly sends naive local timestamps ("2019-04-22 09:54:15"), but
// some fields carry an explicit offset ("2019-04-22T09:54:15.835Z") and
// others are plain dates ("2019-04-22"). Time keeps that distinction:
//
//   - Naive reports that no offset was present. The wall clock is stored in
//     UTC unchanged; nothing is shifted.
//   - DateOnly reports that the value was a calendar date.
//   - Localize attaches time.Local to a naive value without moving the
//     wall clock, and converts a zoned value to the same instant in
//     time.Local.
//
// FormatGrocyTime renders the "YYYY-MM-DD HH:MM:SS" form Grocy expects in
// request bodies, dropping sub-second precision.
package parse
