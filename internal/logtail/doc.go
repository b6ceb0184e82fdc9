// Package logtail reads the end of pantry's log file for the dashboard.
//
// # Overview
//
// Read extracts the last N lines of a file with a ring buffer, so memory is
// bounded by N rather than by the file size. Parse and ParseLines decode the
// JSON lines written by internal/logging into Entry values; Format turns an
// entry back into one readable line and AtLeast filters by level.
//
// # Reading
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.ParseLines(lines) {
//		if e.AtLeast("info") {
//			fmt.Println(e.Format())
//		}
//	}
//
// A missing file is not an error; Read returns no lines. A non-positive
// limit returns the whole file.
//
// # Line Format
//
// Entries use the keys ts, level, logger and msg; every other key ends up
// in Fields as a string. Lines that are not JSON objects (a panic trace, a
// hand-edited file) are kept verbatim in Raw and always pass level filters.
//
// # Scope
//
// No file watching and no rotation handling. The dashboard re-reads the
// tail on every refresh tick.
package logtail
