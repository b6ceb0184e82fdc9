// Package state shares the latest household overview between the dashboard
// poller and the UI.
//
// # Overview
//
// The poller fetches stock, chores, tasks, batteries and the shopping list
// from Grocy and hands the result to Store.Update. The UI reads
// Store.Snapshot on every tick. The Store is the only coordination point
// between the two goroutines.
//
//	poller goroutine              UI goroutine
//	  grocy.* calls                 ticker
//	      |                           |
//	  store.Update(ov, err) --->  store.Snapshot()
//	                                  |
//	                              render
//
// # Concurrency Model
//
// Update takes the write lock, Snapshot the read lock. Locks are held only
// while slices are copied, never during network I/O or rendering.
//
// # Update Semantics
//
//	store.Update(ov, nil)
//	  Overview = copy of ov, HasData = true, LastError = nil, failures = 0
//
//	store.Update(nil, err)
//	  Overview unchanged, LastError = err, failures++
//
// The dashboard therefore keeps showing the last good data while Grocy is
// unreachable. IsOffline reports two or more consecutive failures.
//
// # Copying
//
// Every slice in the Overview is copied on the way in and on the way out.
// The models themselves are shared pointers: the poller builds new models on
// each refresh and nothing calls FetchDetails on a stored one, so readers
// must treat them as read-only.
//
// # Zero Value
//
// A zero Store is ready to use and returns a zero Snapshot until the first
// Update.
package state
