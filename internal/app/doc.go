// Package app is the composition root of the pantry dashboard.
//
// # Overview
//
// Run takes a ready grocy.Grocy (built by the CLI from config), starts the
// background poller and hands a shared state.Store to the bubbletea UI.
// It blocks until the user quits or the context is cancelled.
//
//	Run()
//	  |-- prefs.Load()     theme and last view
//	  |-- state.Store{}    shared between poller and UI
//	  |-- StartPoller()    background refresh loop
//	  `-- ui.Run()         dashboard (blocks)
//
// # Polling Behavior
//
// Every refresh first asks Grocy for its last database change time
// (system/db-changed-time). When the time equals the stored overview's, the
// snapshot is only marked fresh; otherwise stock, the volatile stock lists,
// chores, tasks, batteries and the shopping list are loaded again.
// Batteries and shopping-list rows are loaded with details so they carry
// names; the other lists already do.
//
// The default interval is 5 seconds. Failed refreshes back off
// exponentially (base * 2^failures) up to 30 seconds and are logged at warn
// level. The store keeps the last good overview and counts failures, which
// the UI shows as "offline" after two in a row.
//
// # Error Handling
//
// Run only fails for a missing client or when the UI program itself fails.
// Grocy errors during polling never stop the dashboard.
//
// # Usage Example
//
//	g, err := grocy.New(cfg.APIConfig(), grocy.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	return app.Run(ctx, app.Options{Grocy: g, Logger: logger, LogFile: cfg.LogFile})
package app
