// Package config loads pantry's connection and logging settings.
//
// # Overview
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults (see Default)
//  2. A TOML file, ~/.config/pantry/config.toml unless a path is given
//  3. Environment variables, optionally seeded from a .env file
//
// A missing config file is not an error. pantry works with nothing but
// GROCY_URL and GROCY_API_KEY in the environment.
//
// # Default Values
//
//   - Config file: ~/.config/pantry/config.toml
//   - Port: 9192
//   - verify_ssl: true
//   - timeout: 10s
//   - due_soon_days: 5
//   - log_level: info
//   - log_file: ~/.local/state/pantry/pantry.log
//
// # TOML Format
//
//	url = "https://grocy.example"
//	port = 443
//	path = "grocy"          # optional sub-path
//	api_key = "..."
//	verify_ssl = true
//	timeout = "10s"
//	due_soon_days = 5
//	log_level = "info"
//	log_file = "~/.local/state/pantry/pantry.log"
//
// All keys are optional. Strings are trimmed and "~" is expanded in
// log_file.
//
// # Environment
//
//	GROCY_URL  GROCY_PORT  GROCY_PATH  GROCY_API_KEY
//	GROCY_VERIFY_SSL  GROCY_TIMEOUT  PANTRY_LOG_LEVEL  PANTRY_LOG_FILE
//
// Empty variables are ignored. LoadDotEnv exports a .env file first;
// variables already present in the process environment are kept.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML and values that do
// not parse (ports, booleans, durations); the message names the offending
// key. Validate checks what a client needs before connecting.
//
// # Usage Example
//
//	if err := config.LoadDotEnv(""); err != nil {
//		return err
//	}
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	g, err := grocy.New(cfg.APIConfig(), grocy.WithDueSoonDays(cfg.DueSoonDays))
package config
