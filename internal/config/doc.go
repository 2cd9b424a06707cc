// Package config loads lantern's TOML configuration.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lantern/config.toml
//  3. A missing file is not an error; defaults apply
//  4. LANTERN_API_URL and LANTERN_API_TOKEN override file values
//
// Load never validates. Callers run Validate before building any client so a
// missing base URL or token stops the process before the first request.
//
// # TOML Format
//
//	api_url = "https://cms.example.com"
//	api_token = "..."
//	expected_response_ms = 60000
//	intro_timeout_ms = 10000   # 0 disables the intro fallback
//	log_level = "info"
//	log_format = "console"
//	log_dir = "~/.local/state/lantern"
package config
