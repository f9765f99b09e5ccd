// Package config loads mobileinfo's TOML settings and watches them for
// changes.
//
// # Resolution
//
// Load reads the given path, or ~/.config/mobileinfo/config.toml when the path
// is empty. A missing file is not an error: Default values are returned.
// Fields that are absent or blank keep their defaults.
//
// # Fields
//
//	poll_interval  = "2s"        # snapshot cadence, at least 250ms
//	log_level      = "info"      # empty keeps logging silent
//	log_file       = "~/.local/state/mobileinfo/mobileinfo.log"
//	log_lines      = 400         # lines shown on the Logs screen
//	font_dirs      = ["~/fonts"] # extra font directories to scan
//	hidden_screens = ["logs"]    # screens left out of the tab bar
//	key_width      = 24          # width of the key column
//
// Paths starting with "~" are expanded against the home directory.
//
// # Reloading
//
// Watcher observes the directory holding the file, so editors that save by
// writing a temporary file and renaming it are picked up. Bursts of events
// are debounced before the file is parsed again; parse errors go to the error
// callback and the previous configuration stays in effect.
package config
