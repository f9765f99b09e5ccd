// Package app wires configuration, logging, probes, the snapshot store and
// the TUI together.
//
// Run is the interactive entry point. It performs one collection before the
// TUI starts, because the first collection asks the terminal for its
// background colour and the TUI owns stdin afterwards. A Poller then
// refreshes the store in the background:
//
//	poller := NewPoller(store, env.Collector, cfg.PollInterval, log)
//	_ = poller.Refresh(ctx)
//	poller.Start(ctx)
//
// While collection keeps failing the wait between attempts doubles, up to
// 30 seconds, and returns to the configured interval after a success.
//
// Changes to config.toml are picked up by a config.Watcher: the poll
// interval and font directories apply immediately and the UI receives the
// new configuration for key width and hidden screens.
//
// Dump is the non-interactive path used by the dump command. It collects once
// and writes each screen as plain text or YAML.
package app
