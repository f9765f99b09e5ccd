// Package ui is the interactive terminal interface of mobileinfo, built on
// Bubble Tea.
//
// Each screen is a tab holding a rows.List and the rows.View rendered from
// it. On every tick the model reads the latest state.Snapshot, rebuilds the
// screens through screens.Builder and reconciles each list, so only rows
// whose content changed are re-rendered. All list mutations happen inside
// Update.
//
// # Files
//
//   - app.go: Model, messages, commands and Run
//   - keys.go: key bindings (bubbles/key)
//   - help.go: help overlay generated from the key map
//   - filter.go: fuzzy row filter (sahilm/fuzzy)
//   - theme.go: color themes and the row palette
//   - style_helpers.go, strings.go, layout.go: rendering helpers
//
// # Keys
//
// tab/shift+tab or 1-9 switch screens, j/k/g/G and the page keys move the
// selection, / filters rows, r refreshes immediately, T cycles the theme,
// h or ? shows help and q quits. The theme and the active screen are saved
// to the preferences file.
package ui
