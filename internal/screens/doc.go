// Package screens turns a probe.Snapshot into the rows of each tab.
//
// Every screen runs the same pipeline: fields and accessors are extracted
// with the introspect package, raw codes are expanded into constant names,
// values are formatted with the format package and the result is a slice of
// rows.Row with explicit identities such as "battery/BAT0/Status". Because
// identities do not depend on values, presenting a fresh snapshot to a
// rows.List updates changed rows in place.
package screens
