// Package rows holds the row model behind every screen and keeps it in sync
// with fresh content using minimal edits.
//
// # Rows
//
// A Row is a Header, a KeyValue or a Grid. Each row has an identity: the ID
// field when set, otherwise one derived from its structure ("kv:<key>" for a
// KeyValue). Identities are unique within a List.
//
// # Presenting content
//
// Screens rebuild their full row slice on every refresh and hand it to
// List.Present (or List.Reconcile, which also drops rows that disappeared).
// The list compares the batch with what it already shows and emits Inserted,
// Changed and Removed events. A row that only changed its value is updated in
// place; a row that moved is reported as one Changed event carrying the old
// index in From. There is no separate move event.
//
//	list := rows.NewList()
//	list.Present(rows.Header{Text: "Battery"}, rows.KeyValue{Key: "Status", Value: "Full"})
//	events := list.Present(rows.Header{Text: "Battery"}, rows.KeyValue{Key: "Status", Value: "Charging"})
//	// events == [{Changed 1 -1 kv:Status}]
//
// # Rendering
//
// View subscribes to a List and keeps one rendered block per row, re-rendering
// only the rows named by events. Key columns are aligned by terminal cell
// width so wide characters line up.
package rows
