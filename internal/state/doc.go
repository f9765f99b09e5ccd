// Package state holds the latest probe snapshot shared between the background
// poller and the UI.
//
// The poller is the single writer and calls Update after each collection; the
// UI reads with Snapshot on its own tick. Both directions copy the slices and
// maps of the probe data, so neither side can observe the other's mutations.
//
// When a collection fails, Update keeps the previous data and records the
// error, so the UI keeps showing the last good snapshot:
//
//	store.Update(&snap, nil) // replaces Data, clears LastError
//	store.Update(nil, err)   // keeps Data, sets LastError, counts the failure
//
// ConsecutiveFailures drives the poller's backoff and the stale indicator in
// the status bar. The zero Store is ready to use.
package state
