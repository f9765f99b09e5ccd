// Package introspect turns runtime values and declared constant tables into
// ordered name→value mappings.
//
// # Strategies
//
// Three extraction strategies are provided:
//
//   - ExtractConstants reads a statically declared TypeDescriptor (Go cannot
//     enumerate constants at run time, so each type's constants are listed once
//     in a descriptor table and registered in a Registry).
//   - ExtractProperties calls exported zero-argument accessor methods through
//     reflection. Accessors may return (T) or (T, error).
//   - ExtractFields reads exported struct fields, including promoted ones.
//
// Every result is an AttributeMap: immutable, sorted by name, unique names.
//
// # Name patterns
//
// Name filters are regular expressions. When the pattern has a capture group,
// the first group becomes the display name:
//
//	in.ExtractConstants("BatteryManager", reflect.TypeFor[int](), "BATTERY_STATUS_(.*)")
//	// → {"CHARGING": 2, "FULL": 5, ...}
//
// # Symbol table
//
// Constant extractions are cached by SymbolTable for the lifetime of the
// process, keyed by (type, value type, pattern). Concurrent first use of one
// key computes the result once. The table is an ordinary value injected where
// it is needed; there is no package-level cache of constants.
//
// # Failures
//
// Nothing in this package returns an error. Inaccessible fields are skipped,
// failing accessors are logged and skipped, unknown types and constant misses
// yield empty maps or "".
package introspect
