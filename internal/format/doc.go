// Package format renders arbitrary values as display strings.
//
// Nil pointers and interfaces become "null". Slices, arrays and maps are
// joined using Options; their elements are rendered with DefaultOptions, so
// only the outermost container is affected by custom separators. Go maps are
// ordered by their rendered keys, while values implementing Pairs keep their
// own order. Values with no natural string form, such as plain structs,
// render as the empty string.
//
//	format.Format(map[string]int{"a": 1, "b": 2},
//		format.WithSeparator("; "), format.WithWrap("{", "}"), format.WithPairSeparator("="))
//	// {a=1; b=2}
package format
