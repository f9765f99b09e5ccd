package introspect

import (
	"regexp"
	"sync"
)

// DefaultAccessorPattern matches exported accessor names and strips an
// optional Is/Get prefix.
const DefaultAccessorPattern = `^(?:Is|Get)?([A-Z].*)$`

var patternCache sync.Map // string -> *regexp.Regexp

// compilePattern returns the compiled pattern, or nil for the empty pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// displayName applies re to ident. A match yields the first capture group when
// the pattern has one, otherwise the identifier itself.
func displayName(re *regexp.Regexp, ident string) (string, bool) {
	if re == nil {
		return ident, true
	}
	m := re.FindStringSubmatch(ident)
	if m == nil {
		return "", false
	}
	if re.NumSubexp() >= 1 {
		return m[1], true
	}
	return ident, true
}
