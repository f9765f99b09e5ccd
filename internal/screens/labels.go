package screens

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// caserWrapper lets a cases.Caser live in a sync.Pool.
type caserWrapper struct {
	caser cases.Caser
}

// cases.Caser is stateful, so each goroutine borrows its own.
var titleCaserPool = sync.Pool{
	New: func() any {
		return &caserWrapper{caser: cases.Title(language.English)}
	},
}

// acronyms keep their case inside constant labels.
var acronyms = map[string]bool{
	"AC": true, "USB": true, "HDR": true, "LTR": true, "RTL": true,
	"QWERTY": true, "DPAD": true, "UI": true, "GOOS": true, "GOARCH": true,
}

// constantLabel turns a constant name such as "NOT_CHARGING" into
// "Not Charging". Known acronyms ("USB") are kept as they are.
func constantLabel(name string) string {
	if name == "" {
		return ""
	}
	w := titleCaserPool.Get().(*caserWrapper)
	defer titleCaserPool.Put(w)

	words := strings.Split(name, "_")
	for i, word := range words {
		if !acronyms[word] {
			words[i] = w.caser.String(word)
		}
	}
	return strings.Join(words, " ")
}

// labelOverrides are identifiers the camel-case split gets wrong.
var labelOverrides = map[string]string{
	"IPv4":         "IPv4",
	"IPv6":         "IPv6",
	"HardwareAddr": "Hardware Address",
	"Addrs":        "Addresses",
}

// fieldLabel splits a Go identifier into words: "ScreenWidthDp" becomes
// "Screen Width Dp" and "UIMode" becomes "UI Mode".
func fieldLabel(name string) string {
	if label, ok := labelOverrides[name]; ok {
		return label
	}
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
