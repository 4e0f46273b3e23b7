// Package labels encodes ordered label lists into a single delimited string.
package labels

import "strings"

// Delimiter separates labels. It must never appear inside a label.
const Delimiter = "|"

// Encode joins items with Delimiter. An empty list encodes to "".
func Encode(items []string) string {
	return strings.Join(items, Delimiter)
}

// Decode splits value on Delimiter. Empty input yields an empty list;
// empty components are kept as they are.
func Decode(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, Delimiter)
}

// Valid reports whether label can round-trip through Encode/Decode.
func Valid(label string) bool {
	return !strings.Contains(label, Delimiter)
}
