package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Must aborts start-up on err.
func Must(err error) {
	if err != nil {
		logrus.Fatal(err)
	}
}

// SplitFields splits s on sep into exactly n trimmed, non-empty parts.
// The last part keeps any further separators.
func SplitFields(s, sep string, n int) ([]string, bool) {
	parts := strings.SplitN(s, sep, n)
	if len(parts) != n {
		return nil, false
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil, false
		}
	}
	return parts, true
}
