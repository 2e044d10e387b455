// Package textutil holds the small string helpers shared by the
// directory and registration pages.
package textutil

import (
	"sort"
	"strings"
)

// PhoneMask rewrites raw input into the display form "(DD) DDDD-DDDD",
// shifting to "(DD) DDDDD-DDDD" once a ninth local digit arrives.
// Non-digits are stripped and digits beyond capacity are dropped.
func PhoneMask(raw string) string {
	var digits []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) > 11 {
		digits = digits[:11]
	}
	n := len(digits)
	s := string(digits)
	switch {
	case n <= 2:
		return s
	case n <= 6:
		return "(" + s[:2] + ") " + s[2:]
	case n == 11:
		return "(" + s[:2] + ") " + s[2:7] + "-" + s[7:]
	default:
		return "(" + s[:2] + ") " + s[2:6] + "-" + s[6:]
	}
}

// OrderStrings sorts list in place, comparing upper-cased values, and
// returns the same slice. Stable for equal keys.
func OrderStrings(list []string) []string {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToUpper(list[i]) < strings.ToUpper(list[j])
	})
	return list
}
