// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package recommend

import (
	"strconv"
	"strings"
)

// Budget thresholds in the menu's own currency units.
const (
	lowBudgetCeiling  = 18.0
	highBudgetFloor   = 25.0
	budgetMatchPoints = 8
)

// ParsePrice extracts a number from a display price such as "$15.50".
//
// Every character other than a digit or '.' is removed and the longest
// leading decimal number of what remains is parsed, so "$12.99 / $15" reads as
// 12.9915 the same way a lenient float parser would. ok is false when no digit
// survives ("Market Price", "", "...").
func ParsePrice(display string) (value float64, ok bool) {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	end := 0
	digits := 0
	seenDot := false
	for end < len(cleaned) {
		c := cleaned[end]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(cleaned[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
