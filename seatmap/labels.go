// Package seatmap holds the seat-layout generator and the seat-picker core:
// natural label ordering, grid synthesis for the back office, and selection
// tracking for the storefront.
package seatmap

import (
	"strconv"
	"strings"
)

// SplitLabel breaks a seat label into its alphabetic row prefix and numeric
// column suffix. "A12" → ("A", 12, true). Labels without that shape report
// ok=false and are compared as plain strings.
func SplitLabel(label string) (row string, col int, ok bool) {
	label = strings.TrimSpace(label)
	i := 0
	for i < len(label) {
		ch := label[i]
		if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
			i++
			continue
		}
		break
	}
	if i == 0 || i == len(label) {
		return "", 0, false
	}
	col, err := strconv.Atoi(label[i:])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(label[:i]), col, true
}

// CompareLabels orders seat labels naturally: alphabetic row prefix first,
// numeric column second, so "A2" sorts before "A10". Row prefixes order by
// length before lexicographic value ("Z" before "AA"). Labels that do not
// parse sort after structured ones, by plain string comparison.
func CompareLabels(a string, b string) int {
	rowA, colA, okA := SplitLabel(a)
	rowB, colB, okB := SplitLabel(b)

	if okA != okB {
		if okA {
			return -1
		}
		return 1
	}
	if !okA {
		return strings.Compare(a, b)
	}
	if c := CompareRows(rowA, rowB); c != 0 {
		return c
	}
	if colA != colB {
		if colA < colB {
			return -1
		}
		return 1
	}
	return 0
}

// CompareRows orders row prefixes in spreadsheet order: A..Z, AA, AB, ...
func CompareRows(a string, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// RowLabel converts a zero-based row index to its prefix: 0 → "A",
// 25 → "Z", 26 → "AA".
func RowLabel(index int) string {
	if index < 0 {
		return ""
	}
	label := ""
	index++
	for index > 0 {
		index--
		label = string(rune('A'+index%26)) + label
		index /= 26
	}
	return label
}

// RowIndex is the inverse of RowLabel. Unparseable prefixes report -1.
func RowIndex(row string) int {
	row = strings.ToUpper(strings.TrimSpace(row))
	if row == "" {
		return -1
	}
	index := 0
	for _, ch := range row {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		index = index*26 + int(ch-'A') + 1
	}
	return index - 1
}
