package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// cell returns the i-th column of a row or "" when the row is shorter.
// Sheets omit trailing empty cells, so short rows are normal.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseFlag implements the sheet boolean convention: the literal
// "true" in any letter case is true, everything else is false.
func parseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// nextSequenceID scans column A of the given rows for identifiers with
// the prefix, takes the largest numeric suffix and returns the next id
// zero-padded to four digits ("B0001", "O0042").  Malformed suffixes
// are skipped, never an error.  Uniqueness holds only under the
// single-writer assumption; concurrent creators may race on the
// scan-then-append and that is an accepted limitation of the store.
func nextSequenceID(rows [][]string, prefix string) string {
	max := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		id := strings.TrimSpace(row[0])
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}
