package pagination

import "math"

// CalculateOffset returns the row offset of a 1-based page. Offsets past
// math.MaxInt saturate, which selects no rows.
//
//   - Page 1, Limit 20 -> Offset 0
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit), and at least 1.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit < 1 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
