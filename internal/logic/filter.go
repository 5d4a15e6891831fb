package logic

import "github.com/gamecharts/leaderboard-dashboard/internal/models"

// Top-N selector bounds.
const (
	TopNMin     = 5
	TopNMax     = 25
	TopNDefault = 10
)

// FilterByCategory keeps rows whose category is in labels, preserving order.
// No match yields an empty table with the same columns.
func FilterByCategory(table *models.LeaderboardTable, labels LabelSet) *models.LeaderboardTable {
	rows := []models.LeaderboardRow{}
	for _, row := range table.Rows {
		if labels.Contains(row.Category) {
			rows = append(rows, row)
		}
	}
	return table.WithRows(rows)
}

// TakeTop returns the first n rows in file order. It does not sort.
func TakeTop(table *models.LeaderboardTable, n int) *models.LeaderboardTable {
	if n <= 0 {
		return table.WithRows([]models.LeaderboardRow{})
	}
	if n >= len(table.Rows) {
		return table.WithRows(table.Rows)
	}
	return table.WithRows(table.Rows[:n:n])
}

// TopNRange returns the selectable [min, max] row count for a table of rows
// entries. Tables shorter than TopNMin only allow showing every row.
func TopNRange(rows int) (int, int) {
	hi := min(TopNMax, rows)
	if hi < TopNMin {
		return hi, hi
	}
	return TopNMin, hi
}

// ClampTopN resolves a requested row count against the table size; 0 means
// the default of min(TopNDefault, rows).
func ClampTopN(requested, rows int) int {
	lo, hi := TopNRange(rows)
	if requested == 0 {
		requested = min(TopNDefault, rows)
	}
	if requested < lo {
		return lo
	}
	if requested > hi {
		return hi
	}
	return requested
}
