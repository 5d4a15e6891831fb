package logic

import (
	"fmt"
	"strings"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// MissingColumnsError reports required columns absent from a table header.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("CSV file does not contain required columns: %s.", strings.Join(e.Missing, ", "))
}

// ValidateSchema checks that every required column is present. It returns
// nil for a valid table and a *MissingColumnsError otherwise.
func ValidateSchema(table *models.LeaderboardTable) error {
	var missing []string
	for _, c := range models.RequiredColumns {
		if !table.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}
