package logic

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// ErrNoColumns is returned for input without a header row.
var ErrNoColumns = errors.New("no columns to parse from file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTable reads a leaderboard CSV. Header names are trimmed; columns
// beyond the required four are kept in Extra. Required columns that are
// absent are left zero-valued so schema validation can report them.
func ParseTable(r io.Reader) (*models.LeaderboardTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseTableBytes(data)
}

func parseTableBytes(data []byte) (*models.LeaderboardTable, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoColumns
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if _, dup := index[columns[i]]; !dup {
			index[columns[i]] = i
		}
	}

	field := func(rec []string, column string) (string, bool) {
		i, ok := index[column]
		if !ok {
			return "", false
		}
		if i >= len(rec) {
			return "", true
		}
		return strings.TrimSpace(rec[i]), true
	}

	table := &models.LeaderboardTable{Columns: columns, Rows: []models.LeaderboardRow{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if isBlankRecord(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)

		var row models.LeaderboardRow
		row.Category, _ = field(rec, models.ColumnCategory)
		row.GameName, _ = field(rec, models.ColumnGameName)
		if raw, ok := field(rec, models.ColumnRating); ok {
			row.Rating = models.ParseRating(raw)
		}
		if raw, ok := field(rec, models.ColumnPosition); ok {
			pos, err := models.ParsePosition(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row.Position = pos
		}
		for i, c := range columns {
			if isRequiredColumn(c) || c == "" {
				continue
			}
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			if i < len(rec) {
				row.Extra[c] = strings.TrimSpace(rec[i])
			} else {
				row.Extra[c] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func isRequiredColumn(c string) bool {
	for _, r := range models.RequiredColumns {
		if c == r {
			return true
		}
	}
	return false
}
