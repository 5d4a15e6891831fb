package models

import "strings"

// Required leaderboard columns, in the order they are reported when missing.
const (
	ColumnCategory = "Category"
	ColumnGameName = "Game Name"
	ColumnRating   = "Rating"
	ColumnPosition = "Position"
)

// RequiredColumns lists every column a leaderboard file must carry.
var RequiredColumns = []string{ColumnCategory, ColumnGameName, ColumnRating, ColumnPosition}

// LeaderboardRow is one ranked app entry
type LeaderboardRow struct {
	Category string `json:"category"`
	GameName string `json:"game_name"`
	Rating   Rating `json:"rating"`
	// Position is 0 for a row whose rank cell was blank
	Position int `json:"position"`

	// Columns beyond the required four, keyed by trimmed header
	Extra map[string]string `json:"extra,omitempty"`
}

// Value returns the raw text of a column for display.
func (r LeaderboardRow) Value(column string) string {
	switch column {
	case ColumnCategory:
		return r.Category
	case ColumnGameName:
		return r.GameName
	case ColumnRating:
		return r.Rating.Raw
	case ColumnPosition:
		if !r.Ranked() {
			return ""
		}
		return itoa(r.Position)
	}
	return r.Extra[column]
}

// Ranked reports whether the row carries a rank.
func (r LeaderboardRow) Ranked() bool {
	return r.Position > 0
}

// Number returns the numeric value of a column, if it has one.
func (r LeaderboardRow) Number(column string) (float64, bool) {
	switch column {
	case ColumnPosition:
		return float64(r.Position), r.Ranked()
	case ColumnRating:
		return r.Rating.Value, r.Rating.Numeric
	}
	return parseNumber(r.Value(column))
}

// LeaderboardTable is an ordered set of rows sourced from exactly one file.
// A table with no columns is the empty result of a failed load.
type LeaderboardTable struct {
	Source  string           `json:"source,omitempty"`
	Columns []string         `json:"columns"`
	Rows    []LeaderboardRow `json:"rows"`
}

// EmptyTable returns the explicit "no data" table.
func EmptyTable() *LeaderboardTable {
	return &LeaderboardTable{Columns: []string{}, Rows: []LeaderboardRow{}}
}

func (t *LeaderboardTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *LeaderboardTable) IsEmpty() bool {
	return t.Len() == 0
}

// HasColumn reports whether the (trimmed) header contains column.
func (t *LeaderboardTable) HasColumn(column string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// WithRows returns a table sharing source and columns but holding rows.
func (t *LeaderboardTable) WithRows(rows []LeaderboardRow) *LeaderboardTable {
	return &LeaderboardTable{Source: t.Source, Columns: t.Columns, Rows: rows}
}

// Records flattens the table into header + string rows in column order.
func (t *LeaderboardTable) Records() [][]string {
	out := make([][]string, 0, t.Len()+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = row.Value(c)
		}
		out = append(out, rec)
	}
	return out
}

// Region is a tracked app-store country
type Region string

const (
	RegionUAE         Region = "AE"
	RegionSaudiArabia Region = "SA"
	RegionEgypt       Region = "EG"
	RegionIraq        Region = "IQ"
	RegionMorocco     Region = "MA"
)

// Regions in selector order.
var Regions = []Region{RegionUAE, RegionSaudiArabia, RegionEgypt, RegionIraq, RegionMorocco}

var regionNames = map[Region]string{
	RegionUAE:         "United Arab Emirates",
	RegionSaudiArabia: "Saudi Arabia",
	RegionEgypt:       "Egypt",
	RegionIraq:        "Iraq",
	RegionMorocco:     "Morocco",
}

var regionAliases = map[string]Region{
	"uae": RegionUAE,
	"ksa": RegionSaudiArabia,
}

func (r Region) DisplayName() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseRegion accepts a region code, display name or alias, case-insensitively.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.DisplayName()) {
			return r, true
		}
	}
	if r, ok := regionAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	return "", false
}

// Platform selects which store's leaderboard files apply
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

var Platforms = []Platform{PlatformIOS, PlatformAndroid}

func (p Platform) DisplayName() string {
	switch p {
	case PlatformIOS:
		return "iOS"
	case PlatformAndroid:
		return "Android"
	}
	return string(p)
}

func ParsePlatform(s string) (Platform, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Platforms {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}
