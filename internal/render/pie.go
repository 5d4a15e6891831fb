package render

import (
	"fmt"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// Slice is one rating bucket of a distribution.
type Slice struct {
	Rating  string  `json:"rating"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Label is the text drawn on the slice, e.g. "4.5 (40.0%)".
func (s Slice) Label() string {
	return fmt.Sprintf("%s (%.1f%%)", s.Rating, s.Percent)
}

// RatingDistribution counts rows per rating, largest bucket first. Ties keep
// the order in which the ratings first appear. Rows with a blank rating are
// left out of both the buckets and the percentages.
func RatingDistribution(table *models.LeaderboardTable) []Slice {
	index := make(map[string]int)
	var slices []Slice
	total := 0
	for _, row := range table.Rows {
		if row.Rating.Raw == "" {
			continue
		}
		key := row.Rating.Key()
		i, ok := index[key]
		if !ok {
			i = len(slices)
			index[key] = i
			slices = append(slices, Slice{Rating: key})
		}
		slices[i].Count++
		total++
	}
	sort.SliceStable(slices, func(a, b int) bool {
		return slices[a].Count > slices[b].Count
	})
	for i := range slices {
		slices[i].Percent = float64(slices[i].Count) * 100 / float64(total)
	}
	return slices
}

// Pie renders the rating distribution of table.
func Pie(table *models.LeaderboardTable, title string, theme Theme, format Format) ([]byte, error) {
	if table.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", title, ErrEmptyData)
	}

	slices := RatingDistribution(table)
	if len(slices) == 0 {
		return nil, fmt.Errorf("%s: %w", title, ErrEmptyData)
	}
	colors := theme.spread(len(slices))
	values := make([]chart.Value, len(slices))
	for i, s := range slices {
		values[i] = chart.Value{
			Label: s.Label(),
			Value: float64(s.Count),
			Style: chart.Style{
				FillColor:   colors[i],
				StrokeColor: theme.Background,
				StrokeWidth: 2,
				FontColor:   theme.Foreground,
				FontSize:    theme.FontSize + 2,
			},
		}
	}

	pc := chart.PieChart{
		Title:      title,
		TitleStyle: theme.titleStyle(),
		Width:      theme.PieSize,
		Height:     theme.PieSize,
		Background: theme.backgroundStyle(),
		Canvas:     chart.Style{FillColor: theme.Background},
		Values:     values,
	}

	out, err := encode(pc, format)
	if err != nil {
		return nil, err
	}
	chartsRendered.WithLabelValues("pie").Inc()
	return out, nil
}
