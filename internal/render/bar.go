package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// BarSpec describes a bar chart: one bar per row, labelled by LabelColumn
// with a height taken from the numeric ValueColumn.
type BarSpec struct {
	Title       string
	LabelColumn string
	ValueColumn string
}

// RankBars is the Position-by-Game-Name chart used for every category panel.
func RankBars(title string) BarSpec {
	return BarSpec{Title: title, LabelColumn: models.ColumnGameName, ValueColumn: models.ColumnPosition}
}

// BarValues extracts the plotted values. Rows whose value column is not
// numeric plot as zero.
func BarValues(table *models.LeaderboardTable, spec BarSpec) []chart.Value {
	values := make([]chart.Value, 0, table.Len())
	for _, row := range table.Rows {
		v, _ := row.Number(spec.ValueColumn)
		values = append(values, chart.Value{Label: row.Value(spec.LabelColumn), Value: v})
	}
	return values
}

// Bar renders the rows of table as a bar chart.
func Bar(table *models.LeaderboardTable, spec BarSpec, theme Theme, format Format) ([]byte, error) {
	if table.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", spec.Title, ErrEmptyData)
	}

	bars := BarValues(table, spec)
	colors := theme.spread(len(bars))
	maxVal := 0.0
	for i := range bars {
		bars[i].Style = chart.Style{FillColor: colors[i], StrokeColor: colors[i]}
		maxVal = math.Max(maxVal, bars[i].Value)
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	spacing := 8
	barWidth := (theme.BarWidth-140)/len(bars) - spacing
	if barWidth < 6 {
		barWidth = 6
	}

	bc := chart.BarChart{
		Title:      spec.Title,
		TitleStyle: theme.titleStyle(),
		Width:      theme.BarWidth,
		Height:     theme.BarHeight,
		Background: theme.backgroundStyle(),
		Canvas:     chart.Style{FillColor: theme.Background},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		XAxis:      theme.textStyle(),
		YAxis: chart.YAxis{
			Name:      spec.ValueColumn,
			NameStyle: theme.textStyle(),
			Style:     theme.textStyle(),
			Range:     &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
		},
		Bars: bars,
	}

	out, err := encode(bc, format)
	if err != nil {
		return nil, err
	}
	chartsRendered.WithLabelValues("bar").Inc()
	return out, nil
}
