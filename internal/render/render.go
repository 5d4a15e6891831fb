// Package render draws leaderboard tables as bar and pie charts.
//
// Renderers are pure: the same table and theme always produce the same
// image, and nothing is retained between calls.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyData is returned when a chart has nothing to plot.
var ErrEmptyData = errors.New("no data to plot")

// Format selects the image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat maps a file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png", "":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Theme is the styling applied to every chart.
type Theme struct {
	Background drawing.Color
	Foreground drawing.Color
	Palette    []drawing.Color

	BarWidth  int
	BarHeight int
	PieSize   int
	FontSize  float64
}

// viridis, sampled at ten points
var viridis = []string{
	"440154", "482878", "3e4989", "31688e", "26828e",
	"1f9e89", "35b779", "6ece58", "b5de2b", "fde725",
}

// DarkTheme is white text on a #303030 background with the viridis palette.
func DarkTheme() Theme {
	palette := make([]drawing.Color, len(viridis))
	for i, hex := range viridis {
		palette[i] = drawing.ColorFromHex(hex)
	}
	return Theme{
		Background: drawing.ColorFromHex("303030"),
		Foreground: drawing.ColorWhite,
		Palette:    palette,
		BarWidth:   1000,
		BarHeight:  600,
		PieSize:    800,
		FontSize:   10,
	}
}

func (t Theme) color(i int) drawing.Color {
	if len(t.Palette) == 0 {
		return chart.ColorBlue
	}
	return t.Palette[i%len(t.Palette)]
}

// spread picks n colors evenly across the palette so short series still
// span the whole gradient.
func (t Theme) spread(n int) []drawing.Color {
	out := make([]drawing.Color, n)
	if n == 0 {
		return out
	}
	if n == 1 || len(t.Palette) <= 1 {
		for i := range out {
			out[i] = t.color(i)
		}
		return out
	}
	for i := range out {
		out[i] = t.color(i * (len(t.Palette) - 1) / (n - 1))
	}
	return out
}

func (t Theme) backgroundStyle() chart.Style {
	return chart.Style{
		FillColor: t.Background,
		Padding:   chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
	}
}

func (t Theme) titleStyle() chart.Style {
	return chart.Style{FontColor: t.Foreground, FontSize: t.FontSize + 6}
}

func (t Theme) textStyle() chart.Style {
	return chart.Style{FontColor: t.Foreground, StrokeColor: t.Foreground, FontSize: t.FontSize}
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func encode(c renderable, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(format.provider(), &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
