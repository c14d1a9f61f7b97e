package chart

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/penwyp/go-weight-trend/internal/core/constants"
	"github.com/penwyp/go-weight-trend/internal/core/model"
	"github.com/penwyp/go-weight-trend/internal/core/trend"
)

var (
	scatterColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	trendColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Renderer draws observations and the fitted trend line into a PNG file.
type Renderer struct {
	width  vg.Length
	height vg.Length
	loc    *time.Location
}

// NewRenderer creates a renderer producing a 10x6 inch chart with x tick
// labels in loc.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		width:  10 * vg.Inch,
		height: 6 * vg.Inch,
		loc:    loc,
	}
}

// Render writes the scatter plot to path. The trend line and slope label
// are drawn only when fit is non-nil.
func (r *Renderer) Render(set model.ObservationSet, fit *trend.Model, path string) error {
	obs := set.Sorted()
	if len(obs) == 0 {
		return fmt.Errorf("no observations to plot")
	}

	p := plot.New()
	p.Title.Text = "Weight Data with Linear Regression Line"
	p.X.Label.Text = "Datetime"
	p.Y.Label.Text = "Weight (kg)"
	p.X.Tick.Marker = plot.TimeTicks{
		Format: constants.DayKeyLayout,
		Time:   plot.UnixTimeIn(r.loc),
	}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(obs))
	maxKg := obs[0].WeightKg
	for i, o := range obs {
		pts[i].X = float64(o.Timestamp.Unix())
		pts[i].Y = o.WeightKg
		if o.WeightKg > maxKg {
			maxKg = o.WeightKg
		}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = scatterColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)
	p.Legend.Add("Data points", scatter)

	if fit != nil {
		linePts := plotter.XYs{
			{X: float64(fit.Start.Unix()), Y: fit.PredictAt(fit.Start)},
			{X: float64(fit.End.Unix()), Y: fit.PredictAt(fit.End)},
		}
		line, err := plotter.NewLine(linePts)
		if err != nil {
			return fmt.Errorf("failed to build trend line: %w", err)
		}
		line.LineStyle.Color = trendColor
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add("Regression line", line)

		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: pts[0].X, Y: maxKg}},
			Labels: []string{fmt.Sprintf("Slope: %.6f kg/day", fit.SlopePerDay())},
		})
		if err != nil {
			return fmt.Errorf("failed to build slope label: %w", err)
		}
		p.Add(labels)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", path, err)
	}

	return nil
}
