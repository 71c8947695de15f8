package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Generate renders the overrun rate trend chart as PNG.
func (r *ChartReporter) Generate(data Data) error {
	p := plot.New()
	p.Title.Text = "Cost Overrun Rate by Type of Work"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Funding Year"
	p.Y.Label.Text = "Overrun Rate (%)"
	p.Add(plotter.NewGrid())

	var order []string
	series := make(map[string]plotter.XYs)
	for _, t := range data.Result.Trends {
		if _, ok := series[t.TypeOfWork]; !ok {
			order = append(order, t.TypeOfWork)
		}
		series[t.TypeOfWork] = append(series[t.TypeOfWork], plotter.XY{
			X: float64(t.FundingYear),
			Y: t.OverrunRate,
		})
	}

	lines := make([]any, 0, 2*len(order))
	for _, name := range order {
		lines = append(lines, name, series[name])
	}
	if len(lines) > 0 {
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return fmt.Errorf("add chart lines: %w", err)
		}
	}
	p.Legend.Top = true

	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(r.Writer); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
