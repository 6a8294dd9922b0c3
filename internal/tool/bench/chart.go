// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderChart renders one series per codec over the benchmark rows and
// writes the plot as an SVG. The X axis is the row index into names; the
// Y axis is the measured rate or ratio.
func RenderChart(w io.Writer, title string, results [][]Result, names, codecs []string) error {
	series := make([]chart.Series, 0, len(codecs))
	for j, c := range codecs {
		xvals := make([]float64, 0, len(results))
		yvals := make([]float64, 0, len(results))
		for i, row := range results {
			xvals = append(xvals, float64(i))
			yvals = append(yvals, row[j].R)
		}
		series = append(series, chart.ContinuousSeries{
			Name: c,
			Style: chart.Style{
				DotWidth: 3,
			},
			XValues: xvals,
			YValues: yvals,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}
