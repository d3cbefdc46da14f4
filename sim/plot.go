package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrackPlot creates new plot of fused observations from three data sources.
// Every row of the data matrices is a 2D point:
// truth:   true state
// obs:     observation means
// track:   posterior means after every fused observation
// It returns error if the plot fails to be created. This can be due to either of the following conditions:
// * either of the supplied data matrices is nil
// * either of the supplied data matrices does not have at least 2 columns
// * gonum plot fails to be created
func NewTrackPlot(truth, obs, track *mat.Dense) (*plot.Plot, error) {
	if truth == nil || obs == nil || track == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, ctr := truth.Dims()
	_, cob := obs.Dims()
	_, ctk := track.Dims()

	if ctr < 2 || cob < 2 || ctk < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Observation Fusion"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for observations
	obsScatter, err := plotter.NewScatter(makePoints(obs))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	obsScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	obsScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(obsScatter)
	p.Legend.Add("observation", obsScatter)

	// Make a line plotter for the posterior track
	trackLine, trackPoints, err := plotter.NewLinePoints(makePoints(track))
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %w", err)
	}
	trackLine.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	trackPoints.Shape = draw.CrossGlyph{}
	trackPoints.GlyphStyle.Radius = vg.Points(3)

	p.Add(trackLine, trackPoints)
	p.Legend.Add("posterior", trackLine, trackPoints)

	// Make a scatter plotter for the true state
	truthScatter, err := plotter.NewScatter(makePoints(truth))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(4)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
