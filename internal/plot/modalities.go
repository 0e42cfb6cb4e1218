// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// sampleGrid is a row-major grid of synthetic readings. Row 0 is the
// bottom of the image.
type sampleGrid struct {
	cols, rows int
	z          []float64
}

func newSampleGrid(cols, rows int) *sampleGrid {
	return &sampleGrid{cols: cols, rows: rows, z: make([]float64, cols*rows)}
}

func (g *sampleGrid) Dims() (c, r int) { return g.cols, g.rows }
func (g *sampleGrid) Z(c, r int) float64 { return g.z[r*g.cols+c] }
func (g *sampleGrid) X(c int) float64 { return float64(c) }
func (g *sampleGrid) Y(r int) float64 { return float64(r) }
func (g *sampleGrid) set(c, r int, v float64) { g.z[r*g.cols+c] = v }

const modalitySeed = 42

// echogram returns a synthetic echosounder image: background noise, a
// strong seabed return in the deepest rows and one fish school.
func echogram(rng *rand.Rand) *sampleGrid {
	const cols, rows = 100, 50
	g := newSampleGrid(cols, rows)
	const schoolCol, schoolDepth, sigma = 60, 22, 4.0
	for r := 0; r < rows; r++ {
		depth := rows - 1 - r
		for c := 0; c < cols; c++ {
			v := 0.2 * rng.Float64()
			if depth >= 40 {
				v += 0.8
			}
			dx, dy := float64(c-schoolCol), float64(depth-schoolDepth)
			v += 0.7 * math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma))
			g.set(c, r, v)
		}
	}
	return g
}

// chlorophyll returns a synthetic chlorophyll-a field with a block of
// land in the lower left corner marked by a negative value.
func chlorophyll() *sampleGrid {
	const n = 60
	g := newSampleGrid(n, n)
	for r := 0; r < n; r++ {
		y := -5 + 10*float64(r)/float64(n-1)
		for c := 0; c < n; c++ {
			x := -5 + 10*float64(c)/float64(n-1)
			v := math.Sin(x)*math.Cos(y)*0.5 + 0.5
			if r < 24 && c < 18 {
				v = -0.5
			}
			g.set(c, r, v)
		}
	}
	return g
}

// spectrum returns a synthetic mass spectrum over m/z 200 to 800 with
// five characteristic peaks on a noisy baseline.
func spectrum(rng *rand.Rand) plotter.XYs {
	const n = 1000
	peaks := []struct{ at, height, width float64 }{
		{250, 0.8, 2}, {310, 0.6, 1.5}, {450, 1.0, 3}, {620, 0.4, 2}, {780, 0.7, 2.5},
	}
	xys := make(plotter.XYs, n)
	for i := range xys {
		x := 200 + 600*float64(i)/float64(n-1)
		y := 0.05 * rng.Float64()
		for _, pk := range peaks {
			d := x - pk.at
			y += pk.height * math.Exp(-d*d/(2*pk.width*pk.width))
		}
		xys[i] = plotter.XY{X: x, Y: y}
	}
	return xys
}

// ellipse returns the outline of an ellipse with the given centre, full
// width and height, rotated by deg degrees.
func ellipse(cx, cy, w, h, deg float64) plotter.XYs {
	const n = 36
	theta := deg * math.Pi / 180
	sin, cos := math.Sincos(theta)
	xys := make(plotter.XYs, n)
	for i := range xys {
		t := 2 * math.Pi * float64(i) / n
		x, y := w/2*math.Cos(t), h/2*math.Sin(t)
		xys[i] = plotter.XY{X: cx + x*cos - y*sin, Y: cy + x*sin + y*cos}
	}
	return xys
}

var noTicks = plot.ConstantTicks{}

// DataModalities draws four panels of synthetic data, one per sensing
// modality covered by the review: acoustic, remote sensing, in-situ
// optical with detections, and mass spectrometry.
func (r *Renderer) DataModalities() (string, error) {
	rng := rand.New(rand.NewPCG(modalitySeed, modalitySeed))

	acoustic := plot.New()
	acoustic.Title.Text = "(a) Acoustic Data (Echogram)"
	acoustic.X.Label.Text = "Ping Number (Time)"
	acoustic.Y.Label.Text = "Depth (m)"
	echo := plotter.NewHeatMap(echogram(rng), moreland.Kindlmann().Palette(64))
	echo.Rasterized = true
	acoustic.Add(echo)

	remote := plot.New()
	remote.Title.Text = "(b) Remote Sensing Data (Chlorophyll-a)"
	remote.X.Label.Text = "Longitude"
	remote.Y.Label.Text = "Latitude"
	greens, err := brewer.GetPalette(brewer.TypeSequential, "YlGn", 9)
	if err != nil {
		return "", fmt.Errorf("loading palette: %w", err)
	}
	chl := plotter.NewHeatMap(chlorophyll(), greens)
	chl.Rasterized = true
	remote.Add(chl)

	optical, err := opticalPanel()
	if err != nil {
		return "", err
	}

	spectral := plot.New()
	spectral.Title.Text = "(d) Mass Spectrometry Data (Spectrum)"
	spectral.X.Label.Text = "Mass/Charge (m/z)"
	spectral.Y.Label.Text = "Relative Intensity"
	line, err := plotter.NewLine(spectrum(rng))
	if err != nil {
		return "", fmt.Errorf("building spectrum: %w", err)
	}
	line.Width = vg.Points(1)
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = grid.Vertical.Dashes
	spectral.Add(grid, line)
	spectral.Y.Min, spectral.Y.Max = 0, 1.2

	for _, p := range []*plot.Plot{acoustic, remote, optical} {
		p.X.Tick.Marker = noTicks
		p.Y.Tick.Marker = noTicks
	}

	return r.saveGrid("Examples of data modalities used in ML-based biomass analysis",
		[][]*plot.Plot{{acoustic, remote}, {optical, spectral}}, FileDataModalities, 10*vg.Inch, 8*vg.Inch)
}

var (
	waterColor     = color.RGBA{G: 139, B: 139, A: 255}
	detectionColor = color.RGBA{R: 255, A: 255}
)

func opticalPanel() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "(c) In-situ Optical Data (with ML Detections)"
	p.X.Label.Text = "x-pixel"
	p.Y.Label.Text = "y-pixel"

	water, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	if err != nil {
		return nil, fmt.Errorf("building background: %w", err)
	}
	water.Color = waterColor
	water.LineStyle.Width = 0
	p.Add(water)

	fish := []struct {
		outline plotter.XYs
		fill    color.Color
	}{
		{ellipse(0.3, 0.6, 0.25, 0.1, 20), color.Gray{Y: 192}},
		{ellipse(0.7, 0.3, 0.3, 0.12, -30), color.Gray{Y: 128}},
	}
	for _, f := range fish {
		body, err := plotter.NewPolygon(f.outline)
		if err != nil {
			return nil, fmt.Errorf("building fish: %w", err)
		}
		body.Color = f.fill
		body.LineStyle.Width = 0
		p.Add(body)
	}

	boxes := []node{
		{X: 0.3, Y: 0.6, W: 0.3, H: 0.2},
		{X: 0.7, Y: 0.305, W: 0.4, H: 0.25},
	}
	var (
		tags plotter.XYs
		text []string
	)
	for _, b := range boxes {
		outline, err := plotter.NewPolygon(b.corners())
		if err != nil {
			return nil, fmt.Errorf("building detection: %w", err)
		}
		outline.LineStyle.Color = detectionColor
		outline.LineStyle.Width = vg.Points(2)
		outline.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(outline)
		tags = append(tags, plotter.XY{X: b.X - b.W/2 + 0.04, Y: b.Y + b.H/2 + 0.03})
		text = append(text, "fish")
	}
	if err := addText(p, tags, text, vg.Points(10), detectionColor); err != nil {
		return nil, err
	}

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}
