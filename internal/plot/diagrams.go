// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

type nodeStyle struct {
	fill, edge color.Color
}

var (
	inputNode  = nodeStyle{fill: color.RGBA{R: 173, G: 216, B: 230, A: 255}, edge: color.RGBA{B: 139, A: 255}}
	modelNode  = nodeStyle{fill: color.RGBA{R: 144, G: 238, B: 144, A: 255}, edge: color.RGBA{G: 100, A: 255}}
	outputNode = nodeStyle{fill: color.RGBA{R: 240, G: 128, B: 128, A: 255}, edge: color.RGBA{R: 139, A: 255}}
	bodyNode   = nodeStyle{fill: color.Gray{Y: 211}, edge: color.Black}
)

// node is a labelled box centred on (X, Y) in unit coordinates.
type node struct {
	X, Y, W, H float64
	Label      string
	Style      nodeStyle
}

func (n node) left() plotter.XY { return plotter.XY{X: n.X - n.W/2, Y: n.Y} }
func (n node) right() plotter.XY { return plotter.XY{X: n.X + n.W/2, Y: n.Y} }
func (n node) top() plotter.XY { return plotter.XY{X: n.X, Y: n.Y + n.H/2} }

func (n node) corners() plotter.XYs {
	x0, x1 := n.X-n.W/2, n.X+n.W/2
	y0, y1 := n.Y-n.H/2, n.Y+n.H/2
	return plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// addNodes draws each node's box with its label centred inside.
func addNodes(p *plot.Plot, nodes ...node) error {
	var (
		xys    plotter.XYs
		labels []string
	)
	for _, n := range nodes {
		box, err := plotter.NewPolygon(n.corners())
		if err != nil {
			return fmt.Errorf("building node %q: %w", n.Label, err)
		}
		box.Color = n.Style.fill
		box.LineStyle.Color = n.Style.edge
		box.LineStyle.Width = vg.Points(1.5)
		p.Add(box)
		if n.Label != "" {
			xys = append(xys, plotter.XY{X: n.X, Y: n.Y})
			labels = append(labels, n.Label)
		}
	}
	if len(labels) == 0 {
		return nil
	}
	return addText(p, xys, labels, vg.Points(10), color.Black)
}

func addText(p *plot.Plot, xys plotter.XYs, labels []string, size vg.Length, c color.Color) error {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("building labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
		l.TextStyle[i].Font.Size = size
		l.TextStyle[i].Color = c
	}
	p.Add(l)
	return nil
}

const (
	arrowHead     = 0.025
	arrowHalfBase = 0.01
)

// addArrow draws a connector from a to b ending in a filled head at b.
func addArrow(p *plot.Plot, a, b plotter.XY) error {
	line, err := plotter.NewLine(plotter.XYs{a, b})
	if err != nil {
		return fmt.Errorf("building connector: %w", err)
	}
	line.Color = connectorColor
	line.Width = vg.Points(1.5)
	p.Add(line)

	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return nil
	}
	ux, uy := dx/d, dy/d
	bx, by := b.X-ux*arrowHead, b.Y-uy*arrowHead
	head, err := plotter.NewPolygon(plotter.XYs{
		b,
		{X: bx - uy*arrowHalfBase, Y: by + ux*arrowHalfBase},
		{X: bx + uy*arrowHalfBase, Y: by - ux*arrowHalfBase},
	})
	if err != nil {
		return fmt.Errorf("building arrow head: %w", err)
	}
	head.Color = connectorColor
	head.LineStyle.Color = connectorColor
	p.Add(head)
	return nil
}

func diagram(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	return p
}

// ConceptualOverview draws data sources feeding machine learning models
// that serve the review's application areas.
func (r *Renderer) ConceptualOverview() (string, error) {
	const w, h = 0.25, 0.12
	sources := []node{
		{X: 0.1, Y: 0.85, Label: "Environmental Data\n(e.g., Temp, Salinity)"},
		{X: 0.1, Y: 0.65, Label: "Acoustic Data\n(e.g., Sonar, Echosounder)"},
		{X: 0.1, Y: 0.45, Label: "Optical Data\n(e.g., Images, Video)"},
		{X: 0.1, Y: 0.25, Label: "Chemical Data\n(e.g., Mass Spec, eDNA)"},
	}
	model := node{X: 0.5, Y: 0.5, W: w, H: h, Label: "Machine Learning\nModels", Style: modelNode}
	apps := []node{
		{X: 0.9, Y: 0.8, Label: "Fisheries management\n& stock assessment"},
		{X: 0.9, Y: 0.6, Label: "Aquaculture &\nautomated monitoring"},
		{X: 0.9, Y: 0.4, Label: "Plankton &\nphytoplankton analysis"},
		{X: 0.9, Y: 0.2, Label: "Molecular level analysis\n& food science"},
	}

	p := diagram("A conceptual overview of machine learning for marine biomass analysis")
	for i := range sources {
		sources[i].W, sources[i].H, sources[i].Style = w, h, inputNode
		if err := addArrow(p, sources[i].right(), model.left()); err != nil {
			return "", err
		}
	}
	for i := range apps {
		apps[i].W, apps[i].H, apps[i].Style = w, h, outputNode
		if err := addArrow(p, model.right(), apps[i].left()); err != nil {
			return "", err
		}
	}
	nodes := append(append(sources, model), apps...)
	if err := addNodes(p, nodes...); err != nil {
		return "", err
	}

	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = 0.1, 0.95
	return r.save(p, FileConceptual, 14*vg.Inch, 10*vg.Inch)
}

// FutureTrends draws two panels: sensor fusion into a unified model, and
// on-board inference on an autonomous platform.
func (r *Renderer) FutureTrends() (string, error) {
	fusion, err := sensorFusionPanel()
	if err != nil {
		return "", err
	}
	edge, err := edgeComputingPanel()
	if err != nil {
		return "", err
	}
	return r.saveGrid("Conceptual diagrams of future trends in ML for marine analysis",
		[][]*plot.Plot{{fusion, edge}}, FileFutureTrends, 12*vg.Inch, 6*vg.Inch)
}

func sensorFusionPanel() (*plot.Plot, error) {
	inputs := []node{
		{X: 0.15, Y: 0.8, W: 0.26, H: 0.12, Label: "Acoustic Data", Style: inputNode},
		{X: 0.15, Y: 0.5, W: 0.26, H: 0.14, Label: "Optical Data\n(Video/Stills)", Style: inputNode},
		{X: 0.15, Y: 0.2, W: 0.26, H: 0.14, Label: "Chemical Data\n(eDNA/MS)", Style: inputNode},
	}
	model := node{X: 0.5, Y: 0.5, W: 0.24, H: 0.16, Label: "Unified ML Model\n(Sensor Fusion)", Style: modelNode}
	out := node{X: 0.86, Y: 0.5, W: 0.22, H: 0.22, Label: "Integrated\nBiomass\nAssessment", Style: outputNode}

	p := diagram("(a) Sensor Fusion")
	for _, in := range inputs {
		if err := addArrow(p, in.right(), model.left()); err != nil {
			return nil, err
		}
	}
	if err := addArrow(p, model.right(), out.left()); err != nil {
		return nil, err
	}
	if err := addNodes(p, append(inputs, model, out)...); err != nil {
		return nil, err
	}
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

func edgeComputingPanel() (*plot.Plot, error) {
	body := node{X: 0.5, Y: 0.5, W: 0.8, H: 0.6, Style: bodyNode}
	ai := node{X: 0.5, Y: 0.62, W: 0.28, H: 0.14, Label: "On-Board AI\n(Edge CPU/GPU)", Style: modelNode}
	raw := node{X: 0.27, Y: 0.34, W: 0.3, H: 0.14, Label: "Raw Sensor Data\n(Video, Sonar)", Style: inputNode}
	decision := node{X: 0.73, Y: 0.34, W: 0.3, H: 0.14, Label: "Real-time Decision:\n'Species X Count: 42'", Style: outputNode}

	p := diagram("(b) Real-time Edge Computing")
	if err := addNodes(p, body, ai, raw, decision); err != nil {
		return nil, err
	}
	if err := addArrow(p, raw.top(), ai.left()); err != nil {
		return nil, err
	}
	if err := addArrow(p, ai.right(), decision.top()); err != nil {
		return nil, err
	}
	if err := addText(p, plotter.XYs{{X: 0.5, Y: 0.86}}, []string{"AUV / Smart Trawler"}, vg.Points(12), color.Black); err != nil {
		return nil, err
	}
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// saveGrid draws plots as aligned tiles under a shared title and writes
// the image as PNG.
func (r *Renderer) saveGrid(title string, plots [][]*plot.Plot, name string, w, h vg.Length) (string, error) {
	img := vgimg.New(w, h)
	dc := draw.New(img)

	sty := plot.New().Title.TextStyle
	sty.Font.Size = vg.Points(16)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: w / 2, Y: h - vg.Points(8)}, title)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadTop:    vg.Points(40),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	path, err := r.path(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	r.saved(path)
	return path, nil
}
