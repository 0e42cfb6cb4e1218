// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Families lists the methodology families drawn under the root node.
var Families = []string{
	"Traditional Supervised",
	"Deep Learning - CNN & Variants",
	"Deep Learning - Transformers",
	"Unsupervised and Self-Supervised",
	"Evolutionary Computation",
}

const (
	taxonomyRoot   = "Machine Learning Methodologies"
	taxonomyRootX  = 0.05
	taxonomyChildX = 0.5
	// connectorGap keeps connector lines clear of the node text.
	connectorGap = 0.12
)

var connectorColor = color.Gray{Y: 128}

// Taxonomy draws the static tree of methodology families.
func (r *Renderer) Taxonomy() (string, error) {
	p := plot.New()
	p.Title.Text = "A taxonomy of machine learning methodologies"
	p.HideAxes()

	root := plotter.XY{X: taxonomyRootX, Y: 0.5}
	nodes := plotter.XYs{root}
	names := []string{taxonomyRoot}

	n := len(Families)
	for i, name := range Families {
		// Evenly spaced from 0.9 down to 0.1.
		y := 0.9 - 0.8*float64(i)/float64(max(n-1, 1))
		child := plotter.XY{X: taxonomyChildX, Y: y}
		nodes = append(nodes, child)
		names = append(names, name)

		mid := (root.X + child.X) / 2
		line, err := plotter.NewLine(plotter.XYs{
			{X: root.X + connectorGap + 0.1, Y: root.Y},
			{X: mid, Y: root.Y},
			{X: mid, Y: child.Y},
			{X: child.X - connectorGap/4, Y: child.Y},
		})
		if err != nil {
			return "", fmt.Errorf("building connector: %w", err)
		}
		line.Color = connectorColor
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: nodes, Labels: names})
	if err != nil {
		return "", fmt.Errorf("building node labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XLeft
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(12)
	}
	p.Add(labels)

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = -0.1, 1

	return r.save(p, FileTaxonomy, 12*vg.Inch, 8*vg.Inch)
}
