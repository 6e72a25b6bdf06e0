package gep

import (
	"fmt"
	"os"
)

// VisualizeFit generates an SVG plot of a decoded expression against
// the sampled target: the dataset as red points, the expression as a
// blue polyline.
func VisualizeFit(ds *Dataset, c *Chromosome, filename string) error {
	if ds.Total() == 0 {
		return fmt.Errorf("empty dataset")
	}
	tree, err := c.BuildTree()
	if err != nil {
		return err
	}

	// Calculate bounds over both curves
	minX, maxX := ds.Input(0), ds.Input(0)
	minY, maxY := ds.Output(0), ds.Output(0)

	extend := func(v float64) {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	predicted := make([]float64, ds.Total())
	for i := 0; i < ds.Total(); i++ {
		x := ds.Input(i)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		extend(ds.Output(i))
		predicted[i] = tree.Eval(x)
		extend(predicted[i])
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	// Add padding and set canvas size
	padding := 80.0
	canvasWidth := 800.0
	canvasHeight := 600.0

	scaleX := (canvasWidth - 2*padding) / (maxX - minX)
	scaleY := (canvasHeight - 2*padding) / (maxY - minY)

	// Function to transform coordinates; SVG y grows downward
	transformX := func(x float64) float64 {
		return padding + (x-minX)*scaleX
	}
	transformY := func(y float64) float64 {
		return canvasHeight - padding - (y-minY)*scaleY
	}

	// Start building SVG
	svg := fmt.Sprintf(`<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, canvasWidth, canvasHeight)

	// Axes
	svg += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="1" />`,
		padding, canvasHeight-padding, canvasWidth-padding, canvasHeight-padding)
	svg += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="1" />`,
		padding, padding, padding, canvasHeight-padding)

	// Draw the expression as a polyline
	points := ""
	for i := 0; i < ds.Total(); i++ {
		points += fmt.Sprintf("%.2f,%.2f ", transformX(ds.Input(i)), transformY(predicted[i]))
	}
	svg += fmt.Sprintf(`<polyline points="%s" fill="none" stroke="blue" stroke-width="2" />`, points)

	// Draw the target samples as points
	for i := 0; i < ds.Total(); i++ {
		svg += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="2" fill="red" />`,
			transformX(ds.Input(i)), transformY(ds.Output(i)))
	}

	// Add title and the fitted expression
	titleY := 25.0
	svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="black">Symbolic Regression Fit</text>`,
		canvasWidth/2, titleY)

	expr := tree.String()
	if len(expr) > 90 {
		expr = expr[:87] + "..."
	}
	exprY := canvasHeight - 15
	svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="14" fill="black">y = %s (fitness %.4f)</text>`,
		canvasWidth/2, exprY, expr, c.Fitness())

	svg += `</svg>`

	return os.WriteFile(filename, []byte(svg), 0644)
}
