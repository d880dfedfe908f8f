// Package export renders recorded runs to vector images.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/planetsim/internal/dynamo"
)

type SVGOptions struct {
	Width      int
	Height     int
	Background string
	// Colors maps body names to stroke colors. Missing bodies are white.
	Colors map[string]string
	// Radii maps body names to marker radii in pixels.
	Radii map[string]float64
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     800,
		Background: "#000000",
	}
}

// bounds returns a square world box around every recorded position, with
// ten percent padding, so orbits keep their shape.
func bounds(result *dynamo.Result) (minX, minY, size float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, snap := range result.Snapshots {
		for _, p := range snap.Pos {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	size = math.Max(maxX-minX, maxY-minY)
	if size == 0 {
		size = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	size *= 1.2
	return cx - size/2, cy - size/2, size
}

// OrbitsToSVG draws one path per body through its recorded positions and
// a marker at its final position.
func OrbitsToSVG(result *dynamo.Result, opts SVGOptions) string {
	if len(result.Snapshots) == 0 {
		return ""
	}

	minX, minY, size := bounds(result)
	scale := math.Min(float64(opts.Width), float64(opts.Height)) / size
	toScreen := func(p dynamo.Vec) (float64, float64) {
		return (p.X - minX) * scale, (p.Y - minY) * scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	last := result.Snapshots[len(result.Snapshots)-1]
	for i, name := range result.Names {
		stroke := opts.Colors[name]
		if stroke == "" {
			stroke = "#ffffff"
		}

		if len(result.Snapshots) > 1 {
			sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, name, stroke))
			for j, snap := range result.Snapshots {
				x, y := toScreen(snap.Pos[i])
				if j == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		r := opts.Radii[name]
		if r <= 0 {
			r = 4
		}
		x, y := toScreen(last.Pos[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, stroke))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
