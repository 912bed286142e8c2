// Package export renders blob configurations to SVG.
package export

import (
	"fmt"
	"strings"
)

// SnapshotSVG draws a side view (x-z plane) of a configuration: one circle
// per blob at its hydrodynamic radius, with the wall as a bar at z = 0.
func SnapshotSVG(positions []float64, radius float64, width, height int) string {
	n := len(positions) / 3
	if n == 0 {
		return ""
	}

	minX, maxX := positions[0], positions[0]
	maxZ := positions[2]
	for i := 0; i < n; i++ {
		x, z := positions[i*3+0], positions[i*3+2]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if z > maxZ {
			maxZ = z
		}
	}

	// Pad by a blob diameter and always include the wall.
	minX -= 2 * radius
	maxX += 2 * radius
	maxZ += 2 * radius

	scaleX := float64(width) / (maxX - minX)
	scaleZ := float64(height) / maxZ
	scale := scaleX
	if scaleZ < scale {
		scale = scaleZ
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Wall at z = 0 (bottom of the viewport).
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="%d" width="%d" height="4" fill="#666688"/>
`, height-4, width))

	sb.WriteString(`<g fill="#00ccff" fill-opacity="0.8" stroke="#00ffff" stroke-width="0.5">
`)
	for i := 0; i < n; i++ {
		cx := (positions[i*3+0] - minX) * scale
		cy := float64(height) - positions[i*3+2]*scale
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, radius*scale))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
