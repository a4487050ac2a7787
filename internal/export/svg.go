package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/algotrace/internal/trace"
)

const (
	colorBar      = "#4a9eff"
	colorCompared = "#ffd23f"
	colorSwapped  = "#ff5a5f"
	colorSorted   = "#3ddc97"
	colorCurrent  = "#c77dff"
)

func barColor(s trace.Step, i int) string {
	switch {
	case slices.Contains(s.Swapped, i):
		return colorSwapped
	case slices.Contains(s.Compared, i):
		return colorCompared
	case s.Current != nil && *s.Current == i:
		return colorCurrent
	case slices.Contains(s.Sorted, i), slices.Contains(s.Highlighted, i):
		return colorSorted
	}
	return colorBar
}

// StepSVG draws the array snapshot of a step as a bar chart. Steps without an
// array yield "".
func StepSVG(s trace.Step, scale float64) string {
	arr := s.Data.Array
	if len(arr) == 0 {
		return ""
	}

	lo, hi := slices.Min(arr), slices.Max(arr)
	lo = min(lo, 0)
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}

	barW := 10 * scale
	gap := 2 * scale
	height := 100 * scale
	width := float64(len(arr))*(barW+gap) + gap

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	zero := height - float64(-lo)/span*height
	for i, v := range arr {
		x := gap + float64(i)*(barW+gap)
		top := height - float64(v-lo)/span*height
		y, h := top, zero-top
		if h < 0 {
			y, h = zero, -h
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>[%d] = %d</title></rect>
`, x, y, barW, max(h, scale), barColor(s, i), i, v))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG plots a counter column as a polyline.
func SeriesSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := slices.Min(values), slices.Max(values)
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
