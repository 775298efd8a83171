package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/theme"
)

// SVG renders sc as a standalone SVG document of the given size.
func SVG(sc Scene, width, height int) string {
	th := sc.palette()

	var elements []string
	for _, sh := range sc.Drawables() {
		if sh.ID() == sc.Selected && sc.Selected != "" && !sh.IsPreview() {
			if el := svgElement(sh, theme.Hex(th.Selection), StrokeWidth+2*HaloRadius, 0.4); el != "" {
				elements = append(elements, el)
			}
		}
		opacity := 1.0
		if sh.IsPreview() {
			opacity = PreviewOpacity
		}
		if el := svgElement(sh, sh.Color(), strokeWidth(sh), opacity); el != "" {
			elements = append(elements, el)
		}
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect width="100%%" height="100%%" fill="%s"/>`, theme.Hex(th.Canvas)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

func svgElement(sh shape.Shape, stroke string, width, opacity float64) string {
	paint := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"`, html.EscapeString(stroke), formatFloat(width))
	if opacity < 1 {
		paint += fmt.Sprintf(` stroke-opacity="%s"`, formatFloat(opacity))
	}
	id := html.EscapeString(sh.ID())
	switch v := sh.(type) {
	case *shape.Line:
		return fmt.Sprintf(`<line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" %s stroke-linecap="round"/>`,
			id, formatFloat(v.Start.X), formatFloat(v.Start.Y), formatFloat(v.End.X), formatFloat(v.End.Y), paint)
	case *shape.Circle:
		if v.Radius() <= 0 {
			return ""
		}
		return fmt.Sprintf(`<circle id="%s" cx="%s" cy="%s" r="%s" %s/>`,
			id, formatFloat(v.Center.X), formatFloat(v.Center.Y), formatFloat(v.Radius()), paint)
	case *shape.Ellipse:
		if v.RadiusX() <= 0 && v.RadiusY() <= 0 {
			return ""
		}
		return fmt.Sprintf(`<ellipse id="%s" cx="%s" cy="%s" rx="%s" ry="%s" %s/>`,
			id, formatFloat(v.Center.X), formatFloat(v.Center.Y), formatFloat(v.RadiusX()), formatFloat(v.RadiusY()), paint)
	case *shape.Polyline:
		if len(v.Points) < 2 {
			return ""
		}
		pts := make([]string, len(v.Points))
		for i, p := range v.Points {
			pts[i] = formatPoint(p)
		}
		return fmt.Sprintf(`<polyline id="%s" points="%s" %s stroke-linejoin="round"/>`, id, strings.Join(pts, " "), paint)
	}
	return ""
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p shape.Point) string {
	return formatFloat(p.X) + "," + formatFloat(p.Y)
}
