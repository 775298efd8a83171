package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/sketchpad/internal/shape"
)

// Draw paints sc into the rectangle r of dst. The drawing-surface origin maps
// to r.Min and anything outside r is clipped.
func Draw(dst *image.RGBA, r image.Rectangle, sc Scene) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	th := sc.palette()
	draw.Draw(dst, r, image.NewUniform(th.Canvas), image.Point{}, draw.Src)
	for _, sh := range sc.Drawables() {
		if sh.ID() == sc.Selected && sc.Selected != "" && !sh.IsPreview() {
			drawHalo(dst, r, sh, th.Selection)
		}
		z := rasterize(sh, r.Dx(), r.Dy(), strokeWidth(sh))
		if z == nil {
			continue
		}
		z.Draw(dst, r, image.NewUniform(StrokeColor(sh)), image.Point{})
	}
}

// Image renders sc onto a new width x height image.
func Image(sc Scene, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	Draw(img, img.Bounds(), sc)
	return img
}

// EncodePNG renders sc and writes it to w as PNG.
func EncodePNG(w io.Writer, sc Scene, width, height int) error {
	return png.Encode(w, Image(sc, width, height))
}

func rasterize(sh shape.Shape, w, h int, width float64) *vector.Rasterizer {
	pts, closed := Outline(sh)
	if len(pts) < 2 || w <= 0 || h <= 0 {
		return nil
	}
	z := vector.NewRasterizer(w, h)
	strokePath(z, pts, closed, width/2)
	return z
}

// strokePath adds one quad per segment and a small cap at every vertex. All
// sub-paths share the same winding so overlaps saturate instead of cancelling.
func strokePath(z *vector.Rasterizer, pts []shape.Point, closed bool, hw float64) {
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		z.LineTo(float32(b.X+nx), float32(b.Y+ny))
		z.LineTo(float32(b.X-nx), float32(b.Y-ny))
		z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		z.ClosePath()
	}
	for _, p := range pts {
		capAt(z, p, hw)
	}
}

func capAt(z *vector.Rasterizer, p shape.Point, hw float64) {
	const sides = 8
	for i := 0; i <= sides; i++ {
		a := -2 * math.Pi * float64(i) / sides
		x, y := float32(p.X+hw*math.Cos(a)), float32(p.Y+hw*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
}

func drawHalo(dst *image.RGBA, r image.Rectangle, sh shape.Shape, c color.RGBA) {
	z := rasterize(sh, r.Dx(), r.Dy(), StrokeWidth+2*HaloRadius)
	if z == nil {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	halo := Halo(mask, HaloRadius)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, halo, image.Point{}, draw.Over)
}
