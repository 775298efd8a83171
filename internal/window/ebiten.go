//go:build cgo

package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunEbiten opens an ebiten window driven by c and blocks until it closes.
func RunEbiten(c *Controller) error {
	w, h := c.Size()
	ebiten.SetWindowTitle("Sketchpad")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(&game{c: c, lastX: -1, lastY: -1})
}

type game struct {
	c            *Controller
	img          *image.RGBA
	lastX, lastY int
}

var ebitenKeys = map[ebiten.Key]KeyCode{
	ebiten.KeyEscape:    KeyEscape,
	ebiten.KeyEnter:     KeyEnter,
	ebiten.KeyBackspace: KeyBackspace,
	ebiten.KeyDelete:    KeyDelete,
	ebiten.KeyTab:       KeyTab,
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	if x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.c.Move(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.c.Press(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.c.Release(float64(x), float64(y))
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.c.KeyPress(Key{Code: KeyRune, Rune: 's', Ctrl: true})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			g.c.KeyPress(Key{Code: KeyRune, Rune: 'o', Ctrl: true})
		}
		return nil
	}
	for k, code := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.c.KeyPress(Key{Code: code})
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		g.c.KeyPress(Key{Code: KeyRune, Rune: r})
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.c.Size()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	g.c.Paint(g.img)
	screen.WritePixels(g.img.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.c.Size(); w != outsideWidth || h != outsideHeight {
		g.c.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
