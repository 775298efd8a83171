package window

import (
	"image"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// RunShiny opens a shiny window driven by c and blocks until it closes.
func RunShiny(c *Controller) error {
	var runErr error
	driver.Main(func(s screen.Screen) {
		runErr = mainShiny(s, c)
	})
	return runErr
}

func mainShiny(s screen.Screen, c *Controller) error {
	width, height := c.Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Sketchpad"})
	if err != nil {
		return err
	}
	defer w.Release()

	unsub := c.app.Subscribe(func() { w.Send(paint.Event{}) })
	defer unsub()

	paintCh := make(chan image.Point, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sz := <-paintCh:
				drawFrame(s, w, c, sz)
			case <-done:
				return
			}
		}
	}()

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			c.Resize(width, height)
			w.Send(paint.Event{})
		case paint.Event:
			sz := image.Pt(width, height)
			select {
			case paintCh <- sz:
			default:
				<-paintCh
				paintCh <- sz
			}
		case mouse.Event:
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				c.Press(float64(e.X), float64(e.Y))
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				c.Release(float64(e.X), float64(e.Y))
			case e.Direction == mouse.DirNone:
				c.Move(float64(e.X), float64(e.Y))
			}
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if k, ok := shinyKey(e); ok {
				c.KeyPress(k)
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func shinyKey(e key.Event) (Key, bool) {
	k := Key{Ctrl: e.Modifiers&key.ModControl != 0}
	switch e.Code {
	case key.CodeEscape:
		k.Code = KeyEscape
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		k.Code = KeyEnter
	case key.CodeDeleteBackspace:
		k.Code = KeyBackspace
	case key.CodeDeleteForward:
		k.Code = KeyDelete
	case key.CodeTab:
		k.Code = KeyTab
	default:
		if e.Rune <= 0 {
			return k, false
		}
		k.Code = KeyRune
		k.Rune = e.Rune
		if k.Ctrl && e.Rune >= 'A' && e.Rune <= 'Z' {
			k.Rune += 'a' - 'A'
		}
	}
	return k, true
}

func drawFrame(s screen.Screen, w screen.Window, c *Controller, sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(sz)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	c.Paint(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
