//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func read(f clipboard.Format, kind string) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data := clipboard.Read(f)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no %s data", ErrEmpty, kind)
	}
	return data, nil
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// ReadImage decodes the PNG image on the clipboard.
func ReadImage() (image.Image, error) {
	data, err := read(clipboard.FmtImage, "image")
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText publishes UTF-8 text.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadText returns the UTF-8 text on the clipboard.
func ReadText() (string, error) {
	data, err := read(clipboard.FmtText, "text")
	return string(data), err
}

// This backend only knows text and image formats, so drawings travel as
// text.
func writeDrawing(data []byte) error { return WriteText(string(data)) }

func readDrawing() ([]byte, error) { return read(clipboard.FmtText, "drawing") }
