// Package clipboard moves drawings and rendered images through the system
// clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
)

var (
	// ErrEmpty reports a clipboard that holds nothing in the requested format.
	ErrEmpty = errors.New("clipboard is empty")
	// ErrUnsupported is returned on platforms without a clipboard backend.
	ErrUnsupported = errors.New("clipboard is not supported on this platform")
)

// DrawingTarget is the selection target offered alongside plain text when a
// drawing is copied, where the backend supports extra targets.
const DrawingTarget = "application/x-sketchpad+json"

// CopyDrawing places shapes on the clipboard as a drawing document.
func CopyDrawing(shapes []shape.Shape) error {
	data, err := document.Encode(shapes)
	if err != nil {
		return err
	}
	return writeDrawing(data)
}

// PasteDrawing reads a drawing document from the clipboard. Records of
// unknown type are skipped and counted in dropped.
func PasteDrawing() (shapes []shape.Shape, dropped int, err error) {
	data, err := readDrawing()
	if err != nil {
		return nil, 0, err
	}
	return document.Decode(data)
}

// CopyImage renders sc at the given size and places it on the clipboard as
// PNG.
func CopyImage(sc render.Scene, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	return WriteImage(render.Image(sc, width, height))
}

// PasteImage writes the image on the clipboard to w as PNG and returns it.
func PasteImage(w io.Writer) (image.Image, error) {
	img, err := ReadImage()
	if err != nil {
		return nil, err
	}
	if err := png.Encode(w, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Merge adds pasted shapes on top of the drawing in app. Shapes whose id is
// already taken get a fresh one so nothing in the drawing is replaced. It
// returns the ids that were added.
func Merge(app *appstate.AppState, shapes []shape.Shape) []string {
	ids := make([]string, 0, len(shapes))
	for _, s := range shapes {
		if s == nil || s.IsPreview() {
			continue
		}
		if app.Get(s.ID()) != nil {
			rec := s.Record()
			rec.ID = shape.NewID()
			fresh, ok := shape.FromRecord(rec)
			if !ok {
				continue
			}
			s = fresh
		}
		app.Add(s)
		ids = append(ids, s.ID())
	}
	return ids
}
