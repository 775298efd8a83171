// Package document reads and writes drawings as JSON arrays of shape
// records.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/shape"
)

// ErrMalformed reports input that is not a JSON array of records.
var ErrMalformed = errors.New("malformed drawing")

// Encode serializes shapes in the given order. Previews are skipped.
func Encode(shapes []shape.Shape) ([]byte, error) {
	recs := make([]shape.Record, 0, len(shapes))
	for _, s := range shapes {
		if s == nil || s.IsPreview() {
			continue
		}
		recs = append(recs, s.Record())
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode drawing: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a drawing. The whole input is parsed before any shape is
// built, so a malformed document yields no shapes. Records of unknown type
// are skipped and counted in dropped.
func Decode(data []byte) (shapes []shape.Shape, dropped int, err error) {
	var recs []shape.Record
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&recs); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, 0, fmt.Errorf("%w: trailing data after array", ErrMalformed)
	}
	if recs == nil {
		return nil, 0, fmt.Errorf("%w: expected an array of shapes", ErrMalformed)
	}
	shapes = make([]shape.Shape, 0, len(recs))
	for _, r := range recs {
		s, ok := shape.FromRecord(r)
		if !ok {
			dropped++
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes, dropped, nil
}

// Load reads a drawing from r and replaces the contents of app. On error app
// is left untouched.
func Load(app *appstate.AppState, r io.Reader) (dropped int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read drawing: %w", err)
	}
	shapes, dropped, err := Decode(data)
	if err != nil {
		return 0, err
	}
	app.LoadShapes(shapes)
	return dropped, nil
}

// Save writes the committed shapes of app to w in z-order.
func Save(app *appstate.AppState, w io.Writer) error {
	data, err := Encode(app.Shapes())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write drawing: %w", err)
	}
	return nil
}

// ReadFile decodes the drawing stored at path.
func ReadFile(path string) ([]shape.Shape, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	shapes, dropped, err := Decode(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return shapes, dropped, nil
}

// WriteFile stores shapes at path. The file is written to a temporary name
// in the same directory and renamed into place.
func WriteFile(path string, shapes []shape.Shape) error {
	data, err := Encode(shapes)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
