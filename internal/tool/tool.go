// Package tool turns pointer gestures into preview and committed shapes.
// Each tool keeps its own gesture state and talks to the rest of the
// application only through a Host.
package tool

import (
	"fmt"
	"strings"

	"github.com/example/sketchpad/internal/shape"
)

// MinDistance is the drag distance below which a gesture counts as an
// accidental click and is discarded.
const MinDistance = 3

// Host is the slice of application state a tool may drive.
type Host interface {
	HitTest(p shape.Point) shape.Shape
	Select(id string)
	SetPreview(s shape.Shape)
	ClearPreview()
	Commit(s shape.Shape)
}

// Tool receives pointer events in drawing-surface coordinates.
type Tool interface {
	Kind() Kind
	PointerDown(p shape.Point)
	PointerMove(p shape.Point)
	PointerUp(p shape.Point)
	DoubleClick()
	// Cancel drops any gesture in progress and clears the preview.
	Cancel()
	// Drawing reports whether a gesture is in progress.
	Drawing() bool
}

// Kind enumerates the available tools.
type Kind int

const (
	KindSelect Kind = iota
	KindLine
	KindCircle
	KindEllipse
	KindPolyline
)

var kindNames = []string{"select", "line", "circle", "ellipse", "polyline"}

// Kinds lists every tool kind in toolbar order.
func Kinds() []Kind {
	return []Kind{KindSelect, KindLine, KindCircle, KindEllipse, KindPolyline}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label returns the toolbar caption for k.
func (k Kind) Label() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind resolves a tool name such as "line" or "Ellipse".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// New creates a tool of the given kind bound to host.
func New(k Kind, host Host) Tool {
	switch k {
	case KindLine:
		return &Line{host: host}
	case KindCircle:
		return &Circle{host: host}
	case KindEllipse:
		return &Ellipse{host: host}
	case KindPolyline:
		return &Polyline{host: host}
	default:
		return &Select{host: host}
	}
}

func previewOptions(t shape.Type) shape.Options {
	return shape.Options{ID: shape.PreviewID(t), Color: shape.PreviewColor, Preview: true}
}

func finalOptions() shape.Options {
	return shape.Options{ID: shape.NewID(), Color: shape.FinalColor}
}
