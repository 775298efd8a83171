// Package window is the desktop front-end. A Controller owns the layout and
// widget state; the shiny and ebiten backends only translate their events
// into Controller calls and blit what Paint draws.
package window

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/tool"
)

const (
	toolbarHeight = 28
	statusHeight  = 20
	panelWidth    = 240
	rowHeight     = 18
	titleHeight   = 22
	listRows      = 12
	messageTime   = 2 * time.Second

	DefaultWidth  = 1024
	DefaultHeight = 700
)

// KeyCode names the keys the window reacts to.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
)

// Key is a backend-neutral key press.
type Key struct {
	Code KeyCode
	Rune rune
	Ctrl bool
}

type fieldKind int

const (
	fieldX fieldKind = iota
	fieldY
	fieldNumber
	fieldColor
)

type fieldBox struct {
	label string
	kind  fieldKind
	index int
	key   string
	text  string
	rect  image.Rectangle
}

// Controller holds the window's UI state around an AppState.
type Controller struct {
	mu sync.Mutex

	app   *appstate.AppState
	panel *editor.PropertyPanel
	list  editor.ShapeList

	path   string
	onSave func(path string)
	onLoad func(path string, shapes int)
	logger *log.Logger
	now    func() time.Time

	width, height int
	buttons       []*CacheButton
	hover         int

	clicks  appstate.ClickTracker
	pressed bool

	fields    []*fieldBox
	fieldsFor string
	focus     int
	edited    bool

	visibleBox image.Rectangle
	updateBtn  image.Rectangle
	deleteBtn  image.Rectangle

	message      string
	messageUntil time.Time
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithFile sets the drawing file used by Save and Load.
func WithFile(path string) Option { return func(c *Controller) { c.path = path } }

// WithSaveHook runs fn after every successful save.
func WithSaveHook(fn func(path string)) Option { return func(c *Controller) { c.onSave = fn } }

// WithLoadHook runs fn after every successful load.
func WithLoadHook(fn func(path string, shapes int)) Option {
	return func(c *Controller) { c.onLoad = fn }
}

// WithLogger sets the logger for save and load failures.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// NewController creates a controller for app.
func NewController(app *appstate.AppState, opts ...Option) *Controller {
	c := &Controller{
		app:    app,
		panel:  editor.NewPropertyPanel(app),
		list:   editor.ShapeList{App: app},
		logger: log.Default(),
		now:    time.Now,
		width:  DefaultWidth,
		height: DefaultHeight,
		hover:  -1,
		focus:  -1,
	}
	for _, o := range opts {
		o(c)
	}
	for _, k := range tool.Kinds() {
		k := k
		c.buttons = append(c.buttons, &CacheButton{Button: &ActionButton{
			label:  k.Label(),
			active: func() bool { return c.app.ActiveTool() == k },
			action: func() { c.app.SetActiveTool(k) },
		}})
	}
	for _, b := range []struct {
		label  string
		action func()
	}{
		{"Save", c.save},
		{"Load", c.load},
		{"Theme", c.app.ToggleTheme},
	} {
		c.buttons = append(c.buttons, &CacheButton{Button: &ActionButton{label: b.label, action: b.action}})
	}
	c.layoutButtons()
	return c
}

// Close releases the property panel subscription.
func (c *Controller) Close() { c.panel.Close() }

// Resize records the new window size.
func (c *Controller) Resize(w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = w, h
	c.layoutProps()
}

// Size returns the current window size.
func (c *Controller) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *Controller) layoutButtons() {
	x := 4
	for i, b := range c.buttons {
		if i == len(tool.Kinds()) {
			x += 12
		}
		w := labelWidth(b.Button.(*ActionButton).label) + 16
		b.SetRect(image.Rect(x, 2, x+w, toolbarHeight-2))
		x += w + 4
	}
}

// canvasRect is the drawing surface in window coordinates.
func (c *Controller) canvasRect() image.Rectangle {
	return image.Rect(0, toolbarHeight, max(0, c.width-panelWidth), max(toolbarHeight, c.height-statusHeight))
}

func (c *Controller) listRect() image.Rectangle {
	x := max(0, c.width-panelWidth)
	return image.Rect(x, toolbarHeight, c.width, toolbarHeight+titleHeight+listRows*rowHeight)
}

func (c *Controller) propsRect() image.Rectangle {
	l := c.listRect()
	return image.Rect(l.Min.X, l.Max.Y, c.width, max(l.Max.Y, c.height-statusHeight))
}

func (c *Controller) surface() appstate.Surface {
	r := c.canvasRect()
	return appstate.Surface{Origin: shape.Pt(float64(r.Min.X), float64(r.Min.Y))}
}

func (c *Controller) flash(format string, args ...any) {
	c.message = fmt.Sprintf(format, args...)
	c.messageUntil = c.now().Add(messageTime)
}

func (c *Controller) rowRect(i int) image.Rectangle {
	l := c.listRect()
	y := l.Min.Y + titleHeight + i*rowHeight
	return image.Rect(l.Min.X, y, l.Max.X, y+rowHeight)
}

// Press handles a left button press at window coordinates.
func (c *Controller) Press(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := image.Pt(int(x), int(y))
	for _, b := range c.buttons {
		if p.In(b.Rect()) {
			b.Activate()
			return
		}
	}
	if p.In(c.canvasRect()) {
		c.focus = -1
		c.pressed = true
		pt := c.surface().Local(x, y)
		c.app.PointerDown(pt)
		if c.clicks.Press(pt, c.now()) {
			c.app.DoubleClick()
		}
		return
	}
	if p.In(c.listRect()) {
		c.pressList(p)
		return
	}
	if p.In(c.propsRect()) {
		c.pressProps(p)
	}
}

func (c *Controller) pressList(p image.Point) {
	rows := c.list.Rows()
	for i := range rows {
		r := c.rowRect(i)
		if !p.In(r) {
			continue
		}
		switch {
		case p.X < r.Min.X+20:
			c.list.ToggleVisible(i)
		case p.X >= r.Max.X-20:
			c.list.Delete(i)
		default:
			c.list.Select(i)
		}
		return
	}
}

func (c *Controller) pressProps(p image.Point) {
	c.syncFields()
	switch {
	case p.In(c.visibleBox):
		c.panel.ToggleVisible()
		return
	case p.In(c.updateBtn):
		c.commit()
		return
	case p.In(c.deleteBtn):
		if c.panel.Delete() {
			c.flash("Deleted")
		}
		return
	}
	c.focus = -1
	for i, f := range c.fields {
		if p.In(f.rect) {
			c.focus = i
			return
		}
	}
}

// Move handles pointer motion at window coordinates.
func (c *Controller) Move(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := image.Pt(int(x), int(y))
	c.hover = -1
	for i, b := range c.buttons {
		if p.In(b.Rect()) {
			c.hover = i
		}
	}
	if c.pressed || p.In(c.canvasRect()) {
		c.app.PointerMove(c.surface().Local(x, y))
	}
}

// Release handles a left button release at window coordinates.
func (c *Controller) Release(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pressed {
		return
	}
	c.pressed = false
	c.app.PointerUp(c.surface().Local(x, y))
}

// KeyPress handles a key press.
func (c *Controller) KeyPress(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if k.Ctrl {
		switch k.Rune {
		case 's':
			c.save()
		case 'o':
			c.load()
		}
		return
	}
	if c.focus >= 0 && c.focus < len(c.fields) {
		c.fieldKey(k)
		return
	}
	switch k.Code {
	case KeyEscape:
		c.app.Cancel()
	case KeyDelete:
		c.panel.Delete()
	case KeyEnter:
		c.syncFields()
		if len(c.fields) > 0 {
			c.focus = 0
		}
	case KeyRune:
		switch k.Rune {
		case 's':
			c.app.SetActiveTool(tool.KindSelect)
		case 'l':
			c.app.SetActiveTool(tool.KindLine)
		case 'c':
			c.app.SetActiveTool(tool.KindCircle)
		case 'e':
			c.app.SetActiveTool(tool.KindEllipse)
		case 'p':
			c.app.SetActiveTool(tool.KindPolyline)
		case 't':
			c.app.ToggleTheme()
		case 'v':
			c.panel.ToggleVisible()
		case 'x':
			c.panel.Delete()
		}
	}
}

func (c *Controller) fieldKey(k Key) {
	f := c.fields[c.focus]
	switch k.Code {
	case KeyEscape:
		c.panel.Reset()
		c.edited = false
		c.focus = -1
		c.syncFields()
	case KeyEnter:
		c.commit()
	case KeyTab:
		c.focus = (c.focus + 1) % len(c.fields)
	case KeyBackspace:
		if len(f.text) > 0 {
			f.text = f.text[:len(f.text)-1]
			c.edited = true
		}
	case KeyRune:
		if k.Rune > 0 {
			f.text += string(k.Rune)
			c.edited = true
		}
	}
}

// syncFields rebuilds the property inputs from the panel's draft unless the
// user has typed into them for the same shape.
func (c *Controller) syncFields() {
	d := c.panel.Draft()
	if d.ID() == c.fieldsFor && c.edited {
		return
	}
	if d.ID() != c.fieldsFor {
		c.focus = -1
	}
	c.fieldsFor = d.ID()
	c.edited = false
	c.fields = c.fields[:0]
	defer c.layoutProps()
	if d.ID() == "" {
		return
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for i, p := range d.Points() {
		c.fields = append(c.fields,
			&fieldBox{label: p.Label + " x", kind: fieldX, index: i, text: num(p.X)},
			&fieldBox{label: p.Label + " y", kind: fieldY, index: i, text: num(p.Y)},
		)
	}
	for _, n := range d.Numbers() {
		c.fields = append(c.fields, &fieldBox{label: n.Label, kind: fieldNumber, key: n.Key, text: num(n.Value)})
	}
	c.fields = append(c.fields, &fieldBox{label: "Color", kind: fieldColor, text: d.Color()})
}

// layoutProps places the visibility box, the inputs and the Update and
// Delete buttons inside the property panel.
func (c *Controller) layoutProps() {
	c.visibleBox, c.updateBtn, c.deleteBtn = image.Rectangle{}, image.Rectangle{}, image.Rectangle{}
	if c.fieldsFor == "" {
		return
	}
	r := c.propsRect()
	x, y := r.Min.X+8, r.Min.Y+titleHeight
	c.visibleBox = image.Rect(x, y+4, x+10, y+14)
	y += rowHeight
	for _, f := range c.fields {
		f.rect = image.Rect(r.Min.X+110, y+2, r.Max.X-8, y+rowHeight+2)
		y += rowHeight + 2
	}
	y += 6
	c.updateBtn = image.Rect(x, y, x+70, y+22)
	c.deleteBtn = image.Rect(x+80, y, x+150, y+22)
}

// commit stages every field in the draft and applies them in one update.
func (c *Controller) commit() {
	values := make([]float64, len(c.fields))
	for i, f := range c.fields {
		if f.kind == fieldColor {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f.text), 64)
		if err != nil {
			c.flash("%s: not a number", f.label)
			return
		}
		values[i] = v
	}
	c.panel.Edit(func(d *editor.Draft) {
		for i, f := range c.fields {
			switch f.kind {
			case fieldX:
				d.SetPointX(f.index, values[i])
			case fieldY:
				d.SetPointY(f.index, values[i])
			case fieldNumber:
				d.SetNumber(f.key, values[i])
			case fieldColor:
				if s := strings.TrimSpace(f.text); s != "" {
					d.SetColor(s)
				}
			}
		}
	})
	if c.panel.Update() {
		c.flash("Updated")
	}
	c.edited = false
	c.focus = -1
	c.fieldsFor = ""
	c.syncFields()
}

func (c *Controller) save() {
	if c.path == "" {
		c.flash("No drawing file")
		return
	}
	if err := document.WriteFile(c.path, c.app.Shapes()); err != nil {
		c.logger.Printf("save %s: %v", c.path, err)
		c.flash("Save failed")
		return
	}
	c.flash("Saved %s", c.path)
	if c.onSave != nil {
		c.onSave(c.path)
	}
}

func (c *Controller) load() {
	if c.path == "" {
		c.flash("No drawing file")
		return
	}
	shapes, dropped, err := document.ReadFile(c.path)
	if err != nil {
		c.logger.Printf("load %s: %v", c.path, err)
		c.flash("Load failed")
		return
	}
	c.app.LoadShapes(shapes)
	if dropped > 0 {
		c.flash("Loaded %d shapes, dropped %d", len(shapes), dropped)
	} else {
		c.flash("Loaded %d shapes", len(shapes))
	}
	if c.onLoad != nil {
		c.onLoad(c.path, len(shapes))
	}
}
