package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/tool"
)

var toolKeys = map[string]tool.Kind{
	"s": tool.KindSelect,
	"l": tool.KindLine,
	"c": tool.KindCircle,
	"e": tool.KindEllipse,
	"p": tool.KindPolyline,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	m.syncTable()
	return m, cmd
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if m.focus == focusProps {
		return m.handleFieldKey(msg), false
	}
	switch key {
	case "ctrl+c", "q":
		return nil, true
	case "tab":
		if m.focus == focusCanvas {
			m.focus = focusList
			m.tbl.Focus()
		} else {
			m.focus = focusCanvas
			m.tbl.Blur()
		}
		return nil, false
	case "ctrl+s":
		m.save()
		return nil, false
	case "ctrl+o":
		m.load()
		return nil, false
	case "h":
		m.helpVisible = !m.helpVisible
		return nil, false
	}

	if m.focus == focusList {
		switch key {
		case "enter", " ":
			m.list.Select(m.tbl.Cursor())
		case "v":
			m.list.ToggleVisible(m.tbl.Cursor())
		case "x", "delete":
			m.list.Delete(m.tbl.Cursor())
		default:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return cmd, false
		}
		return nil, false
	}

	if k, ok := toolKeys[key]; ok {
		m.app.SetActiveTool(k)
		m.setStatus("tool: %s", k.Label())
		return nil, false
	}
	switch key {
	case "esc":
		m.app.Cancel()
		m.setStatus("cancelled")
	case "t":
		m.app.ToggleTheme()
		m.setStatus("theme: %s", m.app.Theme().Name)
	case "v":
		m.panel.ToggleVisible()
	case "x", "delete":
		if m.panel.Delete() {
			m.setStatus("deleted")
		}
	case "enter":
		m.startEditing()
	case "+", "=":
		if m.scale > 0.5 {
			m.scale /= 1.5
			m.setStatus("zoom: %.2fx", defaultScale/m.scale)
		}
	case "-", "_":
		if m.scale < 32 {
			m.scale *= 1.5
			m.setStatus("zoom: %.2fx", defaultScale/m.scale)
		}
	}
	return nil, false
}

func (m *Model) save() {
	if m.path == "" {
		m.setError(fmt.Errorf("no drawing file; start with -file"))
		return
	}
	if err := document.WriteFile(m.path, m.app.Shapes()); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("saved %s", m.path)
	if m.onSave != nil {
		m.onSave(m.path)
	}
}

func (m *Model) load() {
	if m.path == "" {
		m.setError(fmt.Errorf("no drawing file; start with -file"))
		return
	}
	shapes, dropped, err := document.ReadFile(m.path)
	if err != nil {
		m.setError(err)
		return
	}
	m.app.LoadShapes(shapes)
	m.setStatus("loaded %d shapes, dropped %d", len(shapes), dropped)
	if m.onLoad != nil {
		m.onLoad(m.path, len(shapes))
	}
}

// canvasSize returns the canvas size in cells, matching View.
func (m *Model) canvasSize() (int, int) {
	return max(10, m.width-sidebarWidth-1), max(4, m.height-headerHeight-footerHeight)
}

// surfaceOrigin is the canvas corner in device units: the header rows sit
// above it.
func (m *Model) surfaceOrigin() appstate.Surface {
	return appstate.Surface{Origin: shape.Pt(0, float64(headerHeight*4)*m.scale)}
}

// point converts a terminal cell to drawing coordinates at the centre of
// the cell.
func (m *Model) point(x, y int) shape.Point {
	cx := float64(x*2+1) * m.scale
	cy := float64(y*4+2) * m.scale
	return m.surfaceOrigin().Local(cx, cy)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	w, h := m.canvasSize()
	inside := msg.X >= 0 && msg.X < w && msg.Y >= headerHeight && msg.Y < headerHeight+h
	p := m.point(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		if m.focus != focusProps {
			m.focus = focusCanvas
			m.tbl.Blur()
		}
		m.pressed = true
		m.app.PointerDown(p)
		if m.clicks.Press(p, time.Now()) {
			m.app.DoubleClick()
		}
	case tea.MouseActionMotion:
		if inside || m.pressed {
			m.app.PointerMove(p)
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.app.PointerUp(p)
		}
	}
}

func (m *Model) syncTable() {
	rows := m.list.Rows()
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		mark := strconv.Itoa(i + 1)
		if r.Selected {
			mark = "*" + mark
		}
		vis := "on"
		if !r.Visible {
			vis = "off"
		}
		id := r.ID
		if len(id) > 10 {
			id = id[:10]
		}
		trows = append(trows, table.Row{mark, string(r.Type), id, vis})
	}
	m.tbl.SetRows(trows)
}

// ============================================================
// Property editor
// ============================================================

func newInput(label, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = fmt.Sprintf("%-10s ", label)
	in.CharLimit = 16
	in.Width = 12
	in.SetValue(value)
	return in
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *Model) startEditing() {
	d := m.panel.Draft()
	if d.ID() == "" {
		m.setStatus("nothing selected")
		return
	}
	m.fields = m.fields[:0]
	for i, p := range d.Points() {
		m.fields = append(m.fields,
			field{label: p.Label + " x", kind: fieldX, index: i, input: newInput(p.Label+" x", formatNumber(p.X))},
			field{label: p.Label + " y", kind: fieldY, index: i, input: newInput(p.Label+" y", formatNumber(p.Y))},
		)
	}
	for _, n := range d.Numbers() {
		m.fields = append(m.fields, field{label: n.Label, kind: fieldNumber, key: n.Key, input: newInput(n.Label, formatNumber(n.Value))})
	}
	m.fields = append(m.fields, field{label: "Color", kind: fieldColor, input: newInput("Color", d.Color())})
	m.fieldAt = 0
	m.fields[0].input.Focus()
	m.focus = focusProps
	m.tbl.Blur()
	m.setStatus("editing %s", d.ID())
}

func (m *Model) stopEditing() {
	m.fields = nil
	m.focus = focusCanvas
}

func (m *Model) moveField(delta int) {
	m.fields[m.fieldAt].input.Blur()
	m.fieldAt = (m.fieldAt + delta + len(m.fields)) % len(m.fields)
	m.fields[m.fieldAt].input.Focus()
}

func (m *Model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.panel.Reset()
		m.stopEditing()
		m.setStatus("edit discarded")
		return nil
	case "enter":
		if err := m.commitFields(); err != nil {
			m.setError(err)
			return nil
		}
		m.stopEditing()
		return nil
	case "tab", "down":
		m.moveField(1)
		return nil
	case "shift+tab", "up":
		m.moveField(-1)
		return nil
	}
	var cmd tea.Cmd
	m.fields[m.fieldAt].input, cmd = m.fields[m.fieldAt].input.Update(msg)
	return cmd
}

// commitFields parses every input, stages the values in the panel's draft
// and commits them in one update.
func (m *Model) commitFields() error {
	values := make([]float64, len(m.fields))
	for i, f := range m.fields {
		if f.kind == fieldColor {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f.input.Value()), 64)
		if err != nil {
			return fmt.Errorf("%s: not a number", f.label)
		}
		values[i] = v
	}
	m.panel.Edit(func(d *editor.Draft) {
		for i, f := range m.fields {
			switch f.kind {
			case fieldX:
				d.SetPointX(f.index, values[i])
			case fieldY:
				d.SetPointY(f.index, values[i])
			case fieldNumber:
				d.SetNumber(f.key, values[i])
			case fieldColor:
				if c := strings.TrimSpace(f.input.Value()); c != "" {
					d.SetColor(c)
				}
			}
		}
	})
	if !m.panel.Update() {
		return fmt.Errorf("selected shape no longer exists")
	}
	m.setStatus("updated")
	return nil
}
