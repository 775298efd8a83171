// Package tui is a terminal front-end that draws the scene with braille
// characters and edits shape properties through text inputs.
package tui

import (
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/editor"
)

const (
	headerHeight = 1
	footerHeight = 2
	sidebarWidth = 36
	defaultScale = 4.0 // drawing units per micro-pixel
)

type focusArea int

const (
	focusCanvas focusArea = iota
	focusList
	focusProps
)

type fieldKind int

const (
	fieldX fieldKind = iota
	fieldY
	fieldNumber
	fieldColor
)

// field is one text input of the property editor.
type field struct {
	label string
	kind  fieldKind
	index int
	key   string
	input textinput.Model
}

// Model is the bubbletea model of the terminal front-end.
type Model struct {
	app   *appstate.AppState
	panel *editor.PropertyPanel
	list  editor.ShapeList

	width  int
	height int
	scale  float64

	focus   focusArea
	tbl     table.Model
	fields  []field
	fieldAt int

	clicks  appstate.ClickTracker
	pressed bool

	status      string
	statusErr   bool
	helpVisible bool

	path   string
	onSave func(path string)
	onLoad func(path string, shapes int)
}

// Option modifies a Model during creation.
type Option func(*Model)

// WithFile sets the drawing file used by ctrl+s and ctrl+o.
func WithFile(path string) Option { return func(m *Model) { m.path = path } }

// WithSaveHook runs fn after every successful save.
func WithSaveHook(fn func(path string)) Option { return func(m *Model) { m.onSave = fn } }

// WithLoadHook runs fn after every successful load.
func WithLoadHook(fn func(path string, shapes int)) Option {
	return func(m *Model) { m.onLoad = fn }
}

// New creates a model driving app.
func New(app *appstate.AppState, opts ...Option) Model {
	m := Model{
		app:         app,
		panel:       editor.NewPropertyPanel(app),
		list:        editor.ShapeList{App: app},
		scale:       defaultScale,
		status:      "sketchpad ready",
		helpVisible: true,
	}
	for _, o := range opts {
		o(&m)
	}
	m.tbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Type", Width: 9},
			{Title: "ID", Width: 10},
			{Title: "Vis", Width: 3},
		}),
		table.WithHeight(8),
	)
	m.syncTable()
	return m
}

// Close releases the property panel subscription.
func (m Model) Close() { m.panel.Close() }

func (m Model) Init() tea.Cmd { return nil }

// Run starts an alternate-screen program with mouse motion tracking.
func Run(app *appstate.AppState, opts ...Option) error {
	m := New(app, opts...)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
