// Package server exposes a drawing session over HTTP so that browser or
// scripted front-ends can drive the same tools as the desktop window.
package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/store"
)

// Defaults for rendered images when the request does not give a size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	maxDimension  = 8192
	storeTimeout  = 5 * time.Second
)

// Server serves one AppState.
type Server struct {
	app     *fiber.App
	state   *appstate.AppState
	store   *store.Store
	surface appstate.Surface
}

// Option modifies a Server during creation.
type Option func(*Server)

// WithStore enables the /drawings routes backed by st.
func WithStore(st *store.Store) Option { return func(s *Server) { s.store = st } }

// WithSurface sets the origin subtracted from pointer coordinates.
func WithSurface(sf appstate.Surface) Option { return func(s *Server) { s.surface = sf } }

// New builds the fiber application and registers every route.
func New(state *appstate.AppState, opts ...Option) *Server {
	s := &Server{state: state}
	for _, o := range opts {
		o(s)
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		AppName:      "Sketchpad",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	s.app.Use(recover.New())
	s.app.Use(Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// ============================================================
	// Session Routes
	// ============================================================

	s.app.Get("/state", s.getState)
	s.app.Put("/tool", s.putTool)
	s.app.Post("/pointer/down", s.pointer(state.PointerDown))
	s.app.Post("/pointer/move", s.pointer(state.PointerMove))
	s.app.Post("/pointer/up", s.pointer(state.PointerUp))
	s.app.Post("/pointer/dblclick", s.doubleClick)
	s.app.Post("/cancel", s.cancel)
	s.app.Post("/theme/toggle", s.toggleTheme)

	// ============================================================
	// Shape Routes
	// ============================================================

	s.app.Get("/shapes", s.listShapes)
	s.app.Post("/shapes", s.createShape)
	s.app.Get("/shapes/:id", s.getShape)
	s.app.Put("/shapes/:id", s.commitDraft)
	s.app.Delete("/shapes/:id", s.deleteShape)
	s.app.Put("/shapes/:id/visible", s.setVisible)
	s.app.Put("/selection", s.putSelection)
	s.app.Delete("/selection", s.clearSelection)

	// ============================================================
	// Document Routes
	// ============================================================

	s.app.Get("/document", s.getDocument)
	s.app.Put("/document", s.putDocument)
	s.app.Get("/render.svg", s.renderSVG)
	s.app.Get("/render.png", s.renderPNG)

	// ============================================================
	// Drawing Store Routes
	// ============================================================

	s.app.Get("/drawings", s.listDrawings)
	s.app.Put("/drawings/:name", s.putDrawing)
	s.app.Post("/drawings/:name/open", s.openDrawing)
	s.app.Delete("/drawings/:name", s.deleteDrawing)

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until Shutdown is called or the listener fails.
func (s *Server) Listen(addr string) error {
	log.Printf("Starting Sketchpad server on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

// ============================================================
// Logger Middleware
// ============================================================

// Logger returns the request logger used by the server.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
