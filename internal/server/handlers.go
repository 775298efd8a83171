package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/store"
	"github.com/example/sketchpad/internal/tool"
)

// StateResponse is the JSON view of the session.
type StateResponse struct {
	Tool     string         `json:"tool"`
	Drawing  bool           `json:"drawing"`
	Selected string         `json:"selected"`
	Theme    string         `json:"theme"`
	Shapes   []shape.Record `json:"shapes"`
	Preview  *shape.Record  `json:"preview"`
}

// PointerRequest carries device coordinates of a pointer event.
type PointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DraftRequest lists the property edits committed in one batch.
type DraftRequest struct {
	Points  []DraftPoint       `json:"points"`
	Numbers map[string]float64 `json:"numbers"`
	Color   string             `json:"color"`
}

// DraftPoint overrides the editable point at Index.
type DraftPoint struct {
	Index int      `json:"index"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func records(shapes []shape.Shape) []shape.Record {
	out := make([]shape.Record, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, s.Record())
	}
	return out
}

func (s *Server) snapshot() StateResponse {
	sc := s.state.Scene()
	resp := StateResponse{
		Tool:     s.state.ActiveTool().String(),
		Drawing:  s.state.Drawing(),
		Selected: sc.Selected,
		Shapes:   records(sc.Shapes),
	}
	if sc.Theme != nil {
		resp.Theme = sc.Theme.Name
	}
	if sc.Preview != nil {
		r := sc.Preview.Record()
		resp.Preview = &r
	}
	return resp
}

// ============================================================
// Session Handlers
// ============================================================

func (s *Server) getState(c fiber.Ctx) error {
	return c.JSON(s.snapshot())
}

func (s *Server) putTool(c fiber.Ctx) error {
	var req struct {
		Tool string `json:"tool"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	k, err := tool.ParseKind(req.Tool)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	s.state.SetActiveTool(k)
	return c.JSON(s.snapshot())
}

func (s *Server) pointer(fn func(shape.Point)) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req PointerRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
		}
		fn(s.surface.Local(req.X, req.Y))
		return c.JSON(s.snapshot())
	}
}

func (s *Server) doubleClick(c fiber.Ctx) error {
	s.state.DoubleClick()
	return c.JSON(s.snapshot())
}

func (s *Server) cancel(c fiber.Ctx) error {
	s.state.Cancel()
	return c.JSON(s.snapshot())
}

func (s *Server) toggleTheme(c fiber.Ctx) error {
	s.state.ToggleTheme()
	return c.JSON(s.snapshot())
}

// ============================================================
// Shape Handlers
// ============================================================

func (s *Server) listShapes(c fiber.Ctx) error {
	return c.JSON(records(s.state.Shapes()))
}

func (s *Server) getShape(c fiber.Ctx) error {
	sh := s.state.Get(c.Params("id"))
	if sh == nil {
		return errorJSON(c, fiber.StatusNotFound, "shape not found")
	}
	return c.JSON(sh.Record())
}

func (s *Server) createShape(c fiber.Ctx) error {
	var rec shape.Record
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	if rec.ID == "" {
		rec.ID = shape.NewID()
	}
	if rec.Color == "" {
		rec.Color = shape.DefaultColor
	}
	sh, ok := shape.FromRecord(rec)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "unknown shape type")
	}
	s.state.Add(sh)
	return c.Status(fiber.StatusCreated).JSON(sh.Record())
}

func (s *Server) commitDraft(c fiber.Ctx) error {
	var req DraftRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	var rec shape.Record
	ok := s.state.Edit(c.Params("id"), func(sh shape.Shape) {
		d := editor.NewDraft(sh)
		for _, p := range req.Points {
			if p.X != nil {
				d.SetPointX(p.Index, *p.X)
			}
			if p.Y != nil {
				d.SetPointY(p.Index, *p.Y)
			}
		}
		for k, v := range req.Numbers {
			d.SetNumber(k, v)
		}
		if req.Color != "" {
			d.SetColor(req.Color)
		}
		d.Apply(sh)
		rec = sh.Record()
	})
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "shape not found")
	}
	return c.JSON(rec)
}

func (s *Server) deleteShape(c fiber.Ctx) error {
	if !s.state.Remove(c.Params("id")) {
		return errorJSON(c, fiber.StatusNotFound, "shape not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) setVisible(c fiber.Ctx) error {
	var req struct {
		Visible *bool `json:"visible"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	var rec shape.Record
	ok := s.state.Edit(c.Params("id"), func(sh shape.Shape) {
		if req.Visible == nil {
			sh.SetVisible(!sh.Visible())
		} else {
			sh.SetVisible(*req.Visible)
		}
		rec = sh.Record()
	})
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "shape not found")
	}
	return c.JSON(rec)
}

func (s *Server) putSelection(c fiber.Ctx) error {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	s.state.Select(req.ID)
	return c.JSON(s.snapshot())
}

func (s *Server) clearSelection(c fiber.Ctx) error {
	s.state.ClearSelection()
	return c.JSON(s.snapshot())
}

// ============================================================
// Document Handlers
// ============================================================

func (s *Server) getDocument(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := document.Save(s.state, &buf); err != nil {
		log.Printf("[DOCUMENT] Save error: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set("Content-Type", "application/json")
	return c.Send(buf.Bytes())
}

func (s *Server) putDocument(c fiber.Ctx) error {
	dropped, err := document.Load(s.state, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[DOCUMENT] Load error: %v", err)
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"shapes": len(s.state.Shapes()), "dropped": dropped})
}

func size(c fiber.Ctx) (int, int, error) {
	dim := func(key string, def int) (int, error) {
		v := c.Query(key)
		if v == "" {
			return def, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxDimension {
			return 0, errors.New("invalid " + key)
		}
		return n, nil
	}
	w, err := dim("width", DefaultWidth)
	if err != nil {
		return 0, 0, err
	}
	h, err := dim("height", DefaultHeight)
	return w, h, err
}

func (s *Server) renderSVG(c fiber.Ctx) error {
	w, h, err := size(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(render.SVG(s.state.Scene(), w, h))
}

func (s *Server) renderPNG(c fiber.Ctx) error {
	w, h, err := size(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, s.state.Scene(), w, h); err != nil {
		log.Printf("[RENDER] Encode error: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// ============================================================
// Drawing Store Handlers
// ============================================================

func (s *Server) withStore(c fiber.Ctx, fn func(ctx context.Context) error) error {
	if s.store == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "drawing store disabled")
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	err := fn(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmptyName):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, document.ErrMalformed):
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("[STORE] %s %s: %v", c.Method(), c.Path(), err)
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
}

func (s *Server) listDrawings(c fiber.Ctx) error {
	return s.withStore(c, func(ctx context.Context) error {
		entries, err := s.store.List(ctx)
		if err != nil {
			return err
		}
		if entries == nil {
			entries = []store.Entry{}
		}
		return c.JSON(entries)
	})
}

func (s *Server) putDrawing(c fiber.Ctx) error {
	return s.withStore(c, func(ctx context.Context) error {
		name := c.Params("name")
		if err := s.store.Put(ctx, name, s.state.Shapes()); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"name": name, "shapes": len(s.state.Shapes())})
	})
}

func (s *Server) openDrawing(c fiber.Ctx) error {
	return s.withStore(c, func(ctx context.Context) error {
		shapes, dropped, err := s.store.Get(ctx, c.Params("name"))
		if err != nil {
			return err
		}
		s.state.LoadShapes(shapes)
		return c.JSON(fiber.Map{"shapes": len(shapes), "dropped": dropped})
	})
}

func (s *Server) deleteDrawing(c fiber.Ctx) error {
	return s.withStore(c, func(ctx context.Context) error {
		if err := s.store.Delete(ctx, c.Params("name")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
