package window

import (
	"fmt"
	"image"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
)

// Paint draws the whole window into dst.
func (c *Controller) Paint(dst *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sc := c.app.Scene()
	th := sc.Theme
	if th == nil {
		th = theme.Default()
	}

	fillRect(dst, dst.Bounds(), th.Background)
	c.paintToolbar(dst, th)
	render.Draw(dst, c.canvasRect(), sc)
	c.paintList(dst, th)
	c.paintProps(dst, th)
	c.paintStatus(dst, th)
}

func (c *Controller) paintToolbar(dst *image.RGBA, th *theme.Theme) {
	fillRect(dst, image.Rect(0, 0, c.width, toolbarHeight), th.ToolbarBackground)
	for i, b := range c.buttons {
		state := StateDefault
		if b.Button.(*ActionButton).Active() {
			state = StatePressed
		} else if i == c.hover {
			state = StateHover
		}
		b.Draw(dst, th, state)
	}
}

func (c *Controller) paintList(dst *image.RGBA, th *theme.Theme) {
	r := c.listRect()
	fillRect(dst, r, th.PanelBackground)
	drawRect(dst, r, th.PanelBorder, 1)
	drawText(dst, "Shapes", r.Min.X+8, r.Min.Y+15, th.Foreground)
	for i, row := range c.list.Rows() {
		if i >= listRows {
			drawText(dst, fmt.Sprintf("... %d more", len(c.list.Rows())-listRows), r.Min.X+8, r.Max.Y-4, th.Foreground)
			break
		}
		rr := c.rowRect(i)
		fg := th.Foreground
		if row.Selected {
			fillRect(dst, rr.Inset(1), th.RowSelected)
		}
		if !row.Visible {
			fg = th.RowHidden
		}
		box := image.Rect(rr.Min.X+6, rr.Min.Y+4, rr.Min.X+16, rr.Min.Y+14)
		drawRect(dst, box, fg, 1)
		if row.Visible {
			fillRect(dst, box.Inset(2), fg)
		}
		id := row.ID
		if len(id) > 8 {
			id = id[:8]
		}
		drawText(dst, fmt.Sprintf("%-9s %s", row.Type, id), rr.Min.X+22, rr.Min.Y+13, fg)
		drawText(dst, "x", rr.Max.X-14, rr.Min.Y+13, fg)
	}
}

func (c *Controller) paintProps(dst *image.RGBA, th *theme.Theme) {
	c.syncFields()
	r := c.propsRect()
	fillRect(dst, r, th.PanelBackground)
	drawRect(dst, r, th.PanelBorder, 1)

	d := c.panel.Draft()
	x := r.Min.X + 8
	if d.ID() == "" {
		drawText(dst, "No shape selected", x, r.Min.Y+15, th.Foreground)
		return
	}
	drawText(dst, "Properties: "+string(d.Type()), x, r.Min.Y+15, th.Foreground)

	drawRect(dst, c.visibleBox, th.Foreground, 1)
	if sh := c.panel.Shape(); sh != nil && sh.Visible() {
		fillRect(dst, c.visibleBox.Inset(2), th.Foreground)
	}
	drawText(dst, "Visible", c.visibleBox.Max.X+6, c.visibleBox.Max.Y, th.Foreground)

	for i, f := range c.fields {
		drawText(dst, f.label, x, f.rect.Max.Y-3, th.Foreground)
		bg := th.ButtonBackground
		if i == c.focus {
			bg = th.ButtonBackgroundHover
		}
		fillRect(dst, f.rect, bg)
		drawRect(dst, f.rect, th.ButtonBorder, 1)
		text := f.text
		if i == c.focus {
			text += "|"
		}
		drawText(dst, text, f.rect.Min.X+4, f.rect.Max.Y-3, th.ButtonText)
	}

	for _, b := range []struct {
		rect  image.Rectangle
		label string
	}{{c.updateBtn, "Update"}, {c.deleteBtn, "Delete"}} {
		fillRect(dst, b.rect, th.ButtonBackground)
		drawRect(dst, b.rect, th.ButtonBorder, 1)
		drawText(dst, b.label, b.rect.Min.X+12, b.rect.Min.Y+15, th.ButtonText)
	}
}

func (c *Controller) paintStatus(dst *image.RGBA, th *theme.Theme) {
	r := image.Rect(0, c.height-statusHeight, c.width, c.height)
	fillRect(dst, r, th.ToolbarBackground)
	text := fmt.Sprintf("Tool: %s   s/l/c/e/p tools  esc cancel  t theme  ctrl+s save", c.app.ActiveTool().Label())
	if c.message != "" && c.now().Before(c.messageUntil) {
		text = c.message
	}
	drawText(dst, text, 6, r.Min.Y+14, th.Foreground)
}
